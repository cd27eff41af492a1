package rediscluster

import (
	"errors"
	"testing"
	"time"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/jitterbench/internal/constants"
	"github.com/hyp3rd/jitterbench/internal/sentinel"
)

func TestNew_RequiresAddrs(t *testing.T) {
	_, err := New()
	assert.True(t, errors.Is(err, sentinel.ErrParamCannotBeEmpty))

	_, err = New(WithAddrs("10.0.0.1:7000,"))
	assert.True(t, errors.Is(err, sentinel.ErrParamCannotBeEmpty))
}

func TestNew_SplitsAddrs(t *testing.T) {
	store, err := New(
		WithAddrs("10.0.0.1:7000, 10.0.0.2:7000", "10.0.0.3:7000"),
		WithPoolSize(2),
		WithReadTimeout(time.Second),
	)
	assert.NoError(t, err)

	defer func() { _ = store.Close() }()

	opt := store.Client.Options()
	assert.Equal(t, []string{"10.0.0.1:7000", "10.0.0.2:7000", "10.0.0.3:7000"}, opt.Addrs)
	assert.Equal(t, 2, opt.PoolSize)
	assert.Equal(t, time.Second, opt.ReadTimeout)
	assert.Equal(t, constants.RedisClientWriteTimeout, opt.WriteTimeout)
}
