package backend

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/longbridgeapp/assert"
	"github.com/redis/go-redis/v9"

	"github.com/hyp3rd/jitterbench/internal/constants"
	"github.com/hyp3rd/jitterbench/internal/libs/serializer"
	"github.com/hyp3rd/jitterbench/internal/sentinel"
	redisstore "github.com/hyp3rd/jitterbench/pkg/backend/redis"
)

func TestNewRedis_NilClient(t *testing.T) {
	store, err := NewRedis()
	assert.True(t, store == nil)
	assert.True(t, errors.Is(err, sentinel.ErrNilClient))
}

func TestHashTag(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{key: constants.RedisKeyPrefix, want: "results"},
		{key: constants.RedisIndexKey, want: "results"},
		{key: "bench:{lab1}:x{y}", want: "lab1"},
		{key: "bench:results", want: ""},
		{key: "bench:{open", want: ""},
		{key: "bench:{}", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, hashTag(tt.key))
	}
}

// newRedisStore returns a store on a single node client. The node is an
// in-process fake unless JITTERBENCH_REDIS_ADDR names a real server.
func newRedisStore(t *testing.T, opts ...Option[Redis]) *Redis {
	t.Helper()

	addr := os.Getenv("JITTERBENCH_REDIS_ADDR")
	if addr == "" {
		addr = newFakeRedis(t).Addr()
	}

	client, err := redisstore.New(redisstore.WithAddr(addr))
	assert.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	err = client.Ping(ctx)
	if err != nil {
		t.Skipf("redis not reachable: %v", err)
	}

	prefix := "jitterbench:{test:" + t.Name() + "}:"
	opts = append([]Option[Redis]{
		WithRedisClient(client.Client),
		WithKeyPrefix(prefix),
		WithIndexKey(prefix + "index"),
	}, opts...)

	store, err := NewRedis(opts...)
	assert.NoError(t, err)

	t.Cleanup(func() {
		_ = store.Clear(context.Background())
		_ = client.Close()
	})

	return store
}

func TestRedis_PutGetList(t *testing.T) {
	ctx := context.Background()
	store := newRedisStore(t)

	assert.NoError(t, store.Put(ctx, newResult("b", time.Unix(2, 0))))
	assert.NoError(t, store.Put(ctx, newResult("a", time.Unix(1, 0))))

	got, err := store.Get(ctx, "a")
	assert.NoError(t, err)
	assert.Equal(t, []uint64{1, 2, 3}, got.Samples)

	results, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(results))
	// ordered by start time, not insertion
	assert.Equal(t, "a", results[0].ID)
	assert.Equal(t, "b", results[1].ID)

	_, err = store.Get(ctx, "missing")
	assert.True(t, errors.Is(err, sentinel.ErrResultNotFound))

	err = store.Put(ctx, newResult("", time.Unix(3, 0)))
	assert.True(t, errors.Is(err, sentinel.ErrParamCannotBeEmpty))
}

func TestRedis_LimitEvictsOldest(t *testing.T) {
	ctx := context.Background()

	ser, err := serializer.New(serializer.CBOR)
	assert.NoError(t, err)

	store := newRedisStore(t, WithLimit[Redis](2), WithSerializer(ser))

	assert.NoError(t, store.Put(ctx, newResult("a", time.Unix(1, 0))))
	assert.NoError(t, store.Put(ctx, newResult("c", time.Unix(3, 0))))
	assert.NoError(t, store.Put(ctx, newResult("b", time.Unix(2, 0))))

	results, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(results))
	assert.Equal(t, "b", results[0].ID)
	assert.Equal(t, "c", results[1].ID)

	_, err = store.Get(ctx, "a")
	assert.True(t, errors.Is(err, sentinel.ErrResultNotFound))
}

func TestRedis_ListSkipsMissingBlobs(t *testing.T) {
	ctx := context.Background()
	store := newRedisStore(t)

	assert.NoError(t, store.Put(ctx, newResult("a", time.Unix(1, 0))))
	assert.NoError(t, store.Put(ctx, newResult("b", time.Unix(2, 0))))

	// the index still names "a" but its blob is gone
	assert.NoError(t, store.rdb.Del(ctx, store.key("a")).Err())

	results, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(results))
	assert.Equal(t, "b", results[0].ID)
}

func TestRedis_Clear(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis(t)

	client := redis.NewClient(&redis.Options{Addr: fake.Addr(), Protocol: 2})
	t.Cleanup(func() { _ = client.Close() })

	store, err := NewRedis(WithRedisClient(client))
	assert.NoError(t, err)

	assert.NoError(t, store.Put(ctx, newResult("a", time.Unix(1, 0))))
	assert.NoError(t, store.Put(ctx, newResult("b", time.Unix(2, 0))))
	assert.Equal(t, []string{
		constants.RedisIndexKey,
		constants.RedisKeyPrefix + "a",
		constants.RedisKeyPrefix + "b",
	}, fake.Keys())

	assert.NoError(t, store.Clear(ctx))
	assert.Equal(t, 0, len(fake.Keys()))

	results, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, len(results))
}

func TestRedis_Cluster(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis(t)

	store, err := NewRedis(WithRedisClient(fake.clusterClient(t)), WithLimit[Redis](1))
	assert.NoError(t, err)

	err = store.Put(ctx, newResult("a", time.Unix(1, 0)))
	assert.False(t, errors.Is(err, redis.ErrCrossSlot))
	assert.NoError(t, err)

	assert.NoError(t, store.Put(ctx, newResult("b", time.Unix(2, 0))))
	// one transaction per put, one for the trim
	assert.Equal(t, 3, fake.Execs())

	got, err := store.Get(ctx, "b")
	assert.NoError(t, err)
	assert.Equal(t, "b", got.ID)

	results, err := store.List(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(results))
	assert.Equal(t, "b", results[0].ID)

	assert.NoError(t, store.Clear(ctx))
	assert.Equal(t, 0, len(fake.Keys()))
}

func TestNewRedis_ClusterKeysShareHashTag(t *testing.T) {
	client := newFakeRedis(t).clusterClient(t)

	_, err := NewRedis(WithRedisClient(client), WithKeyPrefix("bench:result:"), WithIndexKey("bench:results"))
	assert.True(t, errors.Is(err, sentinel.ErrInvalidConfig))

	_, err = NewRedis(WithRedisClient(client), WithKeyPrefix("bench:{a}:"), WithIndexKey("bench:{b}"))
	assert.True(t, errors.Is(err, sentinel.ErrInvalidConfig))

	_, err = NewRedis(WithRedisClient(client), WithKeyPrefix("bench:{lab}:"), WithIndexKey("bench:{lab}"))
	assert.NoError(t, err)

	// a single node has no slots to respect
	single := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	t.Cleanup(func() { _ = single.Close() })

	_, err = NewRedis(WithRedisClient(single), WithKeyPrefix("bench:result:"), WithIndexKey("bench:results"))
	assert.NoError(t, err)
}
