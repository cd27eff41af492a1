package stats

import (
	"errors"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/jitterbench/internal/sentinel"
)

func TestSampleSet_RecordAndSummarize(t *testing.T) {
	set, err := NewSampleSet(4)
	assert.NoError(t, err)
	assert.Equal(t, 4, set.Cap())

	for _, v := range []uint64{10, 20, 30, 40} {
		assert.NoError(t, set.Record(v))
	}

	assert.True(t, set.Full())
	assert.Equal(t, 4, set.Len())

	err = set.Record(50)
	assert.True(t, errors.Is(err, sentinel.ErrSampleSetFull))

	summary, err := set.Summarize()
	assert.NoError(t, err)
	assert.Equal(t, uint64(25), summary.Avg)
}

func TestSampleSet_PartialIsRejected(t *testing.T) {
	set, err := NewSampleSet(3)
	assert.NoError(t, err)
	assert.NoError(t, set.Record(1))
	assert.False(t, set.Full())

	_, err = set.Summarize()
	assert.True(t, errors.Is(err, sentinel.ErrInvalidInput))
}

func TestNewSampleSet_ZeroSize(t *testing.T) {
	set, err := NewSampleSet(0)
	assert.True(t, set == nil)
	assert.True(t, errors.Is(err, sentinel.ErrInvalidInput))
}
