package serializer

import (
	"errors"
	"testing"
	"time"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/jitterbench/internal/sentinel"
	"github.com/hyp3rd/jitterbench/pkg/stats"
	"github.com/hyp3rd/jitterbench/types"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{CBOR, JSON, Msgpack}, Names())

	for _, name := range Names() {
		s, err := New(name)
		assert.NoError(t, err)
		assert.True(t, s != nil)
	}
}

func TestNew_Unknown(t *testing.T) {
	_, err := New("")
	assert.True(t, errors.Is(err, sentinel.ErrParamCannotBeEmpty))

	_, err = New("gob")
	assert.True(t, errors.Is(err, sentinel.ErrSerializerNotFound))

	// names are exact
	_, err = New("JSON")
	assert.True(t, errors.Is(err, sentinel.ErrSerializerNotFound))
}

func TestSerializers_PreserveResult(t *testing.T) {
	tests := []struct {
		name      string
		startedAt time.Time
	}{
		{name: "whole seconds", startedAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)},
		{name: "nanoseconds", startedAt: time.Unix(1700000000, 123456789)},
	}

	for _, codec := range Names() {
		for _, tt := range tests {
			t.Run(codec+"/"+tt.name, func(t *testing.T) {
				in := types.Result{
					ID:         "abc",
					Label:      "Nested Branch Pattern",
					Source:     "rdtsc",
					Unit:       "cycles",
					Iterations: 4,
					Warmup:     1,
					StartedAt:  tt.startedAt,
					Duration:   3*time.Millisecond + 7,
					Summary: stats.Summary{
						Count: 4, Min: 10, Max: 40, Avg: 25,
						StdDev: 11.180339887498949, P95: 40, P99: 40, Jitter: 30,
					},
					Samples: []uint64{10, 20, 30, 40},
				}

				s, err := New(codec)
				assert.NoError(t, err)

				data, err := s.Marshal(&in)
				assert.NoError(t, err)

				var out types.Result

				err = s.Unmarshal(data, &out)
				assert.NoError(t, err)

				assert.True(t, in.StartedAt.Equal(out.StartedAt))
				assert.Equal(t, in.StartedAt.UnixNano(), out.StartedAt.UnixNano())

				// locations may differ after decoding; the instant is checked above
				out.StartedAt = in.StartedAt
				assert.Equal(t, in, out)
			})
		}
	}
}
