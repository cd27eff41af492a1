package report

import (
	"bytes"
	"math"
	"testing"

	"github.com/longbridgeapp/assert"

	"github.com/hyp3rd/jitterbench/pkg/stats"
	"github.com/hyp3rd/jitterbench/types"
)

func TestWriteBanner(t *testing.T) {
	var buf bytes.Buffer

	assert.NoError(t, WriteBanner(&buf, 2000, 500))
	assert.Equal(t,
		"Scientific Real-time Determinism Test\n"+
			"Testing CPU predictability under various branch patterns\n"+
			"Iterations: 2000 (+ 500 warmup)\n\n",
		buf.String())
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer

	s := stats.Summary{
		Count: 10, Min: 1, Max: 10, Avg: 5,
		StdDev: math.Sqrt(8.5), P95: 10, P99: 10, Jitter: 9,
	}

	assert.NoError(t, WriteSummary(&buf, "Pure Computation", s))
	assert.Equal(t,
		"=== Pure Computation ===\n"+
			"  Min: 1, Max: 10, Avg: 5\n"+
			"  Jitter: 9, Std Dev: 2.92\n"+
			"  95th percentile: 10, 99th percentile: 10\n"+
			"  Coefficient of Variation: 0.5831\n\n",
		buf.String())
}

func TestWriteText_RoundTripsThroughParse(t *testing.T) {
	results := []*types.Result{
		{Label: "Pure Computation", Summary: stats.Summary{Min: 40, Max: 90, Avg: 50, Jitter: 50, StdDev: 4.5, P95: 60, P99: 80}},
		{Label: "Nested Branch Pattern", Summary: stats.Summary{Min: 60, Max: 400, Avg: 100, Jitter: 340, StdDev: 30.25, P95: 150, P99: 300}},
	}

	var buf bytes.Buffer

	assert.NoError(t, WriteText(&buf, 2000, 500, results))

	entries, err := Parse(&buf)
	assert.NoError(t, err)
	assert.Equal(t, 2, len(entries))
	assert.Equal(t, "Pure Computation", entries[0].Label)
	assert.Equal(t, uint64(90), entries[0].Max)
	assert.Equal(t, 4.5, entries[0].StdDev)
	assert.Equal(t, 0.09, entries[0].CV)
	assert.Equal(t, "Nested Branch Pattern", entries[1].Label)
	assert.Equal(t, uint64(300), entries[1].P99)
	assert.Equal(t, 0.3025, entries[1].CV)
}
