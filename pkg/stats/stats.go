// Package stats turns a sample set of raw per-iteration timings into a summary:
// min, max, truncated integer average, jitter, population standard deviation and
// the 95th/99th order statistics.
//
// The arithmetic is unit-agnostic: samples are opaque integers in whatever unit
// the timestamp source reports.
package stats

import (
	"math"
	"math/bits"
	"slices"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/jitterbench/internal/sentinel"
)

const (
	// P95 is the rank fraction of the 95th percentile.
	P95 = 0.95
	// P99 is the rank fraction of the 99th percentile.
	P99 = 0.99
)

// Summary contains the statistics derived from exactly one sample set.
type Summary struct {
	Count  int     `json:"count"`   // number of samples
	Min    uint64  `json:"min"`     // smallest sample
	Max    uint64  `json:"max"`     // largest sample
	Avg    uint64  `json:"avg"`     // sum / count, truncated
	StdDev float64 `json:"std_dev"` // population standard deviation around Avg
	P95    uint64  `json:"p95"`     // sorted[floor(count*0.95)]
	P99    uint64  `json:"p99"`     // sorted[floor(count*0.99)]
	Jitter uint64  `json:"jitter"`  // Max - Min
}

// CoefficientOfVariation returns StdDev / Avg, or 0 when Avg is 0.
func (s Summary) CoefficientOfVariation() float64 {
	if s.Avg == 0 {
		return 0
	}

	return s.StdDev / float64(s.Avg)
}

// Summarize computes the summary of samples. The input is not modified and no
// reference to it is retained.
//
// The standard deviation is taken around the truncated integer average rather than
// the exact mean, and percentiles use the floor rank without interpolation.
func Summarize(samples []uint64) (Summary, error) {
	n := len(samples)
	if n == 0 {
		return Summary{}, ewrap.Wrap(sentinel.ErrInvalidInput, "empty sample set")
	}

	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	summary := Summary{
		Count: n,
		Min:   sorted[0],
		Max:   sorted[n-1],
	}
	summary.Jitter = summary.Max - summary.Min
	summary.Avg = mean(samples)
	summary.StdDev = math.Sqrt(variance(samples, summary.Avg))
	summary.P95 = sorted[Rank(n, P95)]
	summary.P99 = sorted[Rank(n, P99)]

	return summary, nil
}

// SummarizeN is Summarize with an explicit declared length, which must match the
// length of samples.
func SummarizeN(samples []uint64, n int) (Summary, error) {
	if n != len(samples) {
		return Summary{}, ewrap.Wrapf(sentinel.ErrInvalidInput, "declared length %d, got %d samples", n, len(samples))
	}

	return Summarize(samples)
}

// Rank returns the zero-based index of the p-th order statistic in a sorted
// sample set of length n: floor(n*p), clamped to [0, n-1].
func Rank(n int, p float64) int {
	if n <= 0 {
		return 0
	}

	idx := int(float64(n) * p)
	if idx >= n {
		idx = n - 1
	}

	if idx < 0 {
		idx = 0
	}

	return idx
}

// mean returns sum(values) / len(values) with integer truncation. The sum is
// accumulated in 128 bits, so it cannot overflow for any slice that fits in memory.
func mean(values []uint64) uint64 {
	var hi, lo, carry uint64
	for _, value := range values {
		lo, carry = bits.Add64(lo, value, 0)
		hi += carry
	}

	// the quotient is bounded by the largest value, so hi < len(values) and Div64 cannot panic
	quo, _ := bits.Div64(hi, lo, uint64(len(values)))

	return quo
}

// variance returns the population variance of values around avg.
func variance(values []uint64, avg uint64) float64 {
	var acc float64
	for _, value := range values {
		diff := float64(value) - float64(avg)
		acc += diff * diff
	}

	return acc / float64(len(values))
}
