// Package report renders measured results and analyzes saved reports.
//
// The text layout is a labelled block per workload. Parse reads that layout
// back, Score grades each workload against the others, and the CSV, JSON and
// experiment writers export the outcome.
package report

import (
	"github.com/hyp3rd/jitterbench/pkg/stats"
	"github.com/hyp3rd/jitterbench/types"
)

// Entry is the per-workload row of a report.
type Entry struct {
	Label  string  `json:"label"`
	Min    uint64  `json:"min"`
	Max    uint64  `json:"max"`
	Avg    uint64  `json:"avg"`
	Jitter uint64  `json:"jitter"`
	StdDev float64 `json:"std_dev"`
	P95    uint64  `json:"p95"`
	P99    uint64  `json:"p99"`
	CV     float64 `json:"cv"`
}

// FromSummary builds the entry of a labelled summary.
func FromSummary(label string, s stats.Summary) Entry {
	return Entry{
		Label:  label,
		Min:    s.Min,
		Max:    s.Max,
		Avg:    s.Avg,
		Jitter: s.Jitter,
		StdDev: s.StdDev,
		P95:    s.P95,
		P99:    s.P99,
		CV:     s.CoefficientOfVariation(),
	}
}

// FromResults builds one entry per result, in order.
func FromResults(results []*types.Result) []Entry {
	entries := make([]Entry, 0, len(results))
	for _, r := range results {
		entries = append(entries, FromSummary(r.Label, r.Summary))
	}

	return entries
}
