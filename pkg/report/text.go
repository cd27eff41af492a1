package report

import (
	"fmt"
	"io"

	"github.com/hyp3rd/jitterbench/pkg/stats"
	"github.com/hyp3rd/jitterbench/types"
)

// WriteBanner writes the run header.
func WriteBanner(w io.Writer, iterations, warmup int) error {
	_, err := fmt.Fprintf(w,
		"Scientific Real-time Determinism Test\n"+
			"Testing CPU predictability under various branch patterns\n"+
			"Iterations: %d (+ %d warmup)\n\n",
		iterations, warmup)

	return err
}

// WriteSummary writes the block of one workload, followed by a blank line.
func WriteSummary(w io.Writer, label string, s stats.Summary) error {
	_, err := fmt.Fprintf(w,
		"=== %s ===\n"+
			"  Min: %d, Max: %d, Avg: %d\n"+
			"  Jitter: %d, Std Dev: %.2f\n"+
			"  95th percentile: %d, 99th percentile: %d\n"+
			"  Coefficient of Variation: %.4f\n\n",
		label,
		s.Min, s.Max, s.Avg,
		s.Jitter, s.StdDev,
		s.P95, s.P99,
		s.CoefficientOfVariation())

	return err
}

// WriteText writes the banner and one block per result.
func WriteText(w io.Writer, iterations, warmup int, results []*types.Result) error {
	err := WriteBanner(w, iterations, warmup)
	if err != nil {
		return err
	}

	for _, r := range results {
		err = WriteSummary(w, r.Label, r.Summary)
		if err != nil {
			return err
		}
	}

	return nil
}
