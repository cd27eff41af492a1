package report

import (
	"encoding/csv"
	"io"
	"slices"
	"strconv"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/jitterbench/pkg/workload"
)

var csvHeader = []string{
	"Test_Case",
	"Min_Cycles", "Max_Cycles", "Avg_Cycles",
	"Jitter_Cycles", "Std_Dev", "CV",
	"P95_Cycles", "P99_Cycles",
	"Max_Avg_Ratio", "P99_Avg_Ratio",
	"Jitter_Score", "StdDev_Score", "CV_Score",
	"Ratio_Score", "P99_Score", "Overall_RT_Score",
	"RT_Grade",
}

// WriteCSV writes one row per entry with its scorecard. Built-in workloads come
// first in their canonical order, any other labels follow in input order.
//
// Floats use the shortest decimal that round-trips, so whole values print as
// "100" and "0" rather than "100.0" and "0.0".
func WriteCSV(w io.Writer, entries []Entry) error {
	cards := Score(entries)

	writer := csv.NewWriter(w)

	err := writer.Write(csvHeader)
	if err != nil {
		return ewrap.Wrap(err, "writing csv header")
	}

	for _, i := range canonicalOrder(entries) {
		e, card := entries[i], cards[i]

		err = writer.Write([]string{
			e.Label,
			formatUint(e.Min), formatUint(e.Max), formatUint(e.Avg),
			formatUint(e.Jitter), formatFloat(e.StdDev), formatFloat(e.CV),
			formatUint(e.P95), formatUint(e.P99),
			formatFloat(card.MaxAvgRatio), formatFloat(card.P99AvgRatio),
			formatFloat(card.JitterScore), formatFloat(card.StdDevScore), formatFloat(card.CVScore),
			formatFloat(card.RatioScore), formatFloat(card.P99Score), formatFloat(card.Overall),
			card.Grade.String(),
		})
		if err != nil {
			return ewrap.Wrapf(err, "writing csv row %s", e.Label)
		}
	}

	writer.Flush()

	return writer.Error()
}

// canonicalOrder returns entry indexes: known workloads in registry order, then the rest.
func canonicalOrder(entries []Entry) []int {
	order := make([]int, 0, len(entries))

	for _, name := range workload.Names() {
		i := slices.IndexFunc(entries, func(e Entry) bool { return e.Label == name })
		if i >= 0 {
			order = append(order, i)
		}
	}

	for i := range entries {
		if !slices.Contains(order, i) {
			order = append(order, i)
		}
	}

	return order
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
