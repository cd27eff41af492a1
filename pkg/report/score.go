package report

import (
	"cmp"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/hyp3rd/jitterbench/types"
)

// Weights of the sub-scores in the overall score.
const (
	weightJitter = 0.20
	weightStdDev = 0.20
	weightCV     = 0.25
	weightRatio  = 0.15
	weightP99    = 0.20
)

// Scorecard grades one workload relative to the others of the same report.
// Sub-scores run from 0 to 100, higher meaning more predictable.
type Scorecard struct {
	Label       string      `json:"label"`
	JitterScore float64     `json:"jitter_score"`
	StdDevScore float64     `json:"std_dev_score"`
	CVScore     float64     `json:"cv_score"`
	RatioScore  float64     `json:"ratio_score"`
	P99Score    float64     `json:"p99_score"`
	Overall     float64     `json:"overall_score"`
	Grade       types.Grade `json:"rt_grade"`
	MaxAvgRatio float64     `json:"max_avg_ratio"`
	P99AvgRatio float64     `json:"p99_avg_ratio"`
	CV          float64     `json:"cv"`
}

// Score grades every entry against the worst value of each metric across all
// entries. The result keeps the order of entries.
func Score(entries []Entry) []Scorecard {
	if len(entries) == 0 {
		return nil
	}

	var maxJitter, maxStdDev, maxCV, maxRatio, maxP99Ratio float64

	for _, e := range entries {
		maxJitter = max(maxJitter, float64(e.Jitter))
		maxStdDev = max(maxStdDev, e.StdDev)
		maxCV = max(maxCV, e.CV)
		maxRatio = max(maxRatio, ratio(e.Max, e.Avg))
		maxP99Ratio = max(maxP99Ratio, ratio(e.P99, e.Avg))
	}

	cards := make([]Scorecard, 0, len(entries))

	for _, e := range entries {
		maxAvg := ratio(e.Max, e.Avg)
		p99Avg := ratio(e.P99, e.Avg)

		jitter := subScore(float64(e.Jitter), maxJitter)
		stdDev := subScore(e.StdDev, maxStdDev)
		cv := subScore(e.CV, maxCV)
		ratioScore := subScore(maxAvg, maxRatio)
		p99 := subScore(p99Avg, maxP99Ratio)

		overall := weightJitter*jitter +
			weightStdDev*stdDev +
			weightCV*cv +
			weightRatio*ratioScore +
			weightP99*p99

		cards = append(cards, Scorecard{
			Label:       e.Label,
			JitterScore: round(jitter, 2),
			StdDevScore: round(stdDev, 2),
			CVScore:     round(cv, 2),
			RatioScore:  round(ratioScore, 2),
			P99Score:    round(p99, 2),
			Overall:     round(overall, 2),
			Grade:       types.GradeFor(overall),
			MaxAvgRatio: round(maxAvg, 3),
			P99AvgRatio: round(p99Avg, 3),
			CV:          e.CV,
		})
	}

	return cards
}

// subScore maps v onto 0..100 against the worst value. A zero worst value means
// every entry is perfect on that metric.
func subScore(v, worst float64) float64 {
	if worst == 0 {
		return 100
	}

	return max(0, 100*(1-v/worst))
}

// ratio returns num/den, or 0 when den is 0.
func ratio(num, den uint64) float64 {
	if den == 0 {
		return 0
	}

	return float64(num) / float64(den)
}

func round(v float64, places int) float64 {
	scale := math.Pow10(places)

	return math.Round(v*scale) / scale
}

// Rank returns the scorecards ordered by overall score, best first. Ties keep
// their input order.
func Rank(cards []Scorecard) []Scorecard {
	ranked := slices.Clone(cards)
	slices.SortStableFunc(ranked, func(a, b Scorecard) int {
		return cmp.Compare(b.Overall, a.Overall)
	})

	return ranked
}

// WriteRanking writes the ranking table.
func WriteRanking(w io.Writer, cards []Scorecard) error {
	rule := strings.Repeat("=", 80)

	var sb strings.Builder

	fmt.Fprintf(&sb, "\n%s\n              Real-time analysis summary\n%s\n", rule, rule)
	fmt.Fprintf(&sb, "%-4s %-25s %-10s %-12s %-10s\n", "Rank", "Test Case", "Overall Score", "Grade", "CV")
	sb.WriteString(strings.Repeat("-", 80) + "\n")

	for i, card := range Rank(cards) {
		fmt.Fprintf(&sb, "%-4d %-25s %-10.1f %-12s %-10.4f\n", i+1, card.Label, card.Overall, card.Grade, card.CV)
	}

	_, err := io.WriteString(w, sb.String())

	return err
}
