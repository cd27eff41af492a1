// Package workload provides the workload producers measured by jitterbench and the
// timing loop that turns a workload into a sample set.
//
// Each workload is a small, fixed payload exercising one branch or memory-access
// pattern. A workload owns its own state; constructors return fresh instances so
// that repeated runs start from the same state.
package workload

import (
	"strings"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/jitterbench/internal/sentinel"
	"github.com/hyp3rd/jitterbench/pkg/stats"
	"github.com/hyp3rd/jitterbench/pkg/timestamp"
)

// Workload is a payload whose per-iteration execution time is measured.
type Workload interface {
	// Name returns the human-readable label used in reports.
	Name() string
	// Warmup executes one untimed warmup iteration.
	Warmup(i int)
	// Step executes one timed iteration.
	Step(i int)
}

// Constructor builds a fresh workload.
type Constructor func() Workload

// registry lists the workloads in report order.
var registry = []Constructor{
	func() Workload { return NewPureComputation() },
	func() Workload { return NewRegularBranches() },
	func() Workload { return NewPseudoRandomBranches() },
	func() Workload { return NewNestedBranches() },
	func() Workload { return NewMemoryBranchMixed() },
	func() Workload { return NewHighFrequencyBranches() },
}

// Defaults returns fresh instances of every workload, in report order.
func Defaults() []Workload {
	workloads := make([]Workload, 0, len(registry))
	for _, create := range registry {
		workloads = append(workloads, create())
	}

	return workloads
}

// Names returns the labels of every workload, in report order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for _, create := range registry {
		names = append(names, create().Name())
	}

	return names
}

// Lookup returns a fresh workload by label ("Nested Branch Pattern") or slug
// ("nested-branch-pattern"), case-insensitively.
func Lookup(name string) (Workload, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "workload name")
	}

	for _, create := range registry {
		w := create()
		if strings.EqualFold(w.Name(), name) || Slug(w.Name()) == strings.ToLower(name) {
			return w, nil
		}
	}

	return nil, ewrap.Wrap(sentinel.ErrWorkloadNotFound, name)
}

// Slug returns the lower-case, dash-separated form of a workload label.
func Slug(name string) string {
	fields := strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return (r < 'a' || r > 'z') && (r < '0' || r > '9')
	})

	return strings.Join(fields, "-")
}

// Measure runs warmup untimed iterations of w, then iterations timed iterations,
// and returns one counter delta per timed iteration.
func Measure(w Workload, iterations, warmup int) ([]uint64, error) {
	set, err := stats.NewSampleSet(iterations)
	if err != nil {
		return nil, err
	}

	for i := range warmup {
		w.Warmup(i)
	}

	for i := range iterations {
		start := timestamp.Now()

		w.Step(i)

		end := timestamp.Now()

		err = set.Record(timestamp.Elapsed(start, end))
		if err != nil {
			return nil, err
		}
	}

	return set.Samples(), nil
}
