// Package jitterbench measures how predictably a CPU executes small, branchy
// workloads. A Bench times every iteration of a workload with the cheapest
// monotonic counter of the platform, reduces the sample set to summary
// statistics, and keeps the result in a pluggable store.
//
// Runs are serialized: only one workload is measured at a time so that runs
// never compete for the same cores.
package jitterbench

import (
	"context"
	"runtime"
	"runtime/debug"
	"sync"
	"time"

	"github.com/hyp3rd/ewrap"

	"github.com/hyp3rd/jitterbench/internal/affinity"
	"github.com/hyp3rd/jitterbench/internal/sentinel"
	"github.com/hyp3rd/jitterbench/pkg/backend"
	"github.com/hyp3rd/jitterbench/pkg/stats"
	"github.com/hyp3rd/jitterbench/pkg/timestamp"
	"github.com/hyp3rd/jitterbench/pkg/workload"
	"github.com/hyp3rd/jitterbench/types"
)

// Logger describes a logging interface allowing to plug any external, or custom logger.
type Logger interface {
	Printf(format string, v ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// Bench measures workloads and keeps their results. It implements Service.
type Bench struct {
	mu     sync.Mutex // serializes runs
	config Config
	store  backend.IBackend
	logger Logger
}

// New builds a Bench from the defaults overlaid with opts. It fails when the
// configuration is invalid or the timestamp counter is unusable.
func New(opts ...Option) (*Bench, error) {
	bench := &Bench{
		config: NewConfig(),
		logger: nopLogger{},
	}

	ApplyOptions(bench, opts...)

	err := bench.config.Validate()
	if err != nil {
		return nil, err
	}

	err = timestamp.Check()
	if err != nil {
		return nil, err
	}

	if bench.store == nil {
		bench.store, err = backend.NewInMemory()
		if err != nil {
			return nil, err
		}
	}

	if bench.logger == nil {
		bench.logger = nopLogger{}
	}

	return bench, nil
}

// Config returns a copy of the measurement settings.
func (b *Bench) Config() Config {
	return b.config
}

// Run measures w and stores the result.
func (b *Bench) Run(ctx context.Context, w workload.Workload) (*types.Result, error) {
	if w == nil {
		return nil, ewrap.Wrap(sentinel.ErrParamCannotBeEmpty, "workload")
	}

	err := ctx.Err()
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	startedAt := time.Now()

	samples, err := b.measure(w)
	if err != nil {
		return nil, ewrap.Wrapf(err, "measuring %s", w.Name())
	}

	duration := time.Since(startedAt)

	summary, err := stats.Summarize(samples)
	if err != nil {
		return nil, ewrap.Wrapf(err, "summarizing %s", w.Name())
	}

	result := &types.Result{
		ID:         types.Fingerprint(w.Name(), startedAt, samples),
		Label:      w.Name(),
		Source:     timestamp.Source(),
		Unit:       timestamp.CounterUnit().String(),
		Iterations: b.config.Iterations,
		Warmup:     b.config.Warmup,
		StartedAt:  startedAt,
		Duration:   duration,
		Summary:    summary,
	}

	if b.config.KeepSamples {
		result.Samples = samples
	}

	err = b.store.Put(ctx, result)
	if err != nil {
		return nil, ewrap.Wrapf(err, "storing %s", w.Name())
	}

	return result, nil
}

// measure runs the timing loop with the runtime tuned as configured.
func (b *Bench) measure(w workload.Workload) ([]uint64, error) {
	if b.config.LockThread || b.config.CPU >= 0 {
		release, err := affinity.Pin(b.config.CPU)
		if err != nil {
			b.logger.Printf("cpu pinning unavailable, measuring unpinned: %v", err)
		}

		defer release()
	}

	if b.config.DisableGC {
		// start from a clean heap so a collection is not already due
		runtime.GC()

		previous := debug.SetGCPercent(-1)
		defer debug.SetGCPercent(previous)
	}

	return workload.Measure(w, b.config.Iterations, b.config.Warmup)
}

// Results returns every stored result, oldest first.
func (b *Bench) Results(ctx context.Context) ([]*types.Result, error) {
	return b.store.List(ctx)
}

// Result returns the stored result with the given id.
func (b *Bench) Result(ctx context.Context, id string) (*types.Result, error) {
	return b.store.Get(ctx, id)
}

// RunSuite measures the workloads one after another through svc. It stops at
// the first error or when ctx is done, returning the results gathered so far.
func RunSuite(ctx context.Context, svc Service, workloads ...workload.Workload) ([]*types.Result, error) {
	results := make([]*types.Result, 0, len(workloads))

	for _, w := range workloads {
		err := ctx.Err()
		if err != nil {
			return results, err
		}

		result, err := svc.Run(ctx, w)
		if err != nil {
			return results, err
		}

		results = append(results, result)
	}

	return results, nil
}
