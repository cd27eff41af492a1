package jitterbench

import "github.com/hyp3rd/jitterbench/pkg/backend"

// Option is a function type that can be used to configure the `Bench` struct.
type Option func(*Bench)

// ApplyOptions applies the given options to the given bench.
func ApplyOptions(bench *Bench, options ...Option) {
	for _, option := range options {
		option(bench)
	}
}

// WithConfig replaces the whole configuration. Options applied after it still win.
func WithConfig(cfg Config) Option {
	return func(bench *Bench) {
		bench.config = cfg
	}
}

// WithIterations sets the number of timed iterations per workload.
func WithIterations(iterations int) Option {
	return func(bench *Bench) {
		bench.config.Iterations = iterations
	}
}

// WithWarmup sets the number of untimed warmup iterations per workload.
func WithWarmup(warmup int) Option {
	return func(bench *Bench) {
		bench.config.Warmup = warmup
	}
}

// WithCPU binds the measuring thread to the given logical CPU. A negative
// value disables pinning.
func WithCPU(cpu int) Option {
	return func(bench *Bench) {
		if cpu < 0 {
			cpu = -1
		}

		bench.config.CPU = cpu
	}
}

// WithLockThread toggles locking the measuring goroutine to its OS thread.
func WithLockThread(lock bool) Option {
	return func(bench *Bench) {
		bench.config.LockThread = lock
	}
}

// WithGCDisabled toggles disabling the garbage collector during a run.
func WithGCDisabled(disabled bool) Option {
	return func(bench *Bench) {
		bench.config.DisableGC = disabled
	}
}

// WithKeepSamples toggles storing raw samples with each result.
func WithKeepSamples(keep bool) Option {
	return func(bench *Bench) {
		bench.config.KeepSamples = keep
	}
}

// WithStore sets where results are kept. The default is an unbounded in-memory store.
func WithStore(store backend.IBackend) Option {
	return func(bench *Bench) {
		bench.store = store
	}
}

// WithLogger sets the logger used for run diagnostics.
func WithLogger(logger Logger) Option {
	return func(bench *Bench) {
		bench.logger = logger
	}
}
