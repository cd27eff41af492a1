// Package middleware provides middleware implementations for the jitterbench service.
// This package includes logging middleware that wraps the service to provide
// execution time logging and method call tracing for debugging and monitoring purposes,
// and OpenTelemetry metrics and tracing middlewares.
package middleware

import (
	"context"
	"time"

	"github.com/hyp3rd/jitterbench"
	"github.com/hyp3rd/jitterbench/pkg/workload"
	"github.com/hyp3rd/jitterbench/types"
)

// Logger describes a logging interface allowing to implement different external, or custom logger.
// *log.Logger and slog.NewLogLogger both satisfy it.
type Logger interface {
	Printf(format string, v ...any)
}

// LoggingMiddleware is a middleware that logs the time it takes to execute the next middleware.
// Must implement the jitterbench.Service interface.
type LoggingMiddleware struct {
	next   jitterbench.Service
	logger Logger
}

// NewLoggingMiddleware returns a new LoggingMiddleware.
func NewLoggingMiddleware(next jitterbench.Service, logger Logger) jitterbench.Service {
	return &LoggingMiddleware{next: next, logger: logger}
}

// Run logs the workload, the outcome and the time it took.
func (mw LoggingMiddleware) Run(ctx context.Context, w workload.Workload) (*types.Result, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method Run took: %s", time.Since(begin))
	}(time.Now())

	name := "<nil>"
	if w != nil {
		name = w.Name()
	}

	mw.logger.Printf("Run method called with workload: %s", name)

	result, err := mw.next.Run(ctx, w)
	if err != nil {
		mw.logger.Printf("Run %s failed: %v", name, err)

		return nil, err
	}

	s := result.Summary
	mw.logger.Printf("Run %s: min=%d max=%d avg=%d jitter=%d stddev=%.2f p95=%d p99=%d %s",
		name, s.Min, s.Max, s.Avg, s.Jitter, s.StdDev, s.P95, s.P99, result.Unit)

	return result, nil
}

// Config passes through.
func (mw LoggingMiddleware) Config() jitterbench.Config {
	return mw.next.Config()
}

// Results logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Results(ctx context.Context) ([]*types.Result, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method Results took: %s", time.Since(begin))
	}(time.Now())

	return mw.next.Results(ctx)
}

// Result logs the time it takes to execute the next middleware.
func (mw LoggingMiddleware) Result(ctx context.Context, id string) (*types.Result, error) {
	defer func(begin time.Time) {
		mw.logger.Printf("method Result took: %s", time.Since(begin))
	}(time.Now())

	mw.logger.Printf("Result method invoked with id: %s", id)

	return mw.next.Result(ctx, id)
}
