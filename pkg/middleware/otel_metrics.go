package middleware

import (
	"context"
	"time"

	"github.com/hyp3rd/ewrap"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/hyp3rd/jitterbench"
	"github.com/hyp3rd/jitterbench/internal/telemetry/attrs"
	"github.com/hyp3rd/jitterbench/pkg/workload"
	"github.com/hyp3rd/jitterbench/types"
)

// OTelMetricsMiddleware emits OpenTelemetry metrics for measured runs.
type OTelMetricsMiddleware struct {
	next  jitterbench.Service
	meter metric.Meter

	// instruments
	runs      metric.Int64Counter
	durations metric.Float64Histogram
	avg       metric.Int64Histogram
	p99       metric.Int64Histogram
	jitter    metric.Int64Histogram
	stdDev    metric.Float64Histogram
}

// NewOTelMetricsMiddleware constructs a metrics middleware using the provided meter.
func NewOTelMetricsMiddleware(next jitterbench.Service, meter metric.Meter) (jitterbench.Service, error) {
	mw := &OTelMetricsMiddleware{next: next, meter: meter}

	var err error

	mw.runs, err = meter.Int64Counter("jitterbench.runs", metric.WithDescription("measured workload runs"))
	if err != nil {
		return nil, ewrap.Wrap(err, "create counter")
	}

	mw.durations, err = meter.Float64Histogram("jitterbench.run.duration.ms", metric.WithUnit("ms"))
	if err != nil {
		return nil, ewrap.Wrap(err, "create duration histogram")
	}

	mw.avg, err = meter.Int64Histogram("jitterbench.sample.avg")
	if err != nil {
		return nil, ewrap.Wrap(err, "create avg histogram")
	}

	mw.p99, err = meter.Int64Histogram("jitterbench.sample.p99")
	if err != nil {
		return nil, ewrap.Wrap(err, "create p99 histogram")
	}

	mw.jitter, err = meter.Int64Histogram("jitterbench.sample.jitter")
	if err != nil {
		return nil, ewrap.Wrap(err, "create jitter histogram")
	}

	mw.stdDev, err = meter.Float64Histogram("jitterbench.sample.stddev")
	if err != nil {
		return nil, ewrap.Wrap(err, "create stddev histogram")
	}

	return mw, nil
}

// Run implements Service.Run with metrics.
func (mw *OTelMetricsMiddleware) Run(ctx context.Context, w workload.Workload) (*types.Result, error) {
	start := time.Now()
	result, err := mw.next.Run(ctx, w)

	name := ""
	if w != nil {
		name = w.Name()
	}

	set := metric.WithAttributes(
		attribute.String(attrs.AttrWorkload, name),
		attribute.Bool("error", err != nil),
	)

	mw.runs.Add(ctx, 1, set)
	mw.durations.Record(ctx, float64(time.Since(start))/float64(time.Millisecond), set)

	if err != nil {
		return nil, err
	}

	sampleSet := metric.WithAttributes(
		attribute.String(attrs.AttrWorkload, name),
		attribute.String(attrs.AttrUnit, result.Unit),
	)

	s := result.Summary
	mw.avg.Record(ctx, clampInt64(s.Avg), sampleSet)
	mw.p99.Record(ctx, clampInt64(s.P99), sampleSet)
	mw.jitter.Record(ctx, clampInt64(s.Jitter), sampleSet)
	mw.stdDev.Record(ctx, s.StdDev, sampleSet)

	return result, nil
}

// Config passes through.
func (mw *OTelMetricsMiddleware) Config() jitterbench.Config {
	return mw.next.Config()
}

// Results passes through.
func (mw *OTelMetricsMiddleware) Results(ctx context.Context) ([]*types.Result, error) {
	return mw.next.Results(ctx)
}

// Result passes through.
func (mw *OTelMetricsMiddleware) Result(ctx context.Context, id string) (*types.Result, error) {
	return mw.next.Result(ctx, id)
}

func clampInt64(v uint64) int64 {
	const maxInt64 = 1<<63 - 1
	if v > maxInt64 {
		return maxInt64
	}

	return int64(v)
}
