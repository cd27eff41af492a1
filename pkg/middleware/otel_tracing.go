package middleware

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/hyp3rd/jitterbench"
	"github.com/hyp3rd/jitterbench/internal/telemetry/attrs"
	"github.com/hyp3rd/jitterbench/pkg/workload"
	"github.com/hyp3rd/jitterbench/types"
)

// OTelTracingMiddleware wraps jitterbench.Service methods with OpenTelemetry spans.
type OTelTracingMiddleware struct {
	next   jitterbench.Service
	tracer trace.Tracer
	// static attributes applied to all spans
	commonAttrs []attribute.KeyValue
}

// OTelTracingOption allows configuring the tracing middleware.
type OTelTracingOption func(*OTelTracingMiddleware)

// WithCommonAttributes sets attributes applied to all spans.
func WithCommonAttributes(attributes ...attribute.KeyValue) OTelTracingOption {
	return func(m *OTelTracingMiddleware) { m.commonAttrs = append(m.commonAttrs, attributes...) }
}

// NewOTelTracingMiddleware creates a tracing middleware.
func NewOTelTracingMiddleware(next jitterbench.Service, tracer trace.Tracer, opts ...OTelTracingOption) jitterbench.Service {
	mw := &OTelTracingMiddleware{next: next, tracer: tracer}
	for _, o := range opts {
		o(mw)
	}

	return mw
}

// Run implements Service.Run with one span per measured workload.
func (mw OTelTracingMiddleware) Run(ctx context.Context, w workload.Workload) (*types.Result, error) {
	cfg := mw.next.Config()

	name := ""
	if w != nil {
		name = w.Name()
	}

	ctx, span := mw.startSpan(ctx, "jitterbench.Run",
		attribute.String(attrs.AttrWorkload, name),
		attribute.Int(attrs.AttrIterations, cfg.Iterations),
		attribute.Int(attrs.AttrWarmup, cfg.Warmup))
	defer span.End()

	result, err := mw.next.Run(ctx, w)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return nil, err
	}

	span.SetAttributes(
		attribute.String(attrs.AttrResultID, result.ID),
		attribute.String(attrs.AttrSource, result.Source),
		attribute.String(attrs.AttrUnit, result.Unit),
		attribute.Int64("summary.avg", clampInt64(result.Summary.Avg)),
		attribute.Int64("summary.p99", clampInt64(result.Summary.P99)),
	)

	return result, nil
}

// Config returns the measurement settings.
func (mw OTelTracingMiddleware) Config() jitterbench.Config {
	return mw.next.Config()
}

// Results lists stored results with a span.
func (mw OTelTracingMiddleware) Results(ctx context.Context) ([]*types.Result, error) {
	ctx, span := mw.startSpan(ctx, "jitterbench.Results")
	defer span.End()

	results, err := mw.next.Results(ctx)
	if err != nil {
		span.RecordError(err)

		return nil, err
	}

	span.SetAttributes(attribute.Int("result.count", len(results)))

	return results, nil
}

// Result fetches a stored result with a span.
func (mw OTelTracingMiddleware) Result(ctx context.Context, id string) (*types.Result, error) {
	ctx, span := mw.startSpan(ctx, "jitterbench.Result", attribute.String(attrs.AttrResultID, id))
	defer span.End()

	result, err := mw.next.Result(ctx, id)
	if err != nil {
		span.RecordError(err)
	}

	return result, err
}

// startSpan starts a span with common and provided attributes.
func (mw OTelTracingMiddleware) startSpan(ctx context.Context, name string, attributes ...attribute.KeyValue) (context.Context, trace.Span) {
	ctx, span := mw.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	if len(mw.commonAttrs) > 0 {
		span.SetAttributes(mw.commonAttrs...)
	}

	if len(attributes) > 0 {
		span.SetAttributes(attributes...)
	}

	return ctx, span
}
