package main

import (
	"context"
	"errors"
	"io"

	"github.com/hyp3rd/ewrap"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/hyp3rd/jitterbench"
	"github.com/hyp3rd/jitterbench/pkg/middleware"
)

const instrumentationName = "github.com/hyp3rd/jitterbench"

// telemetry owns the providers behind the OpenTelemetry middlewares.
type telemetry struct {
	tracer *sdktrace.TracerProvider
	meter  *sdkmetric.MeterProvider
}

// newStdoutTelemetry exports spans and metrics as JSON to w.
func newStdoutTelemetry(w io.Writer) (*telemetry, error) {
	spanExporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, ewrap.Wrap(err, "create stdout trace exporter")
	}

	metricExporter, err := stdoutmetric.New(stdoutmetric.WithWriter(w), stdoutmetric.WithPrettyPrint())
	if err != nil {
		return nil, ewrap.Wrap(err, "create stdout metric exporter")
	}

	return &telemetry{
		tracer: sdktrace.NewTracerProvider(sdktrace.WithBatcher(spanExporter)),
		meter:  sdkmetric.NewMeterProvider(sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter))),
	}, nil
}

// wrap decorates svc with the metrics and tracing middlewares. Spans enclose
// the metrics recording of the same run.
func (t *telemetry) wrap(svc jitterbench.Service) (jitterbench.Service, error) {
	svc, err := middleware.NewOTelMetricsMiddleware(svc, t.meter.Meter(instrumentationName))
	if err != nil {
		return nil, err
	}

	return middleware.NewOTelTracingMiddleware(svc, t.tracer.Tracer(instrumentationName)), nil
}

// shutdown flushes pending spans and metrics.
func (t *telemetry) shutdown(ctx context.Context) error {
	return errors.Join(t.tracer.Shutdown(ctx), t.meter.Shutdown(ctx))
}
