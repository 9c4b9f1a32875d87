// Package telemetry sets up OpenTelemetry tracing for check runs.
package telemetry

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
)

// TracerName identifies spans emitted by the orchestrator.
const TracerName = "github.com/sbs-ecosystem/ecocheck"

// ShutdownFunc flushes and stops the provider.
type ShutdownFunc func(context.Context) error

// Options configures the tracer provider.
type Options struct {
	Enabled        bool
	Output         io.Writer
	ServiceName    string
	ServiceVersion string
}

// NewProvider returns a tracer writing pretty-printed spans to Output when
// enabled, and a no-op tracer otherwise.
func NewProvider(ctx context.Context, opts Options) (trace.Tracer, ShutdownFunc, error) {
	if !opts.Enabled {
		return tracenoop.NewTracerProvider().Tracer(TracerName), func(context.Context) error { return nil }, nil
	}
	if opts.Output == nil {
		opts.Output = io.Discard
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(opts.Output),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create trace exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(opts.ServiceName),
			semconv.ServiceVersion(opts.ServiceVersion),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("create resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	return tp.Tracer(TracerName), tp.Shutdown, nil
}
