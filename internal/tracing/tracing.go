package tracing

import (
	"context"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

const (
	ServiceName     = "yandex-delivery"
	defaultEndpoint = "localhost:4318"
)

// Endpoint returns the OTLP/HTTP collector address from
// OTEL_EXPORTER_OTLP_ENDPOINT, falling back to the local collector.
func Endpoint() string {
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		return v
	}
	return defaultEndpoint
}

// Init installs a batching OTLP tracer provider and returns its shutdown
// hook. On exporter failure tracing stays on the global no-op provider.
func Init(ctx context.Context, serviceName, version string) func(context.Context) {
	endpoint := Endpoint()
	slog.Info("initializing tracing", "otlp_endpoint", endpoint, "service", serviceName)

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	exporter, err := otlptracehttp.New(initCtx,
		otlptracehttp.WithEndpoint(endpoint),
		otlptracehttp.WithInsecure(),
		otlptracehttp.WithTimeout(5*time.Second),
	)
	if err != nil {
		slog.Error("failed to create OTLP exporter", "error", err, "endpoint", endpoint)
		return func(context.Context) {}
	}

	res, err := resource.New(initCtx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(version),
		),
	)
	if err != nil {
		slog.Error("failed to create tracing resource", "error", err)
		return func(context.Context) {}
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter, trace.WithBatchTimeout(time.Second)),
		trace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return func(ctx context.Context) {
		if err := tp.Shutdown(ctx); err != nil {
			slog.Error("tracer provider shutdown failed", "error", err)
			return
		}
		slog.Info("tracing shutdown completed")
	}
}
