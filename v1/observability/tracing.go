package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// TracingObserver records every observed operation as an OpenTelemetry
// span. Because the observer is notified after the operation completes,
// spans are created retroactively with explicit start and end timestamps
// derived from the operation duration.
type TracingObserver struct {
	tracer trace.Tracer
}

// NewTracingObserver creates an observer that emits spans via the given
// tracer provider. A nil provider falls back to the global provider.
func NewTracingObserver(tp trace.TracerProvider) *TracingObserver {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &TracingObserver{tracer: tp.Tracer("std/observability")}
}

// ObserveOperation implements Observer.
func (o *TracingObserver) ObserveOperation(opCtx OperationContext) {
	if o == nil || o.tracer == nil {
		return
	}

	end := time.Now()
	start := end.Add(-opCtx.Duration)

	_, span := o.tracer.Start(context.Background(),
		fmt.Sprintf("%s.%s", opCtx.Component, opCtx.Operation),
		trace.WithTimestamp(start),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("component", opCtx.Component),
			attribute.String("operation", opCtx.Operation),
			attribute.String("resource", opCtx.Resource),
			attribute.Int64("size", opCtx.Size),
		),
	)
	if opCtx.SubResource != "" {
		span.SetAttributes(attribute.String("sub_resource", opCtx.SubResource))
	}
	if opCtx.Error != nil {
		span.RecordError(opCtx.Error)
		span.SetStatus(codes.Error, opCtx.Error.Error())
	}
	span.End(trace.WithTimestamp(end))
}

// TracerConfig holds settings for the OTLP trace exporter.
type TracerConfig struct {
	// ServiceName identifies this process in trace backends.
	ServiceName string `yaml:"service_name" env:"OTEL_SERVICE_NAME"`

	// Endpoint is the OTLP/HTTP collector endpoint, e.g. "localhost:4318".
	Endpoint string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`

	// Insecure disables TLS toward the collector.
	Insecure bool `yaml:"insecure" env:"OTEL_EXPORTER_OTLP_INSECURE"`
}

// NewTracerProvider builds an OTLP/HTTP-exporting tracer provider and
// installs it as the global provider. The returned shutdown function
// flushes pending spans; call it on process exit.
func NewTracerProvider(ctx context.Context, cfg TracerConfig) (*sdktrace.TracerProvider, func(context.Context) error, error) {
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptrace.New(ctx, otlptracehttp.NewClient(opts...))
	if err != nil {
		return nil, nil, fmt.Errorf("[Observability] failed to create OTLP exporter: %w", err)
	}

	res, err := sdkresource.Merge(
		sdkresource.Default(),
		sdkresource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(cfg.ServiceName),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("[Observability] failed to build resource: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	return tp, tp.Shutdown, nil
}
