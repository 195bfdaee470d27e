package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"brm/pkg/config"
)

// StartTracing installs a process-wide OpenTelemetry SDK TracerProvider so
// the spans internal/streamcache already creates (streamcache.admission,
// streamcache.proceed) are sampled and timed instead of landing on the
// package default no-op tracer. cfg is the "tracing" sub-config.
//
// This repository has no trace backend to export to (no collector
// endpoint is part of its deployment surface), so no span exporter is
// registered; the SDK provider still samples and records spans, which is
// enough to exercise the dependency and keep span timing/attributes
// meaningful for anything reading them in-process (tests, a future
// exporter). Swap in otlptracegrpc/otlptracehttp once a collector
// endpoint exists.
func StartTracing(cfg *config.Config, serviceName string) (shutdown func(context.Context) error, err error) {
	if !cfg.GetBoolWithDefault("enabled", false) {
		return func(context.Context) error { return nil }, nil
	}

	sampleRate := 1.0
	if cfg.Exists("sampleRate") {
		sampleRate = cfg.GetFloat64("sampleRate")
	}
	var sampler sdktrace.Sampler
	switch {
	case sampleRate <= 0:
		sampler = sdktrace.NeverSample()
	case sampleRate >= 1:
		sampler = sdktrace.AlwaysSample()
	default:
		sampler = sdktrace.TraceIDRatioBased(sampleRate)
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(semconv.ServiceName(serviceName)),
		resource.WithHost(),
		resource.WithProcess(),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: build resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(sdktrace.WithSampler(sampler), sdktrace.WithResource(res))
	otel.SetTracerProvider(provider)

	shutdown = func(ctx context.Context) error {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("telemetry: shutdown tracer provider: %w", err)
		}
		return nil
	}
	return shutdown, nil
}
