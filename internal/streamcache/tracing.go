package streamcache

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "brm/internal/streamcache"

func tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

func startAdmissionSpan(ctx context.Context, spec Spec) (context.Context, trace.Span) {
	return tracer().Start(ctx, "streamcache.admission",
		trace.WithAttributes(
			attribute.String("streamcache.doc_basepath", spec.DocBasepath),
			attribute.String("streamcache.detail_path", spec.DetailPath),
		))
}

func startProceedSpan(ctx context.Context, mode Mode) (context.Context, trace.Span) {
	return tracer().Start(ctx, "streamcache.proceed",
		trace.WithAttributes(attribute.String("streamcache.mode", mode.String())))
}
