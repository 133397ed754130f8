package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/schedkit/schedkit/job"
)

// tracerName is the instrumentation scope name for scheduler tracing.
const tracerName = "github.com/schedkit/schedkit"

// Tracing returns middleware that wraps job execution in an OpenTelemetry span.
// If no TracerProvider is configured globally, the default noop tracer is used
// and this middleware becomes a pass-through with zero overhead.
//
// Span attributes include: schedkit.job.name, schedkit.job.category,
// schedkit.job.priority, schedkit.job.max_retries. On error, the span
// status is set to codes.Error with the error message.
func Tracing() Middleware {
	tracer := otel.Tracer(tracerName)
	return TracingWithTracer(tracer)
}

// TracingWithTracer returns tracing middleware using the provided tracer.
// This variant allows injecting a specific TracerProvider for testing or
// when multiple providers are in use.
func TracingWithTracer(tracer trace.Tracer) Middleware {
	return func(ctx context.Context, j *job.Job, next Handler) error {
		ctx, span := tracer.Start(ctx, "schedkit.job.execute",
			trace.WithAttributes(
				attribute.String("schedkit.job.name", j.Name),
				attribute.String("schedkit.job.category", j.Metadata.Category),
				attribute.Int("schedkit.job.priority", j.Metadata.Priority),
				attribute.Int("schedkit.job.max_retries", j.Metadata.MaxRetries),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		err := next(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return err
	}
}
