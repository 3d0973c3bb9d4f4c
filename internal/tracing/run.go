package tracing

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Run executes fn inside a span named name. The session id in ctx, if any, is
// attached as an attribute. An error returned by fn is recorded on the span and
// returned unchanged; otherwise the span ends with status OK.
func Run(ctx context.Context, tracer trace.Tracer, name string, attrs []attribute.KeyValue, fn func(context.Context, trace.Span) error) error {
	if tracer == nil {
		return fn(ctx, trace.SpanFromContext(ctx))
	}

	ctx, span := tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	if sessionID := SessionIDFromContext(ctx); sessionID != "" {
		span.SetAttributes(attribute.String(AttrSessionID, sessionID))
	}
	span.SetAttributes(attrs...)

	err := fn(ctx, span)
	RecordOutcome(span, err)
	return err
}

// RecordOutcome sets the span status from err.
func RecordOutcome(span trace.Span, err error) {
	if err == nil {
		span.SetStatus(codes.Ok, "")
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String(AttrErrorType, errorType(err)))
}

// errorType returns the message of the innermost wrapped error, which for org
// chart errors is the sentinel ("employee not found").
func errorType(err error) string {
	for {
		next := errors.Unwrap(err)
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
