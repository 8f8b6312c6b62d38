package bridge

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Default tracer name for bind spans.
const defaultTracerName = "storebridge"

// bindSpanName is the span recorded around every bind call.
const bindSpanName = "storebridge.bind"

func startBindSpan(o options, kind Kind, id string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{
		attribute.String("storebridge.kind", string(kind)),
		attribute.String("storebridge.binding_id", id),
	}
	if o.name != "" {
		attrs = append(attrs, attribute.String("storebridge.name", o.name))
	}
	return o.tracer.Start(o.ctx, bindSpanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

func endBindSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if be, ok := err.(*BindingError); ok {
			span.SetAttributes(attribute.String("storebridge.error_code", be.Code))
		}
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
