package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// GlobalTracer is a noop unless the host application installs
// a tracer provider via otel.SetTracerProvider.
var GlobalTracer = otel.Tracer("vitalstats-engine")

// EndSpanWithErrCheck records err on the span (if any) and ends it.
// Meant to be used in a defer together with named error returns.
func EndSpanWithErrCheck(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
