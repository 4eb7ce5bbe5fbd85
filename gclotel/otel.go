// Package gclotel extracts Cloud Logging trace correlation from
// OpenTelemetry span contexts so that records emitted inside an OTEL
// span line up with the trace in the Cloud console.
package gclotel

import (
	"context"

	"go.opentelemetry.io/otel/trace"

	"github.com/gcllog/gcl-go/gcltrace"
)

// Parts converts an OpenTelemetry span context. An invalid span
// context converts to the zero Parts, which the formatter renders as
// no trace keys at all.
func Parts(sc trace.SpanContext) gcltrace.Parts {
	if !sc.IsValid() {
		return gcltrace.Parts{}
	}
	traceID := sc.TraceID()
	spanID := sc.SpanID()
	return gcltrace.Parts{
		TraceID: gcltrace.NewHexBytes16FromSlice(traceID[:]),
		SpanID:  gcltrace.NewHexBytes8FromSlice(spanID[:]),
		Sampled: sc.IsSampled(),
	}
}

// FromContext extracts the current span's correlation from a
// context.Context.
func FromContext(ctx context.Context) gcltrace.Parts {
	return Parts(trace.SpanContextFromContext(ctx))
}
