// Package gclgrpc extracts Cloud Logging trace correlation from
// incoming gRPC request metadata.
package gclgrpc

import (
	"context"
	"encoding/binary"
	"strconv"
	"strings"

	"google.golang.org/grpc/metadata"

	"github.com/gcllog/gcl-go/gcltrace"
)

// TraceContextHeader is the metadata key Google's load balancers and
// client libraries use to propagate trace context:
// TRACE_ID/SPAN_ID;o=OPTIONS with a 32-hex-digit trace id, a decimal
// span id, and o=1 when the trace is sampled.
const TraceContextHeader = "x-cloud-trace-context"

// FromIncomingContext reads the trace context header from incoming
// gRPC metadata. The second return is false when no usable header is
// present.
func FromIncomingContext(ctx context.Context) (gcltrace.Parts, bool) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return gcltrace.Parts{}, false
	}
	headers := md.Get(TraceContextHeader)
	if len(headers) == 0 {
		return gcltrace.Parts{}, false
	}
	return ParseHeader(headers[0])
}

// ParseHeader parses one x-cloud-trace-context header value.
func ParseHeader(header string) (gcltrace.Parts, bool) {
	var parts gcltrace.Parts
	rest := header
	if i := strings.IndexByte(rest, ';'); i != -1 {
		parts.Sampled = strings.Contains(rest[i+1:], "o=1")
		rest = rest[:i]
	}
	traceID := rest
	if i := strings.IndexByte(rest, '/'); i != -1 {
		traceID = rest[:i]
		if spanID, err := strconv.ParseUint(rest[i+1:], 10, 64); err == nil {
			var raw [8]byte
			binary.BigEndian.PutUint64(raw[:], spanID)
			parts.SpanID = gcltrace.NewHexBytes8FromSlice(raw[:])
		}
	}
	parts.TraceID = gcltrace.NewHexBytes16FromString(traceID)
	if parts.TraceID.IsZero() {
		return gcltrace.Parts{}, false
	}
	return parts, true
}
