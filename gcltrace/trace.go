package gcltrace

// Parts is the trace correlation attached to one log record. The
// formatter never generates these; they always originate with the
// caller (an incoming request header, an OpenTelemetry span, ...).
type Parts struct {
	TraceID HexBytes16
	SpanID  HexBytes8
	Sampled bool
}

func (p Parts) IsZero() bool {
	return p.TraceID.IsZero() && p.SpanID.IsZero() && !p.Sampled
}

// ResourceName renders a trace id as the fully-qualified resource name
// Cloud Logging uses to join log entries with Cloud Trace:
// projects/<projectID>/traces/<traceID>.
func ResourceName(projectID string, traceID HexBytes16) string {
	return "projects/" + projectID + "/traces/" + traceID.String()
}
