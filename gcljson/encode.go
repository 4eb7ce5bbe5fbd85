package gcljson

import (
	"time"

	"github.com/gcllog/gcl-go/gclbase"
	"github.com/gcllog/gcl-go/gclnum"
	"github.com/gcllog/gcl-go/gcltrace"
	"github.com/gcllog/gcl-go/gclutil"
)

// Encode appends one serialized record, newline included, to b.
//
// Reserved keys are always emitted first and in a fixed order so that
// the output is stable for tests and for humans tailing the stream.
// The merged payload follows: span fields outer to inner, then event
// fields, with inner and event values winning name collisions while
// keeping the collided key's original position.
func (e *Encoder) Encode(b *gclutil.JBuilder, rec Record) {
	b.AppendByte('{')

	b.Comma()
	b.AppendBytes(e.timeKey)
	e.appendTime(b, rec.Time)

	severity := rec.Severity
	if severity == "" {
		severity = gclnum.SeverityDefault
	}
	b.Comma()
	b.AppendBytes(e.severityKey)
	b.AddSafeString(string(severity))

	b.Comma()
	b.AppendBytes(e.messageKey)
	b.AddString(rec.Message)

	if rec.Source != nil {
		b.Comma()
		b.AppendBytes(e.sourceKey)
		b.AppendByte('{')
		b.AddSafeKey("file")
		b.AddString(rec.Source.File)
		b.AddSafeKey("line")
		b.AddInt64(int64(rec.Source.Line))
		if rec.Source.Function != "" {
			b.AddSafeKey("function")
			b.AddString(rec.Source.Function)
		}
		b.AppendByte('}')
	}

	if !rec.Trace.TraceID.IsZero() {
		b.Comma()
		b.AppendBytes(e.traceKey)
		if e.projectID != "" {
			b.AddString(gcltrace.ResourceName(e.projectID, rec.Trace.TraceID))
		} else {
			b.AddSafeString(rec.Trace.TraceID.String())
		}
	}
	if !rec.Trace.SpanID.IsZero() {
		b.Comma()
		b.AppendBytes(e.spanIDKey)
		b.AddSafeString(rec.Trace.SpanID.String())
	}
	if rec.Trace.Sampled {
		b.Comma()
		b.AppendBytes(e.sampledKey)
		b.AddBool(true)
	}

	if e.service != nil {
		b.Comma()
		b.AppendBytes(e.serviceKey)
		b.AppendByte('{')
		b.AddSafeKey("service")
		b.AddString(e.service.Service)
		if e.service.Version != nil {
			b.AddSafeKey("version")
			b.AddString(e.service.Version.String())
		}
		b.AppendByte('}')
	}

	if rec.Labels.Len() > 0 {
		b.Comma()
		b.AppendBytes(e.labelsKey)
		b.AppendByte('{')
		rec.Labels.Range(func(k string, v gclbase.Value) bool {
			b.AddKey(k)
			e.appendLabelValue(b, v)
			return true
		})
		b.AppendByte('}')
	}

	e.appendPayload(b, rec.SpanFields, rec.EventFields)

	b.AppendBytes([]byte{'}', '\n'})
}

func (e *Encoder) appendPayload(b *gclutil.JBuilder, span, event *gclbase.Object) {
	if span.Len() == 0 && event.Len() == 0 {
		return
	}
	merged := gclbase.NewObject()
	merged.MergeFrom(span)
	merged.MergeFrom(event)
	// Keyed by post-transform name so that two raw keys mapping to the
	// same output name (cart_id and cartId) cannot produce duplicate
	// JSON keys; the later one wins, keeping the earlier position.
	out := gclbase.NewObject()
	merged.Range(func(k string, v gclbase.Value) bool {
		name := e.TransformKey(k)
		if isReservedKey(name) {
			return true
		}
		out.Set(name, v)
		return true
	})
	out.Range(func(name string, v gclbase.Value) bool {
		b.AddKey(name)
		e.appendValue(b, v)
		return true
	})
}

func (e *Encoder) appendValue(b *gclutil.JBuilder, v gclbase.Value) {
	switch v.Kind {
	case gclbase.NullKind:
		b.AppendString("null")
	case gclbase.BoolKind:
		b.AddBool(v.Bool())
	case gclbase.IntKind:
		b.AddInt64(v.Int)
	case gclbase.UintKind:
		b.AddUint64(v.Uint)
	case gclbase.FloatKind:
		b.AddFloat64(v.Float)
	case gclbase.StringKind:
		b.AddString(v.Str)
	case gclbase.ListKind:
		b.AppendByte('[')
		for _, item := range v.List {
			b.Comma()
			e.appendValue(b, item)
		}
		b.AppendByte(']')
	case gclbase.ObjectKind:
		b.AppendByte('{')
		v.Obj.Range(func(k string, item gclbase.Value) bool {
			b.AddKey(k)
			e.appendValue(b, item)
			return true
		})
		b.AppendByte('}')
	default:
		b.AppendString("null")
	}
}

// appendLabelValue writes a label value. Cloud Logging labels are a
// string map, so non-string values are flattened to their JSON text.
func (e *Encoder) appendLabelValue(b *gclutil.JBuilder, v gclbase.Value) {
	if v.Kind == gclbase.StringKind {
		b.AddString(v.Str)
		return
	}
	var tmp gclutil.JBuilder
	e.appendValue(&tmp, v)
	b.AddString(string(tmp.B))
}

func (e *Encoder) appendTime(b *gclutil.JBuilder, t time.Time) {
	var layout string
	switch e.precision {
	case Microseconds:
		layout = "2006-01-02T15:04:05.000000Z07:00"
	case Milliseconds:
		layout = "2006-01-02T15:04:05.000Z07:00"
	case Seconds:
		layout = "2006-01-02T15:04:05Z07:00"
	case Nanoseconds:
		fallthrough
	default:
		layout = "2006-01-02T15:04:05.000000000Z07:00"
	}
	b.AppendByte('"')
	b.B = t.UTC().AppendFormat(b.B, layout)
	b.AppendByte('"')
}
