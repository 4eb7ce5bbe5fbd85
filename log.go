package gcl

import (
	"runtime"
	"time"

	"github.com/pkg/errors"

	"github.com/gcllog/gcl-go/gcljson"
	"github.com/gcllog/gcl-go/gclnum"
	"github.com/gcllog/gcl-go/gcltrace"
)

type EmitOption func(*emitSettings)

type emitSettings struct {
	trace  gcltrace.Parts
	source *gcljson.Source
	when   time.Time
}

// WithTrace attaches trace correlation to the record. Without it the
// trace keys are omitted entirely.
func WithTrace(p gcltrace.Parts) EmitOption {
	return func(s *emitSettings) {
		s.trace = p
	}
}

// WithSourceLocation attaches an explicit source location.
func WithSourceLocation(file string, line int) EmitOption {
	return func(s *emitSettings) {
		s.source = &gcljson.Source{File: file, Line: line}
	}
}

// WithCaller resolves the source location from the call stack. skip
// counts frames above the Log call itself: 0 names Log's caller.
func WithCaller(skip int) EmitOption {
	pc := make([]uintptr, 1)
	var source *gcljson.Source
	if runtime.Callers(skip+2, pc) > 0 {
		frames := runtime.CallersFrames(pc)
		frame, _ := frames.Next()
		source = &gcljson.Source{
			File:     frame.File,
			Line:     frame.Line,
			Function: frame.Function,
		}
	}
	return func(s *emitSettings) {
		s.source = source
	}
}

// WithTime overrides the record timestamp, which otherwise is the time
// of the Log call.
func WithTime(t time.Time) EmitOption {
	return func(s *emitSettings) {
		s.when = t
	}
}

// Log builds and emits one record: the context's resolved span fields,
// overlaid with the event's own fields (event wins ties), wrapped in
// the reserved schema keys, serialized, and handed to the sink as one
// line.
//
// A sink write fault is reported to the error reporter and returned;
// nothing in the build itself can fail.
func (c *Context) Log(level gclnum.Level, msg string, fields []Field, opts ...EmitOption) error {
	settings := emitSettings{when: time.Now()}
	for _, opt := range opts {
		opt(&settings)
	}

	eventPayload, eventLabels := c.formatter.captureFields(fields)
	labels := c.resolveLabels()
	if eventLabels != nil {
		if labels == nil {
			labels = eventLabels
		} else {
			labels.MergeFrom(eventLabels)
		}
	}

	rec := gcljson.Record{
		Time:        settings.when,
		Severity:    level.Severity(),
		Message:     msg,
		Source:      settings.source,
		Trace:       settings.trace,
		SpanFields:  c.ResolveFields(),
		EventFields: eventPayload,
		Labels:      labels,
	}

	f := c.formatter
	b := f.builder()
	f.encoder.Encode(b, rec)
	err := f.writer.Record(b.B)
	f.reclaim(b)
	if err != nil {
		err = errors.Wrap(err, "gcl: write record")
		f.errorFunc(err)
		return err
	}
	return nil
}

// Log is Context.Log keyed by context identity, for callers that do
// not hold the Context.
func (f *Formatter) Log(ctxID interface{}, level gclnum.Level, msg string, fields []Field, opts ...EmitOption) error {
	return f.Context(ctxID).Log(level, msg, fields, opts...)
}

func (c *Context) Trace(msg string, fields ...Field) error {
	return c.Log(gclnum.TraceLevel, msg, fields)
}

func (c *Context) Debug(msg string, fields ...Field) error {
	return c.Log(gclnum.DebugLevel, msg, fields)
}

func (c *Context) Info(msg string, fields ...Field) error {
	return c.Log(gclnum.InfoLevel, msg, fields)
}

func (c *Context) Warn(msg string, fields ...Field) error {
	return c.Log(gclnum.WarnLevel, msg, fields)
}

func (c *Context) Error(msg string, fields ...Field) error {
	return c.Log(gclnum.ErrorLevel, msg, fields)
}
