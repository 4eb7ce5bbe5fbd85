// Package gcljson assembles and serializes Cloud Logging-shaped JSON
// records.
//
// Each record is one JSON object per line. The reserved schema keys
// come first in a fixed order (time, severity, message, source
// location, trace correlation, serviceContext, labels); the merged
// payload fields follow in insertion order, outermost span first, then
// inner spans, then the event's own fields.
package gcljson

import (
	"time"

	"github.com/Masterminds/semver/v3"

	"github.com/gcllog/gcl-go/gclbase"
	"github.com/gcllog/gcl-go/gclnum"
	"github.com/gcllog/gcl-go/gcltrace"
	"github.com/gcllog/gcl-go/gclutil"
)

// The reserved keys of the output schema. Payload fields whose
// (transformed) name collides with one of these are dropped from the
// output rather than corrupting the record.
const (
	TimeKey           = "time"
	SeverityKey       = "severity"
	MessageKey        = "message"
	SourceLocationKey = "logging.googleapis.com/sourceLocation"
	TraceKey          = "logging.googleapis.com/trace"
	SpanIDKey         = "logging.googleapis.com/spanId"
	TraceSampledKey   = "logging.googleapis.com/trace_sampled"
	LabelsKey         = "logging.googleapis.com/labels"
	ServiceContextKey = "serviceContext"
)

// TimePrecision selects how many fractional-second digits the "time"
// key carries.
type TimePrecision int

const (
	Nanoseconds TimePrecision = iota
	Microseconds
	Milliseconds
	Seconds
)

// ServiceContext identifies the running service in the record;
// Cloud Error Reporting groups errors by it.
type ServiceContext struct {
	Service string
	Version *semver.Version
}

// Source is the source-code location that produced an event. A nil
// *Source means unknown, in which case no source-location sub-object
// is emitted at all.
type Source struct {
	File     string
	Line     int
	Function string
}

// Record is the input to one Encode call. SpanFields, EventFields, and
// Labels may each be nil.
type Record struct {
	Time        time.Time
	Severity    gclnum.Severity
	Message     string
	Source      *Source
	Trace       gcltrace.Parts
	SpanFields  *gclbase.Object
	EventFields *gclbase.Object
	Labels      *gclbase.Object
}

type Option func(*Encoder, *gclutil.Prealloc)

// Encoder turns Records into JSON lines. An Encoder is immutable after
// New and safe for concurrent use.
type Encoder struct {
	projectID        string
	service          *ServiceContext
	transformKeys    bool
	overrides        map[string]struct{}
	precision        TimePrecision
	fastKeys         bool
	preallocatedKeys [256]byte
	timeKey          []byte
	severityKey      []byte
	messageKey       []byte
	sourceKey        []byte
	traceKey         []byte
	spanIDKey        []byte
	sampledKey       []byte
	labelsKey        []byte
	serviceKey       []byte
}

func New(opts ...Option) *Encoder {
	e := &Encoder{
		transformKeys: true,
		overrides:     make(map[string]struct{}),
	}
	prealloc := gclutil.NewPrealloc(e.preallocatedKeys[:])
	for _, f := range opts {
		f(e, prealloc)
	}
	e.timeKey = prealloc.Pack(gclutil.BuildKey(TimeKey))
	e.severityKey = prealloc.Pack(gclutil.BuildKey(SeverityKey))
	e.messageKey = prealloc.Pack(gclutil.BuildKey(MessageKey))
	e.sourceKey = prealloc.Pack(gclutil.BuildKey(SourceLocationKey))
	e.traceKey = prealloc.Pack(gclutil.BuildKey(TraceKey))
	e.spanIDKey = prealloc.Pack(gclutil.BuildKey(SpanIDKey))
	e.sampledKey = prealloc.Pack(gclutil.BuildKey(TraceSampledKey))
	e.labelsKey = prealloc.Pack(gclutil.BuildKey(LabelsKey))
	e.serviceKey = prealloc.Pack(gclutil.BuildKey(ServiceContextKey))
	return e
}

// WithProjectID sets the Google Cloud project the formatter's output
// belongs to. When set, trace ids are emitted as fully-qualified
// resource names (projects/<id>/traces/<traceID>); when unset the raw
// trace id is emitted verbatim.
func WithProjectID(projectID string) Option {
	return func(e *Encoder, _ *gclutil.Prealloc) {
		e.projectID = projectID
	}
}

// WithServiceContext attaches a serviceContext sub-object to every
// record.
func WithServiceContext(sc ServiceContext) Option {
	return func(e *Encoder, _ *gclutil.Prealloc) {
		e.service = &sc
	}
}

// WithKeyTransform turns payload key transformation (snake_case to
// camelCase) on or off. It defaults to on.
func WithKeyTransform(on bool) Option {
	return func(e *Encoder, _ *gclutil.Prealloc) {
		e.transformKeys = on
	}
}

// WithOverrideKeys exempts the named keys from transformation; they
// pass through exactly as given.
func WithOverrideKeys(names ...string) Option {
	return func(e *Encoder, _ *gclutil.Prealloc) {
		for _, n := range names {
			e.overrides[n] = struct{}{}
		}
	}
}

// WithTimePrecision sets the fractional-second precision of the "time"
// key. It defaults to Nanoseconds.
func WithTimePrecision(p TimePrecision) Option {
	return func(e *Encoder, _ *gclutil.Prealloc) {
		e.precision = p
	}
}

// WithFastKeys skips escape-checking of payload keys. Only safe when
// every field name is plain ASCII without quotes or backslashes.
func WithFastKeys(on bool) Option {
	return func(e *Encoder, _ *gclutil.Prealloc) {
		e.fastKeys = on
	}
}

// FastKeys reports the WithFastKeys setting; callers that own the
// output buffer propagate it to their JBuilder.
func (e *Encoder) FastKeys() bool { return e.fastKeys }
