package gcl

import (
	"fmt"
	"os"
	"sync"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"

	"github.com/gcllog/gcl-go/gclbase"
	"github.com/gcllog/gcl-go/gclbytes"
	"github.com/gcllog/gcl-go/gcljson"
	"github.com/gcllog/gcl-go/gclutil"
)

const (
	maxBufferToKeep = 1024 * 10
	minBuffer       = 1024
)

type Option func(*Formatter)

// Formatter is the front end: it owns the context registry, converts
// fields through the bridge, and hands finished records to its writer.
// A Formatter is safe for concurrent use; each Context is not (see
// Context).
type Formatter struct {
	writer    gclbytes.Writer
	id        uuid.UUID
	maxDepth  int
	labelKeys map[string]struct{}
	errorFunc func(error)
	encoder   *gcljson.Encoder
	encOpts   []gcljson.Option
	initErrs  []error
	frameSeq  uint64
	contexts  sync.Map // context identity -> *Context
	bufPool   sync.Pool // filled with *gclutil.JBuilder
}

func New(w gclbytes.Writer, opts ...Option) *Formatter {
	f := &Formatter{
		writer:    w,
		id:        uuid.New(),
		maxDepth:  gclbase.DefaultMaxDepth,
		labelKeys: make(map[string]struct{}),
		errorFunc: defaultErrorReporter,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.encoder = gcljson.New(f.encOpts...)
	for _, err := range f.initErrs {
		f.errorFunc(err)
	}
	f.initErrs = nil
	return f
}

func defaultErrorReporter(err error) {
	fmt.Fprintln(os.Stderr, err)
}

// ID identifies this formatter instance.
func (f *Formatter) ID() string { return f.id.String() }

// SetErrorReporter replaces where lifecycle misuse and sink faults are
// reported. The default reporter writes one line to stderr.
func (f *Formatter) SetErrorReporter(reporter func(error)) {
	f.errorFunc = reporter
}

// Flush pushes buffered sink output onward.
func (f *Formatter) Flush() error {
	return f.writer.Flush()
}

// Close closes the underlying writer. The Formatter must not be used
// afterwards.
func (f *Formatter) Close() {
	f.writer.Close()
}

// WithErrorReporter sets the error reporter at construction time.
func WithErrorReporter(reporter func(error)) Option {
	return func(f *Formatter) {
		f.errorFunc = reporter
	}
}

// WithMaxDepth bounds structured-value capture; see
// gclbase.DefaultMaxDepth.
func WithMaxDepth(n int) Option {
	return func(f *Formatter) {
		f.maxDepth = n
	}
}

// WithLabelKeys classifies the named field keys as label-class
// wherever they appear, in addition to fields marked with Label.
func WithLabelKeys(names ...string) Option {
	return func(f *Formatter) {
		for _, n := range names {
			f.labelKeys[n] = struct{}{}
		}
	}
}

// WithProjectID forwards to gcljson.WithProjectID.
func WithProjectID(projectID string) Option {
	return func(f *Formatter) {
		f.encOpts = append(f.encOpts, gcljson.WithProjectID(projectID))
	}
}

// WithServiceContext attaches a serviceContext {service, version}
// sub-object to every record. The version must parse as semver;
// otherwise the version is omitted and the problem is reported once
// through the error reporter.
func WithServiceContext(service, version string) Option {
	return func(f *Formatter) {
		sc := gcljson.ServiceContext{Service: service}
		if version != "" {
			v, err := semver.NewVersion(version)
			if err != nil {
				f.initErrs = append(f.initErrs,
					fmt.Errorf("gcl: service context version %q: %v", version, err))
			} else {
				sc.Version = v
			}
		}
		f.encOpts = append(f.encOpts, gcljson.WithServiceContext(sc))
	}
}

// WithKeyTransform forwards to gcljson.WithKeyTransform.
func WithKeyTransform(on bool) Option {
	return func(f *Formatter) {
		f.encOpts = append(f.encOpts, gcljson.WithKeyTransform(on))
	}
}

// WithOverrideKeys forwards to gcljson.WithOverrideKeys.
func WithOverrideKeys(names ...string) Option {
	return func(f *Formatter) {
		f.encOpts = append(f.encOpts, gcljson.WithOverrideKeys(names...))
	}
}

// WithTimePrecision forwards to gcljson.WithTimePrecision.
func WithTimePrecision(p gcljson.TimePrecision) Option {
	return func(f *Formatter) {
		f.encOpts = append(f.encOpts, gcljson.WithTimePrecision(p))
	}
}

// WithFastKeys forwards to gcljson.WithFastKeys.
func WithFastKeys(on bool) Option {
	return func(f *Formatter) {
		f.encOpts = append(f.encOpts, gcljson.WithFastKeys(on))
	}
}

func (f *Formatter) builder() *gclutil.JBuilder {
	bRaw := f.bufPool.Get()
	if bRaw != nil {
		b := bRaw.(*gclutil.JBuilder)
		b.Reset()
		return b
	}
	return &gclutil.JBuilder{
		B:        make([]byte, 0, minBuffer),
		FastKeys: f.encoder.FastKeys(),
	}
}

func (f *Formatter) reclaim(b *gclutil.JBuilder) {
	if len(b.B) > maxBufferToKeep {
		return
	}
	f.bufPool.Put(b)
}

// captureFields splits fields into payload and labels, converting each
// through the bridge. Either returned object may be nil.
func (f *Formatter) captureFields(fields []Field) (payload, labels *gclbase.Object) {
	for _, field := range fields {
		_, isLabelKey := f.labelKeys[field.Key]
		if field.label || isLabelKey {
			if labels == nil {
				labels = gclbase.NewObject()
			}
			labels.Set(field.Key, field.value(f.maxDepth))
		} else {
			if payload == nil {
				payload = gclbase.NewObject()
			}
			payload.Set(field.Key, field.value(f.maxDepth))
		}
	}
	return payload, labels
}
