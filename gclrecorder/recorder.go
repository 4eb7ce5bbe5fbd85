/*
Package gclrecorder provides an introspective record sink. Every line
the formatter emits is kept in memory, decoded, and made available for
examination; it exists so tests can make assertions about finished
records instead of scraping output streams.
*/
package gclrecorder

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"github.com/muir/list"

	"github.com/gcllog/gcl-go/gclbytes"
	"github.com/gcllog/gcl-go/gcljson"
)

var _ gclbytes.Writer = &Recorder{}

type Recorder struct {
	lock       sync.Mutex
	id         string
	Records    []*Record
	FlushCount int
	// RecordError, when set, is returned from every Record call so
	// tests can exercise sink fault handling.
	RecordError error
}

// Record is one captured output line.
type Record struct {
	Line    []byte
	Decoded map[string]interface{}
}

func New() *Recorder {
	return &Recorder{
		id: "gclrecorder-" + uuid.New().String(),
	}
}

func (r *Recorder) ID() string     { return r.id }
func (r *Recorder) Buffered() bool { return false }
func (r *Recorder) Close()         {}

func (r *Recorder) Flush() error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.FlushCount++
	return nil
}

func (r *Recorder) Record(line []byte) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	if r.RecordError != nil {
		return r.RecordError
	}
	rec := &Record{
		Line: list.Copy(line),
	}
	// decode errors are deliberately ignored; a test asserting on
	// Decoded against a malformed line will fail loudly anyway
	_ = json.Unmarshal(rec.Line, &rec.Decoded)
	r.Records = append(r.Records, rec)
	return nil
}

// All returns a snapshot of the captured records.
func (r *Recorder) All() []*Record {
	r.lock.Lock()
	defer r.lock.Unlock()
	return list.Copy(r.Records)
}

// FindMessage returns the first record whose message key matches, or
// nil.
func (r *Recorder) FindMessage(msg string) *Record {
	for _, rec := range r.All() {
		if rec.Message() == msg {
			return rec
		}
	}
	return nil
}

func (rec *Record) Message() string {
	s, _ := rec.Decoded[gcljson.MessageKey].(string)
	return s
}

func (rec *Record) Severity() string {
	s, _ := rec.Decoded[gcljson.SeverityKey].(string)
	return s
}

func (rec *Record) Trace() string {
	s, _ := rec.Decoded[gcljson.TraceKey].(string)
	return s
}

func (rec *Record) SpanID() string {
	s, _ := rec.Decoded[gcljson.SpanIDKey].(string)
	return s
}

func (rec *Record) Labels() map[string]interface{} {
	m, _ := rec.Decoded[gcljson.LabelsKey].(map[string]interface{})
	return m
}

// Field returns a payload field by its output (post-transform) name.
func (rec *Record) Field(name string) interface{} {
	return rec.Decoded[name]
}

// HasKey reports whether the output object contains a key at all,
// which is not the same as the key being null.
func (rec *Record) HasKey(name string) bool {
	_, ok := rec.Decoded[name]
	return ok
}
