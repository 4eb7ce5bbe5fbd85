package gcl

import (
	"sync/atomic"

	"github.com/gcllog/gcl-go/gclbase"
)

// Context is one execution lineage's span stack. Contexts are created
// on demand by Formatter.Context and are exclusively owned: all
// Enter/Record/Exit/Log calls on one Context must come from the same
// goroutine (or be externally synchronized). Distinct Contexts are
// fully independent and safe to drive concurrently.
type Context struct {
	formatter *Formatter
	id        interface{}
	frames    []*Frame
}

// Frame is one active span on a Context's stack. The pointer doubles
// as the span handle: Record and Exit match frames by identity, not by
// position, so they can degrade gracefully when spans are closed out
// of order.
type Frame struct {
	ctx     *Context
	id      uint64
	name    string
	parent  *Frame
	payload *gclbase.Object
	labels  *gclbase.Object
	closed  bool
}

// ID is the frame's opaque identifier, unique within the formatter.
func (h *Frame) ID() uint64 { return h.id }

func (h *Frame) Name() string { return h.name }

// Parent is the frame below this one, or nil at the root.
func (h *Frame) Parent() *Frame { return h.parent }

// Context returns the existing stack for the given context identity,
// creating it if needed. The identity must be comparable; what it is
// (a goroutine-scoped token, a request id, a worker index) is the
// caller's business. Lookup-or-create is safe from any goroutine;
// the returned Context is not.
func (f *Formatter) Context(id interface{}) *Context {
	if c, ok := f.contexts.Load(id); ok {
		return c.(*Context)
	}
	c, _ := f.contexts.LoadOrStore(id, &Context{formatter: f, id: id})
	return c.(*Context)
}

// ReleaseContext drops a terminated context's stack from the registry.
// Frames still open on it are reported as misuse.
func (f *Formatter) ReleaseContext(id interface{}) {
	c, ok := f.contexts.LoadAndDelete(id)
	if !ok {
		return
	}
	ctx := c.(*Context)
	for i := len(ctx.frames) - 1; i >= 0; i-- {
		ctx.frames[i].closed = true
		f.errorFunc(&MisuseError{
			Op:     "release",
			Frame:  ctx.frames[i].name,
			Reason: "context released with span still open",
		})
	}
	ctx.frames = nil
}

// ID returns the identity this context was registered under.
func (c *Context) ID() interface{} { return c.id }

// Depth is the number of currently active spans.
func (c *Context) Depth() int { return len(c.frames) }

func (c *Context) top() *Frame {
	if len(c.frames) == 0 {
		return nil
	}
	return c.frames[len(c.frames)-1]
}

// Enter pushes a new span. The fields are captured through the bridge
// immediately; later mutation of captured values does not reach the
// frame. The returned handle is used for Record and Exit.
func (c *Context) Enter(name string, fields ...Field) *Frame {
	payload, labels := c.formatter.captureFields(fields)
	frame := &Frame{
		ctx:     c,
		id:      atomic.AddUint64(&c.formatter.frameSeq, 1),
		name:    name,
		parent:  c.top(),
		payload: payload,
		labels:  labels,
	}
	c.frames = append(c.frames, frame)
	return frame
}

// Record merges more fields into a still-active span. If the handle is
// not the top of this context's stack the inconsistency is reported,
// but the update is still applied to the frame by identity; the data
// is better off attached to the right span than lost.
func (c *Context) Record(h *Frame, fields ...Field) {
	if h == nil {
		return
	}
	if h.ctx != c {
		c.formatter.errorFunc(&MisuseError{
			Op:     "record",
			Frame:  h.name,
			Reason: "span handle belongs to a different context",
		})
	} else if h.closed {
		c.formatter.errorFunc(&MisuseError{
			Op:     "record",
			Frame:  h.name,
			Reason: "span already exited",
		})
		return
	} else if c.top() != h {
		c.formatter.errorFunc(&MisuseError{
			Op:     "record",
			Frame:  h.name,
			Reason: "span is not the innermost active span",
		})
	}
	payload, labels := c.formatter.captureFields(fields)
	if payload != nil {
		if h.payload == nil {
			h.payload = payload
		} else {
			h.payload.MergeFrom(payload)
		}
	}
	if labels != nil {
		if h.labels == nil {
			h.labels = labels
		} else {
			h.labels.MergeFrom(labels)
		}
	}
}

// Exit pops spans from the top of the stack down to and including the
// one matching h. Spans skipped over on the way down were exited out
// of order by the caller; each is reported and discarded.
func (c *Context) Exit(h *Frame) {
	if h == nil {
		return
	}
	if h.ctx != c {
		c.formatter.errorFunc(&MisuseError{
			Op:     "exit",
			Frame:  h.name,
			Reason: "span handle belongs to a different context",
		})
		return
	}
	at := -1
	for i := len(c.frames) - 1; i >= 0; i-- {
		if c.frames[i] == h {
			at = i
			break
		}
	}
	if at == -1 {
		c.formatter.errorFunc(&MisuseError{
			Op:     "exit",
			Frame:  h.name,
			Reason: "span already exited",
		})
		return
	}
	for i := len(c.frames) - 1; i > at; i-- {
		c.frames[i].closed = true
		c.formatter.errorFunc(&MisuseError{
			Op:     "exit",
			Frame:  c.frames[i].name,
			Reason: "span discarded by out-of-order exit of " + h.name,
		})
	}
	h.closed = true
	c.frames = c.frames[:at]
}

// ResolveFields merges the active stack's payload fields from the root
// span to the innermost, inner values winning name collisions. The
// result is a fresh object; the frames are not modified.
func (c *Context) ResolveFields() *gclbase.Object {
	merged := gclbase.NewObject()
	for _, frame := range c.frames {
		merged.MergeFrom(frame.payload)
	}
	return merged
}

// resolveLabels is ResolveFields for label-class fields. Returns nil
// when no frame carries labels.
func (c *Context) resolveLabels() *gclbase.Object {
	var merged *gclbase.Object
	for _, frame := range c.frames {
		if frame.labels.Len() == 0 {
			continue
		}
		if merged == nil {
			merged = gclbase.NewObject()
		}
		merged.MergeFrom(frame.labels)
	}
	return merged
}

// Enter, Record, and Exit are also available on the Formatter for
// callers that hold a context identity rather than the Context.

func (f *Formatter) Enter(ctxID interface{}, name string, fields ...Field) *Frame {
	return f.Context(ctxID).Enter(name, fields...)
}

func (f *Formatter) Record(h *Frame, fields ...Field) {
	h.Record(fields...)
}

func (f *Formatter) Exit(h *Frame) {
	h.Exit()
}

// Record and Exit are also available directly on the handle.

func (h *Frame) Record(fields ...Field) {
	if h == nil {
		return
	}
	h.ctx.Record(h, fields...)
}

func (h *Frame) Exit() {
	if h == nil {
		return
	}
	h.ctx.Exit(h)
}
