package gcl

import (
	"context"
	"io"

	"github.com/gcllog/gcl-go/gclbytes"
)

type contextKeyType struct{}

var contextKey = contextKeyType{}

// Default serves as a fallback formatter if FromContextOrDefault does
// not find one. Unless replaced, it discards all records.
var Default = New(gclbytes.WriteToIOWriter(io.Discard))

// IntoContext makes this span context available downstream through a
// context.Context.
func (c *Context) IntoContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, contextKey, c)
}

func FromContext(ctx context.Context) (*Context, bool) {
	v := ctx.Value(contextKey)
	if v == nil {
		return nil, false
	}
	return v.(*Context), true
}

// FromContextOrDefault falls back to an unregistered context on the
// Default formatter, keyed by the context.Context value itself.
func FromContextOrDefault(ctx context.Context) *Context {
	c, ok := FromContext(ctx)
	if ok {
		return c
	}
	return Default.Context(ctx)
}

func FromContextOrPanic(ctx context.Context) *Context {
	c, ok := FromContext(ctx)
	if !ok {
		panic("could not find gcl context in context.Context")
	}
	return c
}
