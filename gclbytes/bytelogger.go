// Package gclbytes is the boundary between the formatter and whatever
// carries its output away. The formatter produces one serialized
// record at a time; transport, buffering, and retry all live on the
// other side of the Writer interface.
package gclbytes

// Writer receives finished JSON lines. Record is called with a buffer
// that is only valid for the duration of the call; implementations
// that keep bytes must copy them.
type Writer interface {
	Record([]byte) error

	// Flush pushes buffered output towards its destination. Writers
	// that do not buffer return nil.
	Flush() error

	// Buffered reports whether Record calls may be held back until
	// Flush.
	Buffered() bool

	Close()
}
