package gcl

import "fmt"

// MisuseError reports a span lifecycle inconsistency: a Record or Exit
// against a handle that is not the top of its context's stack, a
// handle used from a foreign context, or a handle that was already
// exited. Misuse is recovered from, never fatal; the error only goes
// to the formatter's error reporter.
type MisuseError struct {
	Op     string
	Frame  string
	Reason string
}

func (e *MisuseError) Error() string {
	return fmt.Sprintf("gcl: %s on span %q: %s", e.Op, e.Frame, e.Reason)
}
