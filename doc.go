// Package gcl formats structured trace and log events as Google Cloud
// Logging-compatible JSON lines.
//
// It sits between an application's instrumentation and a byte sink:
// spans are entered and exited on per-goroutine (or per-task)
// contexts, fields accumulate on the active span stack, and each
// logged event becomes one JSON object carrying the Cloud Logging
// reserved keys (severity, timestamp, source location, trace
// correlation, labels) plus the merged span and event fields.
//
// The package does not transport, buffer, or retry anything; see
// gclbytes for the sink boundary. It also never generates trace ids;
// correlation identifiers always come from the caller (see gclotel
// and gclgrpc for extraction helpers).
//
//	formatter := gcl.New(gclbytes.WriteToIOWriter(os.Stdout),
//		gcl.WithProjectID("my-project"))
//	ctx := formatter.Context("request-17")
//	frame := ctx.Enter("checkout", gcl.String("cart_id", "c-9"))
//	ctx.Log(gclnum.InfoLevel, "charging card", nil)
//	ctx.Exit(frame)
//
// No failure inside this package ever panics into the caller: values
// that cannot be represented are degraded to strings, lifecycle misuse
// is reported through the error reporter and recovered from, and sink
// write faults are both reported and returned.
package gcl
