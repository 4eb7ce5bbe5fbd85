package gclbytes

import "io"

var _ Writer = IOWriter{}

// IOWriter adapts any io.Writer (a file, os.Stdout, a network
// forwarder) into a record sink.
type IOWriter struct {
	io.Writer
}

func WriteToIOWriter(w io.Writer) Writer {
	return IOWriter{
		Writer: w,
	}
}

func (iow IOWriter) Buffered() bool { return false }
func (iow IOWriter) Flush() error   { return nil }

func (iow IOWriter) Record(line []byte) error {
	_, err := iow.Write(line)
	return err
}

func (iow IOWriter) Close() {
	if wc, ok := iow.Writer.(io.WriteCloser); ok {
		_ = wc.Close()
	}
}
