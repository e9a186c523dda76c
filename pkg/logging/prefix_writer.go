package logging

import (
	"bytes"
	"io"
)

// PrefixWriter stamps a prefix onto every line written through it. Output
// is held back until the line's newline arrives, so interleaved partial
// writes cannot separate a prefix from its line.
type PrefixWriter struct {
	prefix  []byte
	dst     io.Writer
	pending []byte
}

// NewPrefixWriter wraps w.
func NewPrefixWriter(prefix string, w io.Writer) *PrefixWriter {
	return &PrefixWriter{prefix: []byte(prefix), dst: w}
}

// Write implements io.Writer. The returned count covers everything
// accepted into the line buffer, not just what reached the destination.
func (pw *PrefixWriter) Write(p []byte) (int, error) {
	pw.pending = append(pw.pending, p...)

	for {
		nl := bytes.IndexByte(pw.pending, '\n')
		if nl < 0 {
			break
		}

		if _, err := pw.dst.Write(pw.prefix); err != nil {
			return 0, err
		}
		if _, err := pw.dst.Write(pw.pending[:nl+1]); err != nil {
			return 0, err
		}
		pw.pending = pw.pending[nl+1:]
	}

	return len(p), nil
}
