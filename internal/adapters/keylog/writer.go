package keylog

import (
	"bufio"
	"encoding/json"
	"io"

	perr "scanwedge/internal/platform/errors"
)

// Writer appends entries as JSON lines
type Writer struct {
	bw  *bufio.Writer
	enc *json.Encoder
	n   int
}

// NewWriter wraps w
func NewWriter(w io.Writer) *Writer {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	enc.SetEscapeHTML(false)
	return &Writer{bw: bw, enc: enc}
}

// Write encodes entries, one per line
func (w *Writer) Write(entries ...Entry) error {
	for _, e := range entries {
		if e.Key == "" {
			return perr.WithField(perr.InvalidArgf("keylog entry %d has no key", w.n), "key")
		}
		if err := w.enc.Encode(e); err != nil {
			return perr.Wrapf(err, perr.ErrorCodeUnknown, "write keylog entry %d", w.n)
		}
		w.n++
	}
	return nil
}

// Flush writes buffered lines through
func (w *Writer) Flush() error {
	return w.bw.Flush()
}

// Count is the number of entries written
func (w *Writer) Count() int { return w.n }
