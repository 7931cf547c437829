package keylog

import (
	"bufio"
	"compress/gzip"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"

	perr "scanwedge/internal/platform/errors"
	"scanwedge/internal/platform/logger"
)

const maxLine = 64 * 1024

// Reader streams entries from a keylog
type Reader struct {
	r       io.ReadCloser
	gz      *gzip.Reader
	sc      *bufio.Scanner
	err     error
	line    int
	entries int
	skipped int
}

// Open opens a keylog file, "-" reads stdin
func Open(path string) (*Reader, error) {
	if path == "-" || path == "" {
		return NewReader(io.NopCloser(os.Stdin), false)
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, perr.Wrapf(err, perr.ErrorCodeNotFound, "keylog %s", path)
		}
		return nil, perr.Wrapf(err, perr.ErrorCodeUnknown, "open keylog %s", path)
	}
	return NewReader(f, strings.HasSuffix(path, ".gz"))
}

// NewReader reads JSON lines from r, through gzip when compressed is set
func NewReader(r io.ReadCloser, compressed bool) (*Reader, error) {
	rd := &Reader{r: r}
	var src io.Reader = r
	if compressed {
		gz, err := gzip.NewReader(r)
		if err != nil {
			_ = r.Close()
			return nil, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "keylog is not gzip")
		}
		rd.gz = gz
		src = gz
	}
	rd.sc = bufio.NewScanner(src)
	rd.sc.Buffer(make([]byte, 4096), maxLine)
	return rd, nil
}

// Next returns the next entry; io.EOF when done
func (rd *Reader) Next() (Entry, error) {
	if rd.err != nil {
		return Entry{}, rd.err
	}
	for {
		if !rd.sc.Scan() {
			if err := rd.sc.Err(); err != nil {
				rd.err = perr.Wrapf(err, perr.ErrorCodeUnknown, "keylog line %d", rd.line+1)
				return Entry{}, rd.err
			}
			rd.err = io.EOF
			return Entry{}, io.EOF
		}
		rd.line++
		line := strings.TrimSpace(rd.sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil || e.Key == "" {
			rd.skipped++
			if rd.skipped == 1 {
				l := logger.Named("keylog")
				l.Warn().Int("line", rd.line).Msg("keylog: skipping malformed line")
			}
			continue
		}
		rd.entries++
		return e, nil
	}
}

// All drains the reader
func (rd *Reader) All() ([]Entry, error) {
	var out []Entry
	for {
		e, err := rd.Next()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, e)
	}
}

// Stats returns how many entries were read and how many lines were skipped
func (rd *Reader) Stats() (entries, skipped int) {
	return rd.entries, rd.skipped
}

// Close closes the underlying reader
func (rd *Reader) Close() error {
	var first error
	if rd.gz != nil {
		first = rd.gz.Close()
	}
	if rd.r != nil {
		if err := rd.r.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
