package keylog

import (
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"scanwedge/internal/core/capture"
	perr "scanwedge/internal/platform/errors"
)

func TestReader_SkipsMalformedAndComments(t *testing.T) {
	src := strings.Join([]string{
		`# recorded at the packing station`,
		`{"key":"A","at_ms":1000,"target":"document"}`,
		``,
		`{"key":`,
		`{"at_ms":1010}`,
		`{"key":"Enter","at_ms":1020,"target":"capture","target_id":"scan"}`,
	}, "\n")
	rd, err := NewReader(io.NopCloser(strings.NewReader(src)), false)
	if err != nil {
		t.Fatal(err)
	}
	defer rd.Close()

	got, err := rd.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	if len(got) != 2 || got[0].Key != "A" || got[1].Key != "Enter" {
		t.Fatalf("entries = %+v", got)
	}
	if n, skipped := rd.Stats(); n != 2 || skipped != 2 {
		t.Fatalf("stats = %d %d", n, skipped)
	}
	if _, err := rd.Next(); err != io.EOF {
		t.Fatalf("after drain = %v", err)
	}

	if w := got[1].Where(); w.Kind != capture.KindCapture || w.ID != "scan" {
		t.Fatalf("target = %+v", w)
	}
	if ev := got[0].Event(); !ev.At.Equal(time.UnixMilli(1000)) || ev.Key != "A" {
		t.Fatalf("event = %+v", ev)
	}
}

func TestWriterReaderRoundTrip_Gzip(t *testing.T) {
	var raw bytes.Buffer
	gz := gzip.NewWriter(&raw)
	w := NewWriter(gz)
	if err := w.Write(Burst("4006381333931", 5000, 8, "document", "Enter")...); err != nil {
		t.Fatal(err)
	}
	if err := w.Flush(); err != nil {
		t.Fatal(err)
	}
	if err := gz.Close(); err != nil {
		t.Fatal(err)
	}
	if w.Count() != 14 {
		t.Fatalf("count = %d", w.Count())
	}

	path := filepath.Join(t.TempDir(), "scan.jsonl.gz")
	if err := os.WriteFile(path, raw.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
	rd, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer rd.Close()
	got, err := rd.All()
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 14 || got[12].AtMs != 5000+12*8 || got[13].Key != "Enter" || got[13].AtMs != 5000+13*8 {
		t.Fatalf("entries = %+v", got)
	}
}

func TestWriter_RejectsEmptyKey(t *testing.T) {
	w := NewWriter(io.Discard)
	err := w.Write(Entry{Key: "A"}, Entry{AtMs: 5})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v", err)
	}
	if w.Count() != 1 {
		t.Fatalf("count = %d", w.Count())
	}
}

func TestOpen_Missing(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.jsonl"))
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestNewReader_NotGzip(t *testing.T) {
	_, err := NewReader(io.NopCloser(strings.NewReader("plain")), true)
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("err = %v", err)
	}
}
