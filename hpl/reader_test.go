// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpl

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

var sampleEvents = []Event{
	Method{ID: 1, FileName: "Foo.java", ClassName: "com.example.Foo", MethodName: "bar"},
	TraceStart{ThreadID: 7, Frames: 2},
	StackFrame{MethodID: 1, Line: 10},
	StackFrame{MethodID: 0, Line: -1},
	TraceStart{ThreadID: -3, Frames: 0},
	Method{ID: 1<<40 + 5, ClassName: "Lcom/example/Bar;", MethodName: "<init>"},
}

func encode(t *testing.T, evs []Event) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := NewWriter(&buf)
	for _, ev := range evs {
		if err := w.WriteEvent(ev); err != nil {
			t.Fatalf("WriteEvent(%v): %v", ev, err)
		}
	}
	return buf.Bytes()
}

func readAll(r EventReader) ([]Event, error) {
	var evs []Event
	for {
		ev, err := r.NextEvent()
		if err == io.EOF {
			return evs, nil
		}
		if err != nil {
			return evs, err
		}
		evs = append(evs, ev)
	}
}

func TestReaderDecodesWriterOutput(t *testing.T) {
	got, err := readAll(NewReader(bytes.NewReader(encode(t, sampleEvents))))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(sampleEvents, got); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}
}

func TestReaderWireLayout(t *testing.T) {
	data := encode(t, []Event{TraceStart{ThreadID: 7, Frames: 2}})
	want := []byte{1, 0, 0, 0, 2, 0, 0, 0, 0, 0, 0, 0, 7}
	if !bytes.Equal(data, want) {
		t.Errorf("TraceStart encoding = % x, want % x", data, want)
	}
	data = encode(t, []Event{Method{ID: 2, FileName: "F", ClassName: "C", MethodName: "m"}})
	want = []byte{3, 0, 0, 0, 0, 0, 0, 0, 2, 0, 0, 0, 1, 'F', 0, 0, 0, 1, 'C', 0, 0, 0, 1, 'm'}
	if !bytes.Equal(data, want) {
		t.Errorf("Method encoding = % x, want % x", data, want)
	}
}

func TestReaderTruncated(t *testing.T) {
	data := encode(t, sampleEvents)
	full := len(encode(t, sampleEvents[:1]))
	for _, n := range []int{1, 5, full - 1, full + 3} {
		evs, err := readAll(NewReader(bytes.NewReader(data[:n])))
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("truncated at %d: got error %v, want io.ErrUnexpectedEOF", n, err)
		}
		if n > full && len(evs) != 1 {
			t.Errorf("truncated at %d: got %d events before the error, want 1", n, len(evs))
		}
	}
}

func TestReaderUnknownRecord(t *testing.T) {
	data := append(encode(t, sampleEvents[1:2]), 9, 0, 0)
	evs, err := readAll(NewReader(bytes.NewReader(data)))
	if !errors.Is(err, ErrUnknownRecord) {
		t.Fatalf("got error %v, want ErrUnknownRecord", err)
	}
	if len(evs) != 1 {
		t.Errorf("got %d events before the error, want 1", len(evs))
	}
}

func TestReaderNegativeStringLength(t *testing.T) {
	data := []byte{3, 0, 0, 0, 0, 0, 0, 0, 1, 0xff, 0xff, 0xff, 0xff}
	_, err := NewReader(bytes.NewReader(data)).NextEvent()
	if err == nil {
		t.Fatal("expected an error for a negative string length")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.hpl")
	if err := os.WriteFile(path, encode(t, sampleEvents), 0o644); err != nil {
		t.Fatal(err)
	}

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	if f.Path() != path {
		t.Errorf("Path() = %q, want %q", f.Path(), path)
	}
	got, err := readAll(f)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(sampleEvents, got); diff != "" {
		t.Errorf("mismatch (-want, +got):\n%s", diff)
	}

	for _, bad := range []string{filepath.Join(dir, "missing.hpl"), dir} {
		if _, err := Open(bad); !errors.Is(err, ErrNotFound) {
			t.Errorf("Open(%q): got error %v, want ErrNotFound", bad, err)
		}
	}
}
