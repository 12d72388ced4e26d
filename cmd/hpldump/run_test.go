// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hpltools/hpldump/hpl"
)

func writeLog(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.hpl")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func encode(t *testing.T, evs ...hpl.Event) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := hpl.NewWriter(&buf)
	for _, ev := range evs {
		if err := w.WriteEvent(ev); err != nil {
			t.Fatal(err)
		}
	}
	return buf.Bytes()
}

func testConfig(path string) config {
	return config{LogPath: path, LogLevel: "warn", LogFormat: "text"}
}

func TestRun(t *testing.T) {
	path := writeLog(t, encode(t,
		hpl.Method{ID: 1, FileName: "Foo.java", ClassName: "com.example.Foo", MethodName: "bar"},
		hpl.TraceStart{ThreadID: 7, Frames: 2},
		hpl.StackFrame{MethodID: 1, Line: 10},
		hpl.StackFrame{MethodID: 0, Line: -1},
	))
	var out, errOut bytes.Buffer
	if code := run(context.Background(), testConfig(path), &out, &errOut); code != 0 {
		t.Fatalf("exit status %d, stderr:\n%s", code, errOut.String())
	}
	want := "Printing text representation for: " + path + "\n" +
		"Method   : 1 -> com.example.Foo.bar\n" +
		"TraceStartL [0] tid=7,frames=2\n" +
		"StackFrame:  com.example.Foo::bar @ 10\n" +
		"StackFrame: 0 @ -1\n" +
		"Processed 1 traces, 1 faulty\n"
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("stdout mismatch (-want, +got):\n%s", diff)
	}
	if errOut.Len() != 0 {
		t.Errorf("unexpected stderr:\n%s", errOut.String())
	}
}

func TestRunMissingLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.hpl")
	var out, errOut bytes.Buffer
	if code := run(context.Background(), testConfig(path), &out, &errOut); code != 1 {
		t.Errorf("exit status %d, want 1", code)
	}
	if out.Len() != 0 {
		t.Errorf("unexpected stdout:\n%s", out.String())
	}
	if want := "Unable to find log file at: " + path + "\n"; errOut.String() != want {
		t.Errorf("stderr = %q, want %q", errOut.String(), want)
	}
}

func TestRunTruncatedLog(t *testing.T) {
	data := encode(t,
		hpl.TraceStart{ThreadID: 7, Frames: 1},
		hpl.StackFrame{MethodID: 3, Line: 1},
	)
	path := writeLog(t, data[:len(data)-4])
	var out, errOut bytes.Buffer
	if code := run(context.Background(), testConfig(path), &out, &errOut); code != 1 {
		t.Errorf("exit status %d, want 1", code)
	}
	if strings.Contains(out.String(), "Processed") {
		t.Errorf("summary printed for a failed pass:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "TraceStartL [0] tid=7,frames=1") {
		t.Errorf("partial dump missing:\n%s", out.String())
	}
	if !strings.Contains(errOut.String(), "dump failed") {
		t.Errorf("stderr does not report the failure:\n%s", errOut.String())
	}
}

func TestRunVerbose(t *testing.T) {
	path := writeLog(t, encode(t, hpl.TraceStart{ThreadID: 1, Frames: 0}))
	cfg := testConfig(path)
	cfg.Verbose = true
	cfg.LogFormat = "json"
	var out, errOut bytes.Buffer
	if code := run(context.Background(), cfg, &out, &errOut); code != 0 {
		t.Fatalf("exit status %d, stderr:\n%s", code, errOut.String())
	}
	for _, want := range []string{`"msg":"faulty trace"`, `"msg":"dump complete"`, `"faulty":1`} {
		if !strings.Contains(errOut.String(), want) {
			t.Errorf("stderr missing %s:\n%s", want, errOut.String())
		}
	}
}

func TestRunBadLogFormat(t *testing.T) {
	cfg := testConfig("unused")
	cfg.LogFormat = "xml"
	if code := run(context.Background(), cfg, io.Discard, io.Discard); code != 2 {
		t.Errorf("exit status %d, want 2", code)
	}
}

func TestParseConfig(t *testing.T) {
	t.Setenv("HPLDUMP_LOG_LEVEL", "info")
	t.Setenv("HPLDUMP_OTEL_ENDPOINT", "http://collector:4318")

	fs := flag.NewFlagSet("hpldump", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg, err := parseConfig(fs, []string{"-log", "app.hpl", "-log-format", "zap"})
	if err != nil {
		t.Fatalf("parseConfig: %v", err)
	}
	if cfg.LogPath != "app.hpl" || cfg.LogFormat != "zap" || cfg.LogLevel != "info" {
		t.Errorf("got %+v", cfg)
	}
	if !cfg.Telemetry.Enabled || cfg.Telemetry.Endpoint != "http://collector:4318" {
		t.Errorf("telemetry config %+v", cfg.Telemetry)
	}
}

func TestParseConfigErrors(t *testing.T) {
	for _, tc := range []struct {
		args     []string
		reported bool
	}{
		{nil, false},
		{[]string{"-log"}, true},
		{[]string{"-bogus"}, true},
		{[]string{"-log", "a.hpl", "extra"}, false},
	} {
		fs := flag.NewFlagSet("hpldump", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		_, err := parseConfig(fs, tc.args)
		if err == nil {
			t.Errorf("parseConfig(%q): expected an error", tc.args)
			continue
		}
		if got := errors.As(err, new(reportedError)); got != tc.reported {
			t.Errorf("parseConfig(%q): reported = %v, want %v (%v)", tc.args, got, tc.reported, err)
		}
	}
	fs := flag.NewFlagSet("hpldump", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, err := parseConfig(fs, nil); !errors.Is(err, errMissingLog) {
		t.Errorf("got %v, want errMissingLog", err)
	}
	fs = flag.NewFlagSet("hpldump", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	if _, err := parseConfig(fs, []string{"-mcp"}); err != nil {
		t.Errorf("-mcp without -log: %v", err)
	}
}
