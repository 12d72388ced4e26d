// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Hplconv converts hpl profiler logs between the binary form written by the
// profiler and a line-oriented text form that is easy to write by hand.
//
// Usage:
//
//	hplconv [-log-format f] text2bytes|bytes2text < in > out
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hpltools/hpldump/hpl"
	"github.com/hpltools/hpldump/internal/logging"
	"golang.org/x/exp/slog"
)

var logFormat = flag.String("log-format", "text", "diagnostic log format: "+strings.Join(logging.Formats, ", "))

func init() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] mode\n", os.Args[0])
		fmt.Fprintf(flag.CommandLine.Output(), "\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Supported modes:")
		fmt.Fprintf(flag.CommandLine.Output(), "\n")
		fmt.Fprintf(flag.CommandLine.Output(), "* text2bytes - converts a text format log to bytes\n")
		fmt.Fprintf(flag.CommandLine.Output(), "* bytes2text - converts a byte format log to text\n")
		fmt.Fprintf(flag.CommandLine.Output(), "\n")
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	logger, err := logging.New(os.Stderr, *logFormat, slog.LevelInfo)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if narg := flag.NArg(); narg != 1 {
		logger.Error("expected exactly one positional argument: the mode to operate in; see -h output")
		os.Exit(2)
	}

	w := bufio.NewWriter(os.Stdout)
	if err := convert(flag.Arg(0), os.Stdin, w); err != nil {
		logger.Error("conversion failed", "mode", flag.Arg(0), "err", err)
		os.Exit(1)
	}
	if err := w.Flush(); err != nil {
		logger.Error("writing output", "err", err)
		os.Exit(1)
	}
}

type eventWriter interface {
	WriteEvent(hpl.Event) error
}

// textWriter writes one event per line in text form.
type textWriter struct {
	w io.Writer
}

func (w textWriter) WriteEvent(ev hpl.Event) error {
	_, err := fmt.Fprintln(w.w, ev.String())
	return err
}

func convert(mode string, r io.Reader, w io.Writer) error {
	var er hpl.EventReader
	var ew eventWriter
	switch mode {
	case "text2bytes":
		er, ew = hpl.NewTextReader(r), hpl.NewWriter(w)
	case "bytes2text":
		er, ew = hpl.NewReader(r), textWriter{w}
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
	for {
		ev, err := er.NextEvent()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if err := ew.WriteEvent(ev); err != nil {
			return err
		}
	}
}
