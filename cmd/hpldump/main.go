// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Hpldump prints the text form of an hpl profiler log.
//
// Usage:
//
//	hpldump -log <file> [flags]
//
// Each method definition, trace start and stack frame of the log is printed
// on its own line, followed by a line counting the traces and the faulty
// records. Stack frames are indented by their depth in the trace, and
// method IDs are replaced by class and method names when the log has
// already defined them.
//
// With -mcp, hpldump instead serves a dump_log tool over the Model Context
// Protocol on stdin and stdout.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	fs := flag.NewFlagSet("hpldump", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: hpldump -log <file> [flags]\n\n")
		fs.PrintDefaults()
	}
	cfg, err := parseConfig(fs, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		if !errors.As(err, new(reportedError)) {
			fmt.Fprintln(os.Stderr, err)
			fs.Usage()
		}
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, cfg, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
