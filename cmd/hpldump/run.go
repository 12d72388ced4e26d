// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/hpltools/hpldump/hpl"
	"github.com/hpltools/hpldump/internal/logging"
	"github.com/hpltools/hpldump/internal/mcpserver"
	"github.com/hpltools/hpldump/internal/telemetry"
	"github.com/hpltools/hpldump/logdump"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/exp/slog"
)

const version = "0.3.0"

// run executes the command and returns the process exit status.
// The dump goes to out; errors and diagnostics go to errOut.
func run(ctx context.Context, cfg config, out, errOut io.Writer) int {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(errOut, "hpldump: log level: %v\n", err)
		return 2
	}
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger, err := logging.New(errOut, cfg.LogFormat, level)
	if err != nil {
		fmt.Fprintf(errOut, "hpldump: %v\n", err)
		return 2
	}

	shutdown, err := telemetry.Setup(ctx, cfg.Telemetry, logging.NewLogr(logger))
	if err != nil {
		logger.Warn("tracing disabled", "err", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Warn("flushing traces", "err", err)
		}
	}()

	if cfg.MCP {
		return serveMCP(ctx, logger, &mcp.StdioTransport{})
	}
	return dump(ctx, cfg.LogPath, out, errOut, logger)
}

func dump(ctx context.Context, path string, out, errOut io.Writer, logger *slog.Logger) int {
	f, err := hpl.Open(path)
	if err != nil {
		fmt.Fprintln(errOut, hpl.NotFoundMessage(path))
		logger.Debug("open failed", "err", err)
		return 1
	}
	defer f.Close()

	w := bufio.NewWriter(out)
	fmt.Fprintf(w, "Printing text representation for: %s\n", f.Path())
	sum, err := logdump.DumpFile(ctx, f, w, logdump.WithLogger(logger))
	if ferr := w.Flush(); err == nil {
		err = ferr
	}
	if err != nil {
		logger.Error("dump failed", "path", f.Path(), "err", err)
		return 1
	}
	logger.Info("dump complete", "path", f.Path(), "traces", sum.Traces, "faulty", sum.Faulty)
	return 0
}

func serveMCP(ctx context.Context, logger *slog.Logger, t mcp.Transport) int {
	logger.Info("serving MCP", "version", version)
	if err := mcpserver.New(logger, version).Run(ctx, t); err != nil && ctx.Err() == nil {
		logger.Error("MCP server failed", "err", err)
		return 1
	}
	return 0
}
