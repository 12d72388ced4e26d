// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mcpserver exposes the log dumper as a Model Context Protocol tool.
package mcpserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/hpltools/hpldump/hpl"
	"github.com/hpltools/hpldump/logdump"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/exp/slog"
)

// DumpLogArgs are the arguments of the dump_log tool.
type DumpLogArgs struct {
	Path string `json:"path" jsonschema:"Path to the hpl log file to render"`
}

// New returns an MCP server offering the dump_log tool.
func New(logger *slog.Logger, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "hpldump",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name: "dump_log",
		Description: "Render an hpl profiler log as text: one line per method definition, " +
			"trace start and stack frame, followed by a summary of traces and faulty records.",
	}, func(ctx context.Context, req *mcp.CallToolRequest, args DumpLogArgs) (*mcp.CallToolResult, any, error) {
		text, err := dumpLog(ctx, args.Path, logger)
		if err != nil {
			return nil, nil, err
		}
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{Text: text},
			},
		}, nil, nil
	})
	return server
}

func dumpLog(ctx context.Context, path string, logger *slog.Logger) (string, error) {
	if path == "" {
		return "", errors.New("path is required")
	}
	f, err := hpl.Open(path)
	if err != nil {
		logger.Debug("open failed", "path", path, "err", err)
		return "", errors.New(hpl.NotFoundMessage(path))
	}
	defer f.Close()

	var buf bytes.Buffer
	sum, err := logdump.DumpFile(ctx, f, &buf, logdump.WithLogger(logger))
	if err != nil {
		logger.Error("dump failed", "path", f.Path(), "err", err)
		return "", fmt.Errorf("dumping %s: %w", f.Path(), err)
	}
	logger.Info("dump complete", "path", f.Path(), "traces", sum.Traces, "faulty", sum.Faulty)
	return buf.String(), nil
}
