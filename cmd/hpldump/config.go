// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/hpltools/hpldump/internal/logging"
	"github.com/hpltools/hpldump/internal/telemetry"
)

var errMissingLog = errors.New("option -log is required")

// reportedError is a command-line error the flag package has already
// printed along with the usage.
type reportedError struct{ err error }

func (e reportedError) Error() string { return e.err.Error() }
func (e reportedError) Unwrap() error { return e.err }

type config struct {
	LogPath   string
	LogLevel  string
	LogFormat string
	Verbose   bool
	MCP       bool
	Telemetry telemetry.Config
}

type envConfig struct {
	LogLevel     string `env:"HPLDUMP_LOG_LEVEL" envDefault:"warn"`
	LogFormat    string `env:"HPLDUMP_LOG_FORMAT" envDefault:"text"`
	OTelEndpoint string `env:"HPLDUMP_OTEL_ENDPOINT"`
	OTelEnabled  bool   `env:"HPLDUMP_OTEL_ENABLED" envDefault:"true"`
}

// parseConfig reads the environment, then the command line. Flags win.
func parseConfig(fs *flag.FlagSet, args []string) (config, error) {
	var envCfg envConfig
	if err := env.Parse(&envCfg); err != nil {
		return config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg := config{
		LogLevel:  envCfg.LogLevel,
		LogFormat: envCfg.LogFormat,
		Telemetry: telemetry.Config{
			Enabled:     envCfg.OTelEnabled,
			Endpoint:    envCfg.OTelEndpoint,
			ServiceName: "hpldump",
		},
	}
	fs.StringVar(&cfg.LogPath, "log", "", "the hpl log to print (required)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "diagnostic log level (default: HPLDUMP_LOG_LEVEL or warn)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "diagnostic log format: "+strings.Join(logging.Formats, ", "))
	fs.BoolVar(&cfg.Verbose, "v", false, "log diagnostics at debug level")
	fs.BoolVar(&cfg.MCP, "mcp", false, "serve the dump_log MCP tool on stdin/stdout instead of printing a log")
	fs.StringVar(&cfg.Telemetry.Endpoint, "otel-endpoint", cfg.Telemetry.Endpoint, "OTLP/HTTP endpoint for traces (default: HPLDUMP_OTEL_ENDPOINT; empty disables tracing)")
	if err := fs.Parse(args); err != nil {
		return config{}, reportedError{err}
	}
	if fs.NArg() > 0 {
		return config{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	if cfg.LogPath == "" && !cfg.MCP {
		return config{}, errMissingLog
	}
	return cfg, nil
}
