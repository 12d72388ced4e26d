// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package telemetry sets up OpenTelemetry tracing for the hpl tools.
package telemetry

import (
	"context"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/hpltools/hpldump"

// Config controls tracing. Tracing is off unless Enabled is set and
// Endpoint is not empty.
type Config struct {
	Enabled     bool
	Endpoint    string
	ServiceName string
}

// Setup registers a global tracer provider exporting spans over OTLP/HTTP
// and routes OpenTelemetry's own diagnostics to logger.
//
// The returned shutdown function flushes pending spans and should be
// deferred by the caller. When tracing is off it does nothing.
func Setup(ctx context.Context, cfg Config, logger logr.Logger) (shutdown func(context.Context) error, err error) {
	noop := func(context.Context) error { return nil }
	otel.SetLogger(logger)

	if !cfg.Enabled || cfg.Endpoint == "" {
		return noop, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(cfg.Endpoint))
	if err != nil {
		return noop, err
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)))
	if err != nil {
		return noop, err
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

// StartPass starts the span covering one dump of the log at path.
func StartPass(ctx context.Context, path string) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, "hpldump.Dump",
		trace.WithAttributes(attribute.String("hpl.log.path", path)))
}

// EndPass records the outcome of a pass on span and ends it.
func EndPass(span trace.Span, traces, faulty int64, err error) {
	span.SetAttributes(
		attribute.Int64("hpl.traces", traces),
		attribute.Int64("hpl.faulty", faulty),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
