// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logging builds the diagnostic logger used by the hpl tools.
//
// Callers always log through a *slog.Logger. The format selects what
// actually writes the records: the slog text or JSON handlers, or one of
// the zap, logrus, zerolog or go-kit loggers.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/exp/slog"
)

// Formats lists the accepted values of the format argument to New.
var Formats = []string{"text", "json", "zap", "logrus", "zerolog", "gokit"}

// New returns a logger writing records at or above level to w in the given
// format.
func New(w io.Writer, format string, level slog.Leveler) (*slog.Logger, error) {
	var h slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	case "json":
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	case "zap":
		h = newHandler(newZapSink(w), level)
	case "logrus":
		h = newHandler(newLogrusSink(w), level)
	case "zerolog":
		h = newHandler(newZerologSink(w), level)
	case "gokit":
		h = newHandler(newGokitSink(w), level)
	default:
		return nil, fmt.Errorf("unknown log format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
	return slog.New(h), nil
}

// ParseLevel parses a level name such as "debug", "info", "warn" or
// "error", optionally with an offset as in "info+2".
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return l, nil
}

// A sink writes one fully resolved record to a third-party logger.
// Attrs are flat: groups have been folded into dotted keys.
type sink interface {
	write(t time.Time, level slog.Level, msg string, attrs []slog.Attr) error
}

// handler adapts a sink to slog.Handler.
type handler struct {
	sink   sink
	level  slog.Leveler
	attrs  []slog.Attr // already flattened
	prefix string      // open groups, each followed by "."
}

func newHandler(s sink, level slog.Leveler) *handler {
	if level == nil {
		level = slog.LevelInfo
	}
	return &handler{sink: s, level: level}
}

func (h *handler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level.Level()
}

func (h *handler) Handle(_ context.Context, r slog.Record) error {
	attrs := make([]slog.Attr, len(h.attrs), len(h.attrs)+r.NumAttrs())
	copy(attrs, h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		attrs = appendFlat(attrs, h.prefix, a)
		return true
	})
	return h.sink.write(r.Time, r.Level, r.Message, attrs)
}

func (h *handler) WithAttrs(as []slog.Attr) slog.Handler {
	h2 := *h
	h2.attrs = make([]slog.Attr, len(h.attrs), len(h.attrs)+len(as))
	copy(h2.attrs, h.attrs)
	for _, a := range as {
		h2.attrs = appendFlat(h2.attrs, h.prefix, a)
	}
	return &h2
}

func (h *handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

// appendFlat appends a to attrs, resolving its value and expanding groups
// into keys joined with ".".
func appendFlat(attrs []slog.Attr, prefix string, a slog.Attr) []slog.Attr {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		gs := v.Group()
		if len(gs) == 0 {
			return attrs
		}
		if a.Key != "" {
			prefix += a.Key + "."
		}
		for _, g := range gs {
			attrs = appendFlat(attrs, prefix, g)
		}
		return attrs
	}
	if a.Key == "" {
		return attrs
	}
	return append(attrs, slog.Attr{Key: prefix + a.Key, Value: v})
}
