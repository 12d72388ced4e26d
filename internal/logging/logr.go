// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"golang.org/x/exp/slog"
)

// NewLogr returns a logr.Logger that writes through l. Verbosity V(n)
// logs at slog level Info-n, so V(4) lines are debug lines.
func NewLogr(l *slog.Logger) logr.Logger {
	return logr.New(&logrSink{handler: l.Handler()})
}

type logrSink struct {
	handler slog.Handler
	name    string
	values  []any
}

var _ logr.LogSink = (*logrSink)(nil)

func (s *logrSink) Init(logr.RuntimeInfo) {}

func (s *logrSink) Enabled(v int) bool {
	return s.handler.Enabled(context.Background(), logrLevel(v))
}

func (s *logrSink) Info(v int, msg string, kv ...any) {
	s.log(logrLevel(v), msg, nil, kv)
}

func (s *logrSink) Error(err error, msg string, kv ...any) {
	s.log(slog.LevelError, msg, err, kv)
}

func (s *logrSink) WithValues(kv ...any) logr.LogSink {
	s2 := *s
	s2.values = append(s.values[:len(s.values):len(s.values)], kv...)
	return &s2
}

func (s *logrSink) WithName(name string) logr.LogSink {
	s2 := *s
	if s.name != "" {
		s2.name = s.name + "/" + name
	} else {
		s2.name = name
	}
	return &s2
}

func (s *logrSink) log(level slog.Level, msg string, err error, kv []any) {
	r := slog.NewRecord(time.Now(), level, msg, 0)
	if s.name != "" {
		r.AddAttrs(slog.String("logger", s.name))
	}
	if err != nil {
		r.AddAttrs(slog.Any("err", err))
	}
	r.Add(s.values...)
	r.Add(kv...)
	_ = s.handler.Handle(context.Background(), r)
}

func logrLevel(v int) slog.Level {
	return slog.LevelInfo - slog.Level(v)
}
