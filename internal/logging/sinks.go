// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"io"
	"time"

	kitlog "github.com/go-kit/kit/log"
	kitlevel "github.com/go-kit/kit/log/level"
	"github.com/rs/zerolog"
	"github.com/sirupsen/logrus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/exp/slog"
)

// Level filtering happens in handler.Enabled, so every sink is configured
// to accept all levels.

type zapSink struct {
	core zapcore.Core
}

func newZapSink(w io.Writer) *zapSink {
	enc := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return &zapSink{core: zapcore.NewCore(enc, zapcore.AddSync(w), zapcore.DebugLevel)}
}

func (s *zapSink) write(t time.Time, level slog.Level, msg string, attrs []slog.Attr) error {
	fields := make([]zapcore.Field, len(attrs))
	for i, a := range attrs {
		fields[i] = zap.Any(a.Key, a.Value.Any())
	}
	return s.core.Write(zapcore.Entry{Level: zapLevel(level), Time: t, Message: msg}, fields)
}

func zapLevel(l slog.Level) zapcore.Level {
	switch {
	case l >= slog.LevelError:
		return zapcore.ErrorLevel
	case l >= slog.LevelWarn:
		return zapcore.WarnLevel
	case l >= slog.LevelInfo:
		return zapcore.InfoLevel
	}
	return zapcore.DebugLevel
}

type logrusSink struct {
	logger *logrus.Logger
}

func newLogrusSink(w io.Writer) *logrusSink {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(logrus.TraceLevel)
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	return &logrusSink{logger: l}
}

func (s *logrusSink) write(t time.Time, level slog.Level, msg string, attrs []slog.Attr) error {
	fields := make(logrus.Fields, len(attrs))
	for _, a := range attrs {
		fields[a.Key] = a.Value.Any()
	}
	s.logger.WithTime(t).WithFields(fields).Log(logrusLevel(level), msg)
	return nil
}

func logrusLevel(l slog.Level) logrus.Level {
	switch {
	case l >= slog.LevelError:
		return logrus.ErrorLevel
	case l >= slog.LevelWarn:
		return logrus.WarnLevel
	case l >= slog.LevelInfo:
		return logrus.InfoLevel
	}
	return logrus.DebugLevel
}

type zerologSink struct {
	logger zerolog.Logger
}

func newZerologSink(w io.Writer) *zerologSink {
	return &zerologSink{logger: zerolog.New(w).Level(zerolog.TraceLevel)}
}

func (s *zerologSink) write(t time.Time, level slog.Level, msg string, attrs []slog.Attr) error {
	ev := s.logger.WithLevel(zerologLevel(level)).Time(zerolog.TimestampFieldName, t)
	for _, a := range attrs {
		ev = ev.Interface(a.Key, a.Value.Any())
	}
	ev.Msg(msg)
	return nil
}

func zerologLevel(l slog.Level) zerolog.Level {
	switch {
	case l >= slog.LevelError:
		return zerolog.ErrorLevel
	case l >= slog.LevelWarn:
		return zerolog.WarnLevel
	case l >= slog.LevelInfo:
		return zerolog.InfoLevel
	}
	return zerolog.DebugLevel
}

type gokitSink struct {
	logger kitlog.Logger
}

func newGokitSink(w io.Writer) *gokitSink {
	return &gokitSink{logger: kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))}
}

func (s *gokitSink) write(t time.Time, level slog.Level, msg string, attrs []slog.Attr) error {
	kv := make([]interface{}, 0, 6+2*len(attrs))
	kv = append(kv, "ts", t, kitlevel.Key(), gokitLevel(level), "msg", msg)
	for _, a := range attrs {
		kv = append(kv, a.Key, a.Value.Any())
	}
	return s.logger.Log(kv...)
}

func gokitLevel(l slog.Level) kitlevel.Value {
	switch {
	case l >= slog.LevelError:
		return kitlevel.ErrorValue()
	case l >= slog.LevelWarn:
		return kitlevel.WarnValue()
	case l >= slog.LevelInfo:
		return kitlevel.InfoValue()
	}
	return kitlevel.DebugValue()
}
