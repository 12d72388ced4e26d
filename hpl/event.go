// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package hpl reads and writes hpl profiler logs: a flat stream of method
// definitions, trace starts and stack frames recorded by a sampling profiler.
package hpl

import (
	"strconv"
	"strings"
)

// Kind identifies the type of a log record. Its value is the record tag
// used by the binary encoding.
type Kind uint8

const (
	KindBad        Kind = 0
	KindTraceStart Kind = 1
	KindStackFrame Kind = 2
	KindMethod     Kind = 3
)

func (k Kind) String() string {
	switch k {
	case KindTraceStart:
		return "TraceStart"
	case KindStackFrame:
		return "StackFrame"
	case KindMethod:
		return "Method"
	}
	return "Bad"
}

// Event is one record of an hpl log. It is implemented by Method, TraceStart
// and StackFrame only.
type Event interface {
	Kind() Kind
	String() string
}

// NullMethod is the method ID a profiler reports when it could not resolve
// the method of a frame.
const NullMethod int64 = 0

// Method binds a method ID to its human-readable name.
type Method struct {
	ID         int64
	FileName   string
	ClassName  string
	MethodName string
}

// TraceStart begins one captured call stack. Frames is the number of
// StackFrame events that follow it.
type TraceStart struct {
	ThreadID int64
	Frames   int32
}

// StackFrame is one entry of the call stack started by the most recent
// TraceStart. Line is reported by the profiler and may be a pseudo value.
type StackFrame struct {
	MethodID int64
	Line     int32
}

func (Method) Kind() Kind     { return KindMethod }
func (TraceStart) Kind() Kind { return KindTraceStart }
func (StackFrame) Kind() Kind { return KindStackFrame }

// String returns the text form of the event, as accepted by TextReader.
func (m Method) String() string {
	var s strings.Builder
	s.WriteString("Method id=")
	s.WriteString(strconv.FormatInt(m.ID, 10))
	writeField(&s, "file", m.FileName)
	writeField(&s, "class", m.ClassName)
	writeField(&s, "method", m.MethodName)
	return s.String()
}

func (t TraceStart) String() string {
	return "TraceStart tid=" + strconv.FormatInt(t.ThreadID, 10) +
		" frames=" + strconv.FormatInt(int64(t.Frames), 10)
}

func (f StackFrame) String() string {
	return "StackFrame method=" + strconv.FormatInt(f.MethodID, 10) +
		" line=" + strconv.FormatInt(int64(f.Line), 10)
}

// writeField writes " key=value", quoting the value when it would not
// survive a round trip through the whitespace-separated text form.
func writeField(s *strings.Builder, key, value string) {
	s.WriteString(" ")
	s.WriteString(key)
	s.WriteString("=")
	q := strconv.Quote(value)
	// Quote changes anything that is not printable, which covers line
	// breaks and other control characters.
	if value == "" || strings.ContainsAny(value, " \t\"#") || q[1:len(q)-1] != value {
		s.WriteString(q)
		return
	}
	s.WriteString(value)
}
