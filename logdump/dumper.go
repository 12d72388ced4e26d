// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package logdump renders an hpl profiler log as text, one line per event,
// followed by a summary of how many traces were seen and how many records
// were faulty.
//
// The output looks like this:
//
//	Method   : 1 -> com.example.Foo.bar
//	TraceStartL [0] tid=7,frames=2
//	StackFrame:  com.example.Foo::bar @ 10
//	StackFrame: 0 @ -1
//	Processed 1 traces, 1 faulty
//
// Stack frames are indented by the number of frames of their trace that are
// still to come, so the outermost frame of a well-formed trace is flush left.
// A trace that declares no frames is labelled "TraceStart:" instead of
// "TraceStartL"; existing consumers of the format rely on that distinction.
package logdump

import (
	"io"
	"strconv"

	"github.com/hpltools/hpldump/hpl"
	"golang.org/x/exp/slog"
)

// Summary is the tally of one pass.
type Summary struct {
	Traces int64 // TraceStart events seen
	Faulty int64 // malformed traces plus null-method frames
}

type binding struct {
	className  string
	methodName string
}

// A Dumper consumes the events of one log and writes their text form.
// It implements hpl.Handler. A Dumper must not be reused for a second log.
//
// The handlers never fail: malformed records are rendered as well as
// possible and counted as faulty. Write errors are sticky; after the first
// one nothing more is written and Err reports it.
type Dumper struct {
	w      io.Writer
	logger *slog.Logger

	methods map[int64]binding
	depth   int64
	traces  int64
	faulty  int64
	done    bool

	buf []byte
	err error
}

// An Option configures a Dumper.
type Option func(*Dumper)

// WithLogger makes the Dumper report faulty and unresolved records to l
// at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dumper) { d.logger = l }
}

// New returns a Dumper writing to w.
func New(w io.Writer, opts ...Option) *Dumper {
	d := &Dumper{
		w:       w,
		methods: make(map[int64]binding),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// HandleEvent renders ev. Events arriving after EndOfLog are ignored.
func (d *Dumper) HandleEvent(ev hpl.Event) {
	if d.done {
		return
	}
	switch ev := ev.(type) {
	case hpl.Method:
		d.method(ev)
	case hpl.TraceStart:
		d.traceStart(ev)
	case hpl.StackFrame:
		d.stackFrame(ev)
	}
}

// EndOfLog writes the summary line and ends the pass.
func (d *Dumper) EndOfLog() {
	if d.done {
		return
	}
	d.done = true
	b := append(d.buf[:0], "Processed "...)
	b = strconv.AppendInt(b, d.traces, 10)
	b = append(b, " traces, "...)
	b = strconv.AppendInt(b, d.faulty, 10)
	b = append(b, " faulty\n"...)
	d.write(b)
}

// Summary returns the counts accumulated so far.
func (d *Dumper) Summary() Summary {
	return Summary{Traces: d.traces, Faulty: d.faulty}
}

// Done reports whether EndOfLog has been called.
func (d *Dumper) Done() bool { return d.done }

// Err returns the first error encountered writing the output.
func (d *Dumper) Err() error { return d.err }

func (d *Dumper) method(m hpl.Method) {
	if _, ok := d.methods[m.ID]; ok {
		d.debug("method redefined", "id", m.ID)
	}
	// Last definition wins.
	d.methods[m.ID] = binding{className: m.ClassName, methodName: m.MethodName}

	b := append(d.buf[:0], "Method   : "...)
	b = strconv.AppendInt(b, m.ID, 10)
	b = append(b, " -> "...)
	b = append(b, m.ClassName...)
	b = append(b, '.')
	b = append(b, m.MethodName...)
	b = append(b, '\n')
	d.write(b)
}

func (d *Dumper) traceStart(t hpl.TraceStart) {
	idx := d.traces
	d.traces++
	d.depth = int64(t.Frames)

	var b []byte
	if t.Frames <= 0 {
		d.faulty++
		d.debug("faulty trace", "index", idx, "tid", t.ThreadID, "frames", t.Frames)
		b = append(d.buf[:0], "TraceStart: ["...)
	} else {
		b = append(d.buf[:0], "TraceStartL ["...)
	}
	b = strconv.AppendInt(b, idx, 10)
	b = append(b, "] tid="...)
	b = strconv.AppendInt(b, t.ThreadID, 10)
	b = append(b, ",frames="...)
	b = strconv.AppendInt(b, int64(t.Frames), 10)
	b = append(b, '\n')
	d.write(b)
}

func (d *Dumper) stackFrame(f hpl.StackFrame) {
	d.depth--

	d.write(append(d.buf[:0], "StackFrame: "...))
	d.indent(d.depth)

	var b []byte
	bm, ok := d.methods[f.MethodID]
	switch {
	case f.MethodID == hpl.NullMethod:
		d.faulty++
		d.debug("null method frame", "trace", d.traces-1, "line", f.Line)
		b = strconv.AppendInt(d.buf[:0], f.MethodID, 10)
	case !ok:
		// Unknown but non-null IDs are rendered like null ones and are
		// not counted as faulty.
		d.debug("unresolved method", "id", f.MethodID)
		b = strconv.AppendInt(d.buf[:0], f.MethodID, 10)
	default:
		b = append(d.buf[:0], bm.className...)
		b = append(b, "::"...)
		b = append(b, bm.methodName...)
	}
	b = append(b, " @ "...)
	b = strconv.AppendInt(b, int64(f.Line), 10)
	b = append(b, '\n')
	d.write(b)
}

const spaces = "                                                                "

// indent writes n spaces. A negative n writes nothing.
func (d *Dumper) indent(n int64) {
	for n > 0 && d.err == nil {
		k := n
		if k > int64(len(spaces)) {
			k = int64(len(spaces))
		}
		_, d.err = io.WriteString(d.w, spaces[:k])
		n -= k
	}
}

func (d *Dumper) write(b []byte) {
	d.buf = b[:0]
	if d.err != nil {
		return
	}
	_, d.err = d.w.Write(b)
}

func (d *Dumper) debug(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Debug(msg, args...)
	}
}
