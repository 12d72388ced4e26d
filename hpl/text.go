// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpl

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TextReader parses the text form of an hpl log, one event per line as
// produced by Event.String. Blank lines and lines starting with '#' are
// ignored.
type TextReader struct {
	s    *bufio.Scanner
	line int
}

// maxTextLine bounds one line of text: three quoted strings of maxStringLen
// bytes, each of which can grow fourfold when every byte is escaped.
const maxTextLine = 3*(4*maxStringLen+2) + 1<<10

func NewTextReader(r io.Reader) *TextReader {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64<<10), maxTextLine)
	return &TextReader{s: s}
}

func (r *TextReader) NextEvent() (Event, error) {
	for r.s.Scan() {
		r.line++
		line := strings.TrimSpace(r.s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ev, err := parseEvent(line)
		if err != nil {
			return nil, fmt.Errorf("hpl: line %d: %w", r.line, err)
		}
		return ev, nil
	}
	if err := r.s.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

func parseEvent(line string) (Event, error) {
	name, rest, _ := strings.Cut(line, " ")
	args, err := parseArgs(rest)
	if err != nil {
		return nil, err
	}
	switch name {
	case "Method":
		m := Method{
			FileName:   args.str("file", false),
			ClassName:  args.str("class", true),
			MethodName: args.str("method", true),
		}
		m.ID = args.parseInt("id", 64)
		return m, args.done()
	case "TraceStart":
		t := TraceStart{
			ThreadID: args.parseInt("tid", 64),
			Frames:   int32(args.parseInt("frames", 32)),
		}
		return t, args.done()
	case "StackFrame":
		f := StackFrame{
			MethodID: args.parseInt("method", 64),
			Line:     int32(args.parseInt("line", 32)),
		}
		return f, args.done()
	}
	return nil, fmt.Errorf("unknown event %q", name)
}

// argSet holds the key=value arguments of one text event. Accessors record
// the first problem they hit; done reports it along with unused keys.
type argSet struct {
	vals map[string]string
	used map[string]bool
	err  error
}

func parseArgs(s string) (*argSet, error) {
	a := &argSet{vals: make(map[string]string), used: make(map[string]bool)}
	for {
		s = strings.TrimLeft(s, " \t")
		if s == "" {
			return a, nil
		}
		key, rest, ok := strings.Cut(s, "=")
		if !ok || key == "" || strings.ContainsAny(key, " \t") {
			return nil, fmt.Errorf("malformed argument %q", s)
		}
		var value string
		if strings.HasPrefix(rest, `"`) {
			q, err := strconv.QuotedPrefix(rest)
			if err != nil {
				return nil, fmt.Errorf("argument %s: %v", key, err)
			}
			value, _ = strconv.Unquote(q)
			rest = rest[len(q):]
		} else {
			i := strings.IndexAny(rest, " \t")
			if i < 0 {
				i = len(rest)
			}
			value, rest = rest[:i], rest[i:]
		}
		if _, dup := a.vals[key]; dup {
			return nil, fmt.Errorf("duplicate argument %s", key)
		}
		a.vals[key] = value
		s = rest
	}
}

func (a *argSet) str(key string, required bool) string {
	v, ok := a.vals[key]
	a.used[key] = true
	if !ok && required && a.err == nil {
		a.err = fmt.Errorf("missing argument %s", key)
	}
	return v
}

func (a *argSet) parseInt(key string, bits int) int64 {
	v := a.str(key, true)
	if a.err != nil {
		return 0
	}
	n, err := strconv.ParseInt(v, 10, bits)
	if err != nil {
		a.err = fmt.Errorf("argument %s: %v", key, err)
		return 0
	}
	return n
}

func (a *argSet) done() error {
	if a.err != nil {
		return a.err
	}
	for k := range a.vals {
		if !a.used[k] {
			return fmt.Errorf("unexpected argument %s", k)
		}
	}
	return nil
}
