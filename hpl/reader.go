// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpl

import (
	"bufio"
	"encoding/binary"
	"errors"
	"io"

	"golang.org/x/xerrors"
)

var (
	// ErrUnknownRecord is returned when a record starts with a tag that is
	// not one of the known Kinds.
	ErrUnknownRecord = errors.New("unknown record type")

	// ErrNotFound is returned by Open when the log does not exist or cannot
	// be read.
	ErrNotFound = errors.New("log not found")
)

// maxStringLen bounds the length of a single string in a Method record so a
// corrupt length cannot trigger an enormous allocation.
const maxStringLen = 1 << 20

// Reader decodes events from the binary form of an hpl log.
type Reader struct {
	r   *bufio.Reader
	off int64 // bytes consumed so far
	n   int   // records decoded so far
	buf [8]byte
}

// NewReader returns a Reader decoding the log in r.
func NewReader(r io.Reader) *Reader {
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	return &Reader{r: br}
}

// NextEvent returns the next event in the log. It returns io.EOF only when
// the input ends on a record boundary; a record cut short yields an error
// wrapping io.ErrUnexpectedEOF.
func (r *Reader) NextEvent() (Event, error) {
	start := r.off
	tag, err := r.r.ReadByte()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, xerrors.Errorf("hpl: record %d at offset %d: %w", r.n, start, err)
	}
	r.off++

	var ev Event
	switch k := Kind(tag); k {
	case KindTraceStart:
		ev, err = r.readTraceStart()
	case KindStackFrame:
		ev, err = r.readStackFrame()
	case KindMethod:
		ev, err = r.readMethod()
	default:
		return nil, xerrors.Errorf("hpl: record %d at offset %d: tag %d: %w", r.n, start, tag, ErrUnknownRecord)
	}
	if err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, xerrors.Errorf("hpl: record %d (%v) at offset %d: %w", r.n, Kind(tag), start, err)
	}
	r.n++
	return ev, nil
}

func (r *Reader) readTraceStart() (Event, error) {
	frames, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	tid, err := r.readInt64()
	if err != nil {
		return nil, unexpected(err)
	}
	return TraceStart{ThreadID: tid, Frames: frames}, nil
}

func (r *Reader) readStackFrame() (Event, error) {
	line, err := r.readInt32()
	if err != nil {
		return nil, err
	}
	id, err := r.readInt64()
	if err != nil {
		return nil, unexpected(err)
	}
	return StackFrame{MethodID: id, Line: line}, nil
}

func (r *Reader) readMethod() (Event, error) {
	id, err := r.readInt64()
	if err != nil {
		return nil, err
	}
	var m Method
	m.ID = id
	for _, dst := range []*string{&m.FileName, &m.ClassName, &m.MethodName} {
		if *dst, err = r.readString(); err != nil {
			return nil, unexpected(err)
		}
	}
	return m, nil
}

func (r *Reader) readInt32() (int32, error) {
	if err := r.fill(4); err != nil {
		return 0, err
	}
	return int32(binary.BigEndian.Uint32(r.buf[:4])), nil
}

func (r *Reader) readInt64() (int64, error) {
	if err := r.fill(8); err != nil {
		return 0, err
	}
	return int64(binary.BigEndian.Uint64(r.buf[:8])), nil
}

func (r *Reader) readString() (string, error) {
	n, err := r.readInt32()
	if err != nil {
		return "", err
	}
	if n < 0 {
		return "", xerrors.Errorf("negative string length %d", n)
	}
	if n > maxStringLen {
		return "", xerrors.Errorf("string length %d exceeds limit %d", n, maxStringLen)
	}
	b := make([]byte, n)
	m, err := io.ReadFull(r.r, b)
	r.off += int64(m)
	if err != nil {
		return "", unexpected(err)
	}
	return string(b), nil
}

func (r *Reader) fill(n int) error {
	m, err := io.ReadFull(r.r, r.buf[:n])
	r.off += int64(m)
	return err
}

// unexpected converts io.EOF into io.ErrUnexpectedEOF for reads that
// happen after part of a record has already been consumed.
func unexpected(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
