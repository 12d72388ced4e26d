// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpl

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Writer encodes events in the binary form of an hpl log.
type Writer struct {
	w   io.Writer
	buf []byte
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (w *Writer) WriteEvent(e Event) error {
	switch e := e.(type) {
	case TraceStart:
		w.buf = append(w.buf, uint8(KindTraceStart))
		w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(e.Frames))
		w.buf = binary.BigEndian.AppendUint64(w.buf, uint64(e.ThreadID))
	case StackFrame:
		w.buf = append(w.buf, uint8(KindStackFrame))
		w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(e.Line))
		w.buf = binary.BigEndian.AppendUint64(w.buf, uint64(e.MethodID))
	case Method:
		w.buf = append(w.buf, uint8(KindMethod))
		w.buf = binary.BigEndian.AppendUint64(w.buf, uint64(e.ID))
		for _, s := range []string{e.FileName, e.ClassName, e.MethodName} {
			w.buf = binary.BigEndian.AppendUint32(w.buf, uint32(len(s)))
			w.buf = append(w.buf, s...)
		}
	default:
		return fmt.Errorf("hpl: cannot encode event of type %T", e)
	}

	_, err := w.w.Write(w.buf)
	w.buf = w.buf[:0]
	return err
}
