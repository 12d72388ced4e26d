// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpl

import (
	"context"
	"io"
)

// EventReader is a source of events, such as a Reader or a TextReader.
type EventReader interface {
	NextEvent() (Event, error)
}

// Handler consumes the events of one log in order.
type Handler interface {
	HandleEvent(Event)

	// EndOfLog is called once, after the last event, when the whole log
	// was read successfully.
	EndOfLog()
}

// Consume delivers every event of r to h, synchronously and in log order.
//
// If r is exhausted cleanly, Consume calls h.EndOfLog and returns nil. If
// reading fails or ctx is done, Consume returns the error and EndOfLog is
// never called.
func Consume(ctx context.Context, r EventReader, h Handler) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		ev, err := r.NextEvent()
		if err == io.EOF {
			h.EndOfLog()
			return nil
		}
		if err != nil {
			return err
		}
		h.HandleEvent(ev)
	}
}
