// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logdump

import (
	"context"
	"io"

	"github.com/hpltools/hpldump/hpl"
	"github.com/hpltools/hpldump/internal/telemetry"
)

// Dump renders every event of r to w with a fresh Dumper. The summary line
// is written only if r is read to its end; otherwise the read error is
// returned. A write error is returned if nothing else went wrong.
func Dump(ctx context.Context, r hpl.EventReader, w io.Writer, opts ...Option) (Summary, error) {
	d := New(w, opts...)
	err := hpl.Consume(ctx, r, d)
	if err == nil {
		err = d.Err()
	}
	return d.Summary(), err
}

// DumpFile is like Dump for an opened log file, and records the pass as a
// trace span.
func DumpFile(ctx context.Context, f *hpl.File, w io.Writer, opts ...Option) (Summary, error) {
	ctx, span := telemetry.StartPass(ctx, f.Path())
	sum, err := Dump(ctx, f, w, opts...)
	telemetry.EndPass(span, sum.Traces, sum.Faulty, err)
	return sum, err
}
