// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package hpl

import (
	"fmt"
	"os"
	"path/filepath"
)

// File is an hpl log opened from the file system.
type File struct {
	*Reader
	f    *os.File
	path string
}

// Open opens the log at path for reading. If the log does not exist, is a
// directory, or cannot be read, Open returns an error wrapping ErrNotFound.
func Open(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	f, err := os.Open(abs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	fi, err := f.Stat()
	if err == nil && fi.IsDir() {
		err = fmt.Errorf("%s is a directory", abs)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrNotFound, err)
	}
	return &File{Reader: NewReader(f), f: f, path: abs}, nil
}

// NotFoundMessage is the user-facing report for a log that Open rejected.
func NotFoundMessage(path string) string {
	return "Unable to find log file at: " + path
}

// Path returns the absolute path of the log.
func (f *File) Path() string { return f.path }

func (f *File) Close() error { return f.f.Close() }
