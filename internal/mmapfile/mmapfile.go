// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mmapfile opens a file as a byte slice without copying its
// contents into the Go heap, for callers that only ever read it.
package mmapfile

import "os"

// File is a memory-mapped (or, on platforms without mmap support,
// ordinarily read) file. Data is valid until Close is called.
type File struct {
	Data  []byte
	unmap func() error
	f     *os.File
}

// Close releases the mapping, if any, and the underlying file descriptor.
func (f *File) Close() error {
	var err error
	if f.unmap != nil {
		err = f.unmap()
	}
	if f.f != nil {
		if cerr := f.f.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
