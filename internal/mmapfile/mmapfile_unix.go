// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build unix

package mmapfile

import (
	"os"

	"golang.org/x/sys/unix"
)

// Open maps path's contents read-only. An empty file maps to a zero-length
// File rather than an error, since mmap of a zero-length region fails.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	size := fi.Size()
	if size == 0 {
		return &File{Data: nil, f: f}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, err
	}
	mf := &File{Data: data, f: f}
	mf.unmap = func() error {
		return unix.Munmap(data)
	}
	return mf, nil
}
