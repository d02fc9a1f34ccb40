// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !unix

package mmapfile

import "os"

// Open reads path's contents into memory. Platforms without mmap support
// (windows, plan9, js) fall back to a plain read; callers only see File.Data
// either way.
func Open(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &File{Data: data}, nil
}
