// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdf

import (
	"bytes"
	"compress/zlib"
	"io"
)

// maxInflatedStream bounds how much decoded stream data a single FlateDecode
// call will produce. Cross-reference streams and object streams are small in
// every PDF seen in practice; a much larger claim points at a corrupt length
// or a decompression bomb, and callers are better served by an error than by
// an unbounded allocation.
const maxInflatedStream = 64 << 20 // 64MiB

func inflate(data []byte, limit int64) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, malformed("inflate", err)
	}
	defer zr.Close()
	if limit <= 0 || limit > maxInflatedStream {
		limit = maxInflatedStream
	}
	out, err := io.ReadAll(io.LimitReader(zr, limit+1))
	if err != nil && len(out) == 0 {
		return nil, malformed("inflate", err)
	}
	if int64(len(out)) > limit {
		return nil, malformedf("inflate", "decoded stream exceeds %d bytes", limit)
	}
	return out, nil
}
