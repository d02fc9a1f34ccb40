// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdf

import (
	"bytes"
	"errors"
)

// resolveCompressed extracts the object at comp.index from the object
// stream identified by comp.streamID, falling through to /Extends (an
// ObjStm may chain to an earlier one) if the index doesn't land inside
// this stream's own object count.
func (d *doc) resolveCompressed(xr *xrefMap, comp compressedEntry, wantID uint32) (object, error) {
	streamID := comp.streamID
	index := comp.index
	for depth := 0; depth < maxResolveHops; depth++ {
		entry, ok := xr.direct[streamID]
		if !ok {
			return nil, malformed("resolveCompressed", errors.New("object stream is not a direct object"))
		}
		obj, err := d.readObjectAt(entry.offset, streamID)
		if err != nil {
			return nil, err
		}
		strm, ok := obj.(stream)
		if !ok {
			return nil, malformed("resolveCompressed", errors.New("object stream entry is not a stream"))
		}
		if t, _ := strm.hdr[name("Type")].(name); t != "ObjStm" {
			return nil, malformed("resolveCompressed", errors.New("stream is not /Type /ObjStm"))
		}

		n := int(intOr(strm.hdr[name("N")], 0))
		first := int64(intOr(strm.hdr[name("First")], 0))
		if index < n {
			data, err := d.decodeStream(xr, strm)
			if err != nil {
				return nil, err
			}
			return decodeObjStmEntry(data, n, first, index)
		}

		ext, ok := strm.hdr[name("Extends")].(objptr)
		if !ok {
			return nil, malformedf("resolveCompressed", "object %d: index %d out of range for ObjStm with N=%d and no /Extends", wantID, index, n)
		}
		streamID = ext.id
		index -= n
	}
	return nil, malformed("resolveCompressed", errors.New("/Extends chain too long"))
}

// decodeObjStmEntry reads the N pairs of (object number, relative offset)
// from an ObjStm's header and returns the decoded object at position
// index, bounded by the next pair's offset (or end of stream).
func decodeObjStmEntry(data []byte, n int, first int64, index int) (object, error) {
	offsets := make([]int64, n)
	pos := 0
	for i := 0; i < n; i++ {
		ok, _, next := readIntToken(data, pos) // object number, unused
		if !ok {
			return nil, malformed("decodeObjStmEntry", errors.New("truncated ObjStm header"))
		}
		pos = next
		ok, off, next := readIntToken(data, pos)
		if !ok {
			return nil, malformed("decodeObjStmEntry", errors.New("truncated ObjStm header"))
		}
		pos = next
		offsets[i] = off
	}
	if index >= n {
		return nil, malformed("decodeObjStmEntry", errors.New("index out of range"))
	}
	start := first + offsets[index]
	end := int64(len(data))
	if index+1 < n {
		end = first + offsets[index+1]
	}
	if start < 0 || end > int64(len(data)) || start > end {
		return nil, malformed("decodeObjStmEntry", errors.New("object slice out of range"))
	}

	b := GetPDFBuffer()
	defer PutPDFBuffer(b)
	b.r = bytes.NewReader(nil)
	b.buf = append(b.buf[:0], data[start:end]...)
	b.pos = 0
	b.offset = int64(len(b.buf))
	b.allowStream = false
	b.allowEOF = true
	return b.readObject(), nil
}

// readIntToken scans a single ASCII integer starting at the first
// non-whitespace byte at or after pos, returning its value and the
// position just past it.
func readIntToken(data []byte, pos int) (ok bool, value int64, next int) {
	for pos < len(data) && isSpace(data[pos]) {
		pos++
	}
	start := pos
	for pos < len(data) && data[pos] >= '0' && data[pos] <= '9' {
		pos++
	}
	if pos == start {
		return false, 0, pos
	}
	var v int64
	for _, c := range data[start:pos] {
		v = v*10 + int64(c-'0')
	}
	return true, v, pos
}
