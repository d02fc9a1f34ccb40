// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdf

// readObjectAt reads a single "id gen obj ... endobj" definition starting at
// byte offset in d. The trailing endobj keyword is optional; lex.go's
// readObject already tolerates its absence, and this layer additionally
// tolerates the id/gen recorded in the file disagreeing with wantID, since
// incrementally-updated PDFs occasionally get this wrong and every other
// production reader lets it slide too.
func (d *doc) readObjectAt(offset int64, wantID uint32) (object, error) {
	b := newBuffer(d.sectionReader(offset), offset)
	defer PutPDFBuffer(b)
	b.allowObjptr = true
	b.allowStream = true

	obj := b.readObject()
	def, ok := obj.(objdef)
	if !ok {
		return nil, malformedf("readObjectAt", "object %d: expected N G obj header at offset %d", wantID, offset)
	}
	return def.obj, nil
}

// streamLength resolves the /Length entry of a stream, following an
// indirect reference through xr if necessary.
func (d *doc) streamLength(xr *xrefMap, strm stream) (int64, error) {
	lenObj := strm.hdr[name("Length")]
	if ptr, ok := lenObj.(objptr); ok {
		v := d.resolve(xr, ptr)
		if v.Kind() != Integer {
			return 0, malformedf("streamLength", "indirect /Length for stream %d did not resolve to an integer", strm.ptr.id)
		}
		return v.Int64(), nil
	}
	n, ok := lenObj.(int64)
	if !ok {
		return 0, malformedf("streamLength", "stream %d has no /Length", strm.ptr.id)
	}
	return n, nil
}

// streamBytes returns the raw (still-encoded) bytes of a stream.
func (d *doc) streamBytes(xr *xrefMap, strm stream) ([]byte, error) {
	n, err := d.streamLength(xr, strm)
	if err != nil || n < 0 {
		return nil, err
	}
	if strm.offset+n > d.end {
		n = d.end - strm.offset
	}
	buf := make([]byte, n)
	got := d.readAt(buf, strm.offset)
	return buf[:got], nil
}
