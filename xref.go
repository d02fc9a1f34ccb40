// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdf

import (
	"errors"
	"io"
	"strconv"
)

// directEntry locates an object stored directly in the file body.
type directEntry struct {
	offset int64
	gen    uint16
}

// compressedEntry locates an object stored inside an object stream.
type compressedEntry struct {
	streamID uint32
	index    int
}

// xrefMap is the merged view of every cross-reference section reached by
// following /Prev (and, for hybrid files, /XRefStm) from the file's last
// startxref offset. Whichever section is processed first for a given object
// number wins, matching how incremental updates are meant to shadow older
// state.
type xrefMap struct {
	direct     map[uint32]directEntry
	compressed map[uint32]compressedEntry
	trailer    dict
}

// maxXrefHops bounds how many /Prev links are followed. PDF producers that
// corrupt this chain into a cycle are common enough that a hard stop is
// mandatory; ten genuine incremental updates is already a lot.
const maxXrefHops = 64

// buildXref locates startxref and walks the resulting chain of xref
// sections, returning the merged table and the document trailer (the
// trailer of the first, newest section read).
func buildXref(d *doc) (*xrefMap, error) {
	xr := &xrefMap{
		direct:     make(map[uint32]directEntry),
		compressed: make(map[uint32]compressedEntry),
	}

	start, startErr := findStartXref(d)
	if startErr != nil {
		alt, ok := scanForXrefOffset(d)
		if !ok {
			return nil, startErr
		}
		start = alt
	}

	visited := make(map[int64]bool)
	offset := start
	for hops := 0; offset != 0 && hops < maxXrefHops; hops++ {
		if visited[offset] {
			break
		}
		visited[offset] = true

		trailer, xrefStmOffset, err := d.readXrefSection(offset, xr)
		if err != nil && hops == 0 {
			// The offset startxref named didn't resolve to a usable xref
			// table or stream; scan the file for one instead of giving up
			// on the accurate path outright.
			if alt, ok := scanForXrefOffset(d); ok && !visited[alt] {
				visited[alt] = true
				if t, x, err2 := d.readXrefSection(alt, xr); err2 == nil {
					trailer, xrefStmOffset, err = t, x, nil
				}
			}
		}
		if err != nil {
			return nil, err
		}
		if xr.trailer == nil {
			xr.trailer = trailer
		}

		if xrefStmOffset != 0 && !visited[xrefStmOffset] {
			visited[xrefStmOffset] = true
			if _, _, err := d.readXrefSection(xrefStmOffset, xr); err != nil {
				// A broken hybrid stream shouldn't sink an otherwise usable
				// classic table; keep going.
				debugf("xref: hybrid /XRefStm at %d: %v\n", xrefStmOffset, err)
			}
		}

		prev, ok := trailer[name("Prev")].(int64)
		if !ok {
			break
		}
		offset = prev
	}

	if xr.trailer == nil {
		return nil, malformed("buildXref", errNoTrailer)
	}
	return xr, nil
}

var errNoTrailer = errors.New("no trailer found while walking xref chain")

// findStartXref locates the last "startxref\n<offset>" marker in the file.
func findStartXref(d *doc) (int64, error) {
	tailLen := int64(2048)
	if tailLen > d.end {
		tailLen = d.end
	}
	buf := make([]byte, tailLen)
	n := d.readAt(buf, d.end-tailLen)
	buf = buf[:n]

	i := bytesLastIndex(buf, []byte("startxref"))
	if i < 0 {
		return 0, malformed("findStartXref", errors.New("startxref keyword not found"))
	}
	rest := buf[i+len("startxref"):]
	j := 0
	for j < len(rest) && isSpace(rest[j]) {
		j++
	}
	k := j
	for k < len(rest) && rest[k] >= '0' && rest[k] <= '9' {
		k++
	}
	if k == j {
		return 0, malformed("findStartXref", errors.New("startxref not followed by an integer"))
	}
	off, err := strconv.ParseInt(string(rest[j:k]), 10, 64)
	if err != nil {
		return 0, malformed("findStartXref", err)
	}
	return off, nil
}

// readXrefSection reads one cross-reference section, either a classic
// "xref" table with trailer, or a PDF 1.5+ cross-reference stream, and
// inserts its entries into xr on a first-wins basis. It returns the
// section's trailer dictionary and, for a classic table, the offset of a
// hybrid /XRefStm if present.
func (d *doc) readXrefSection(offset int64, xr *xrefMap) (dict, int64, error) {
	b := newBuffer(d.sectionReader(offset), offset)
	defer PutPDFBuffer(b)

	tok := b.readToken()
	if tok == keyword("xref") {
		return d.readClassicXref(b, xr)
	}

	// Not "xref": this must be an indirect xref-stream object instead.
	obj, err := d.readObjectAt(offset, 0)
	if err != nil {
		return nil, 0, err
	}
	strm, ok := obj.(stream)
	if !ok {
		return nil, 0, malformed("readXrefSection", errors.New("expected xref table or xref stream"))
	}
	trailer, err := d.readXrefStream(strm, xr)
	if err != nil {
		return nil, 0, err
	}
	return trailer, 0, nil
}

func (d *doc) readClassicXref(b *buffer, xr *xrefMap) (dict, int64, error) {
	for {
		tok := b.readToken()
		if tok == keyword("trailer") {
			break
		}
		startTok, ok := tok.(int64)
		if !ok {
			return nil, 0, malformed("readClassicXref", errors.New("expected subsection header or trailer"))
		}
		countTok, ok := b.readToken().(int64)
		if !ok {
			return nil, 0, malformed("readClassicXref", errors.New("expected subsection count"))
		}
		start, count := uint32(startTok), int(countTok)
		for i := 0; i < count; i++ {
			offTok := b.readToken()
			genTok := b.readToken()
			typTok := b.readToken()
			offVal, ok1 := offTok.(int64)
			genVal, ok2 := genTok.(int64)
			typKw, ok3 := typTok.(keyword)
			if !ok1 || !ok2 || !ok3 {
				return nil, 0, malformed("readClassicXref", errors.New("malformed entry"))
			}
			id := start + uint32(i)
			if typKw == "n" {
				if _, exists := xr.direct[id]; !exists {
					if _, exists2 := xr.compressed[id]; !exists2 {
						xr.direct[id] = directEntry{offset: offVal, gen: uint16(genVal)}
					}
				}
			}
		}
	}

	trailerObj := b.readObject()
	trailer, ok := trailerObj.(dict)
	if !ok {
		return nil, 0, malformed("readClassicXref", errors.New("trailer is not a dictionary"))
	}
	var xrefStm int64
	if v, ok := trailer[name("XRefStm")].(int64); ok {
		xrefStm = v
	}
	return trailer, xrefStm, nil
}

func (d *doc) readXrefStream(strm stream, xr *xrefMap) (dict, error) {
	hdr := strm.hdr
	if t, _ := hdr[name("Type")].(name); t != "XRef" {
		return nil, malformed("readXrefStream", errors.New("stream is not /Type /XRef"))
	}
	wArr, ok := hdr[name("W")].(array)
	if !ok || len(wArr) < 3 {
		return nil, malformed("readXrefStream", errors.New("missing or malformed /W"))
	}
	w := make([]int, 3)
	for i := 0; i < 3; i++ {
		n, ok := wArr[i].(int64)
		if !ok {
			return nil, malformed("readXrefStream", errors.New("/W entries must be integers"))
		}
		w[i] = int(n)
	}

	size, _ := hdr[name("Size")].(int64)
	var index []int64
	if idxArr, ok := hdr[name("Index")].(array); ok {
		for _, e := range idxArr {
			if n, ok := e.(int64); ok {
				index = append(index, n)
			}
		}
	}
	if len(index) == 0 {
		index = []int64{0, size}
	}

	data, err := d.decodeStream(xr, strm)
	if err != nil {
		return nil, err
	}

	stride := w[0] + w[1] + w[2]
	if stride <= 0 {
		return nil, malformed("readXrefStream", errors.New("zero-width xref stream record"))
	}

	pos := 0
	for s := 0; s+1 < len(index); s += 2 {
		start := uint32(index[s])
		count := int(index[s+1])
		for i := 0; i < count; i++ {
			if pos+stride > len(data) {
				break
			}
			rec := data[pos : pos+stride]
			pos += stride
			f0 := int64(1)
			if w[0] > 0 {
				f0 = beInt(rec[:w[0]])
			}
			f1 := beInt(rec[w[0] : w[0]+w[1]])
			f2 := beInt(rec[w[0]+w[1] : stride])

			id := start + uint32(i)
			switch f0 {
			case 0:
				// free entry
			case 1:
				if _, exists := xr.direct[id]; !exists {
					if _, exists2 := xr.compressed[id]; !exists2 {
						xr.direct[id] = directEntry{offset: f1, gen: uint16(f2)}
					}
				}
			case 2:
				if _, exists := xr.compressed[id]; !exists {
					if _, exists2 := xr.direct[id]; !exists2 {
						xr.compressed[id] = compressedEntry{streamID: uint32(f1), index: int(f2)}
					}
				}
			}
		}
	}

	return hdr, nil
}

// scanForXrefOffset is the tolerant startxref fallback: it looks for a
// classic "xref" table header first, then a "/Type /XRef" stream object,
// scanning backward from the end of the file since the newest section is
// the one worth recovering.
func scanForXrefOffset(d *doc) (int64, bool) {
	raw, err := io.ReadAll(d.sectionReader(0))
	if err != nil {
		return 0, false
	}
	if off, ok := lastClassicXrefOffset(raw); ok {
		return off, true
	}
	return lastXrefStreamOffset(raw)
}

// lastClassicXrefOffset finds the last "xref" keyword that starts a
// classic table header, as opposed to one embedded in "startxref".
func lastClassicXrefOffset(raw []byte) (int64, bool) {
	for end := len(raw); ; {
		i := bytesLastIndex(raw[:end], []byte("xref"))
		if i < 0 {
			return 0, false
		}
		end = i
		if i >= 5 && string(raw[i-5:i]) == "start" {
			continue
		}
		if i+4 < len(raw) && !isSpace(raw[i+4]) {
			continue
		}
		return int64(i), true
	}
}

// lastXrefStreamOffset finds the last standalone "/XRef" name (excluding
// "/XRefStm") and walks backward to the "N G obj" header that owns it.
func lastXrefStreamOffset(raw []byte) (int64, bool) {
	for end := len(raw); ; {
		i := bytesLastIndex(raw[:end], []byte("/XRef"))
		if i < 0 {
			return 0, false
		}
		end = i
		after := i + len("/XRef")
		if after < len(raw) && isNameChar(raw[after]) {
			continue
		}
		if off, ok := findObjHeaderBefore(raw, i); ok {
			return off, true
		}
	}
}

// findObjHeaderBefore scans backward from near, within a bounded window,
// for the "N G obj" header that introduces the object containing near.
func findObjHeaderBefore(raw []byte, near int) (int64, bool) {
	lo := near - 4096
	if lo < 0 {
		lo = 0
	}
	idx := bytesLastIndex(raw[lo:near], []byte("obj"))
	if idx < 0 {
		return 0, false
	}
	p := lo + idx

	j := p
	for j > lo && isSpace(raw[j-1]) {
		j--
	}
	genEnd := j
	for j > lo && raw[j-1] >= '0' && raw[j-1] <= '9' {
		j--
	}
	if j == genEnd {
		return 0, false
	}

	for j > lo && isSpace(raw[j-1]) {
		j--
	}
	idEnd := j
	for j > lo && raw[j-1] >= '0' && raw[j-1] <= '9' {
		j--
	}
	if j == idEnd {
		return 0, false
	}
	return int64(j), true
}

func beInt(b []byte) int64 {
	var x int64
	for _, c := range b {
		x = x<<8 | int64(c)
	}
	return x
}
