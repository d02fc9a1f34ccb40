// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdf

// maxResolveHops bounds indirect-reference chains (an object that is itself
// just a reference to another object). Legitimate PDFs never nest these;
// a cycle here is corruption, not a deep document.
const maxResolveHops = 32

// resolve turns a raw object — possibly an objptr — into a Value, following
// indirect references through xr until it lands on a direct value. Objects
// that can't be found, or that cycle, resolve to a null Value rather than
// an error: a dangling reference inside one branch of the page tree
// shouldn't abort the whole count.
func (d *doc) resolve(xr *xrefMap, x object) Value {
	ptr, ok := x.(objptr)
	if !ok {
		return Value{d: d, xr: xr, data: x}
	}

	for hop := 0; hop < maxResolveHops; hop++ {
		if direct, ok := xr.direct[ptr.id]; ok {
			obj, err := d.readObjectAt(direct.offset, ptr.id)
			if err != nil {
				debugf("resolve: object %d at %d: %v\n", ptr.id, direct.offset, err)
				return Value{}
			}
			next, ok := obj.(objptr)
			if !ok {
				return Value{d: d, xr: xr, ptr: ptr, data: obj}
			}
			ptr = next
			continue
		}
		if comp, ok := xr.compressed[ptr.id]; ok {
			obj, err := d.resolveCompressed(xr, comp, ptr.id)
			if err != nil {
				debugf("resolve: compressed object %d in stream %d: %v\n", ptr.id, comp.streamID, err)
				return Value{}
			}
			next, ok := obj.(objptr)
			if !ok {
				return Value{d: d, xr: xr, ptr: ptr, data: obj}
			}
			ptr = next
			continue
		}
		return Value{}
	}
	return Value{}
}

// resolveRoot returns the document's Catalog dictionary via the trailer's
// /Root entry.
func (d *doc) resolveRoot(xr *xrefMap) Value {
	return d.resolve(xr, xr.trailer[name("Root")])
}
