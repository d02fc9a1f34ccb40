// Copyright 2014 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdf

import (
	"bytes"
	"fmt"
	"sort"
)

// A ValueKind specifies the kind of data underlying a Value.
type ValueKind int

// The PDF value kinds relevant to page-count resolution. A full PDF
// implementation also distinguishes Bool, Real, and String; this engine
// never needs to branch on them, so they all report as Null.
const (
	Null ValueKind = iota
	Integer
	Name
	Dict
	Array
	Stream
)

// A Value is a single resolved PDF value: an integer, name, dictionary,
// array, or stream. The zero Value is a PDF null.
type Value struct {
	d    *doc
	xr   *xrefMap
	ptr  objptr
	data object
}

// IsNull reports whether v is a PDF null.
func (v Value) IsNull() bool {
	return v.data == nil
}

// Kind reports the kind of value underlying v.
func (v Value) Kind() ValueKind {
	switch v.data.(type) {
	case int64:
		return Integer
	case name:
		return Name
	case dict:
		return Dict
	case array:
		return Array
	case stream:
		return Stream
	default:
		return Null
	}
}

// Int64 returns v's integer value, or 0 if v.Kind() != Integer.
func (v Value) Int64() int64 {
	x, _ := v.data.(int64)
	return x
}

// Name returns v's name value without the leading slash, or "" if
// v.Kind() != Name.
func (v Value) Name() string {
	x, _ := v.data.(name)
	return string(x)
}

// dictOf returns the underlying dict, looking through a stream header
// when v is a stream.
func (v Value) dictOf() (dict, bool) {
	if x, ok := v.data.(dict); ok {
		return x, true
	}
	if strm, ok := v.data.(stream); ok {
		return strm.hdr, true
	}
	return nil, false
}

// Key returns the value of the given name key in the dictionary v (or, if v
// is a stream, its header dictionary), resolving indirect references.
// If v.Kind() is neither Dict nor Stream, or the key is absent, Key returns
// a null Value.
func (v Value) Key(key string) Value {
	x, ok := v.dictOf()
	if !ok {
		return Value{}
	}
	return v.d.resolve(v.xr, x[name(key)])
}

// Index returns the i'th element of the array v, resolving indirect
// references. If v.Kind() != Array or i is out of range, Index returns a
// null Value.
func (v Value) Index(i int) Value {
	x, ok := v.data.(array)
	if !ok || i < 0 || i >= len(x) {
		return Value{}
	}
	return v.d.resolve(v.xr, x[i])
}

// Len returns the length of the array v, or 0 if v.Kind() != Array.
func (v Value) Len() int {
	x, ok := v.data.(array)
	if !ok {
		return 0
	}
	return len(x)
}

// String renders v for debug logging only; it is not an accessor.
func (v Value) String() string {
	return objfmt(v.data)
}

func objfmt(x object) string {
	switch x := x.(type) {
	case name:
		return "/" + string(x)
	case dict:
		var keys []string
		for k := range x {
			keys = append(keys, string(k))
		}
		sort.Strings(keys)
		var buf bytes.Buffer
		buf.WriteString("<<")
		for i, k := range keys {
			if i > 0 {
				buf.WriteString(" ")
			}
			fmt.Fprintf(&buf, "/%s %s", k, objfmt(x[name(k)]))
		}
		buf.WriteString(">>")
		return buf.String()
	case array:
		var buf bytes.Buffer
		buf.WriteString("[")
		for i, elem := range x {
			if i > 0 {
				buf.WriteString(" ")
			}
			buf.WriteString(objfmt(elem))
		}
		buf.WriteString("]")
		return buf.String()
	case stream:
		return fmt.Sprintf("%s@%d", objfmt(x.hdr), x.offset)
	case objptr:
		return fmt.Sprintf("%d %d R", x.id, x.gen)
	default:
		return fmt.Sprint(x)
	}
}
