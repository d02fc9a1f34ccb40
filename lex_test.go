// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdf

import (
	"strings"
	"testing"
)

func TestReadTokenBasics(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want token
	}{
		{"integer", "123", int64(123)},
		{"negative integer", "-7", int64(-7)},
		{"real", "1.5", keyword("1.5")},
		{"name", "/Type", name("Type")},
		{"keyword", "obj", keyword("obj")},
		{"true", "true", true},
		{"false", "false", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := newBuffer(strings.NewReader(tc.in), 0)
			defer PutPDFBuffer(b)
			got := b.readToken()
			if got != tc.want {
				t.Errorf("readToken(%q) = %#v, want %#v", tc.in, got, tc.want)
			}
		})
	}
}

func TestReadObjectIndirectRef(t *testing.T) {
	b := newBuffer(strings.NewReader("5 0 R"), 0)
	defer PutPDFBuffer(b)
	got := b.readObject()
	want := objptr{5, 0}
	if got != want {
		t.Errorf("readObject() = %#v, want %#v", got, want)
	}
}

func TestReadObjectDefinitionTolerantOfMissingEndobj(t *testing.T) {
	b := newBuffer(strings.NewReader("7 0 obj << /Type /Page >>"), 0)
	defer PutPDFBuffer(b)
	got := b.readObject()
	def, ok := got.(objdef)
	if !ok {
		t.Fatalf("readObject() = %#v, want objdef", got)
	}
	if def.ptr != (objptr{7, 0}) {
		t.Errorf("def.ptr = %#v, want {7 0}", def.ptr)
	}
	d, ok := def.obj.(dict)
	if !ok || d[name("Type")] != name("Page") {
		t.Errorf("def.obj = %#v, want dict with /Type /Page", def.obj)
	}
}

func TestReadDictNestedArray(t *testing.T) {
	b := newBuffer(strings.NewReader("<< /Kids [1 0 R 2 0 R] /Count 2 >>"), 0)
	defer PutPDFBuffer(b)
	obj := b.readObject()
	d, ok := obj.(dict)
	if !ok {
		t.Fatalf("readObject() = %#v, want dict", obj)
	}
	kids, ok := d[name("Kids")].(array)
	if !ok || len(kids) != 2 {
		t.Fatalf("Kids = %#v, want a 2-element array", d[name("Kids")])
	}
	if kids[0] != (objptr{1, 0}) || kids[1] != (objptr{2, 0}) {
		t.Errorf("Kids = %#v, want [{1 0} {2 0}]", kids)
	}
	if d[name("Count")] != int64(2) {
		t.Errorf("Count = %#v, want 2", d[name("Count")])
	}
}
