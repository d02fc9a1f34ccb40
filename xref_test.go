// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdf

import (
	"bytes"
	"testing"
)

func openDoc(data []byte) *doc {
	return &doc{r: bytes.NewReader(data), end: int64(len(data))}
}

func TestBuildXrefClassicTable(t *testing.T) {
	data := simplePageTreePDF(3)
	d := openDoc(data)
	xr, err := buildXref(d)
	if err != nil {
		t.Fatalf("buildXref: %v", err)
	}
	if len(xr.direct) == 0 {
		t.Fatal("expected at least one direct entry")
	}
	if xr.trailer[name("Root")] != (objptr{1, 0}) {
		t.Errorf("trailer /Root = %#v, want {1 0}", xr.trailer[name("Root")])
	}
}

func TestBuildXrefStream(t *testing.T) {
	data := xrefStreamPDF(2)
	d := openDoc(data)
	xr, err := buildXref(d)
	if err != nil {
		t.Fatalf("buildXref: %v", err)
	}
	for _, id := range []uint32{1, 2, 3, 4} {
		if _, ok := xr.direct[id]; !ok {
			t.Errorf("object %d missing from xref stream table", id)
		}
	}
}

func TestBuildXrefFollowsPrevChain(t *testing.T) {
	data := incrementalUpdatePDF()
	d := openDoc(data)
	xr, err := buildXref(d)
	if err != nil {
		t.Fatalf("buildXref: %v", err)
	}
	// Object 1 and 3 only exist in the base section; object 4 only exists
	// in the update, and the update's object 2 must win over the base's.
	for _, id := range []uint32{1, 2, 3, 4} {
		if _, ok := xr.direct[id]; !ok {
			t.Errorf("object %d missing after following /Prev", id)
		}
	}
	n, _, err := countPageTree(d, xr)
	if err != nil {
		t.Fatalf("countPageTree: %v", err)
	}
	if n != 2 {
		t.Errorf("countPageTree = %d, want 2 (the updated tree, not the base's 1)", n)
	}
}

func TestBuildXrefToleratesBadStartxrefOffset(t *testing.T) {
	data := simplePageTreePDF(3)
	i := bytes.LastIndex(data, []byte("startxref\n"))
	if i < 0 {
		t.Fatal("fixture has no startxref")
	}
	// Corrupt the offset startxref points to (a common real-world defect:
	// an incremental-update tool that doesn't rewrite it correctly).
	rest := data[i+len("startxref\n"):]
	end := bytes.IndexByte(rest, '\n')
	corrupted := append([]byte{}, data[:i+len("startxref\n")]...)
	corrupted = append(corrupted, []byte("999999")...)
	corrupted = append(corrupted, rest[end:]...)

	d := openDoc(corrupted)
	xr, err := buildXref(d)
	if err != nil {
		t.Fatalf("buildXref with corrupted startxref offset: %v", err)
	}
	if xr.trailer[name("Root")] != (objptr{1, 0}) {
		t.Errorf("trailer /Root = %#v, want {1 0}", xr.trailer[name("Root")])
	}
	n, _, err := countPageTree(d, xr)
	if err != nil || n != 3 {
		t.Errorf("countPageTree = (%d, %v), want (3, nil) after recovering via the tolerant scan", n, err)
	}
}

func TestBuildXrefRejectsMissingStartxref(t *testing.T) {
	_, err := buildXref(openDoc([]byte("%PDF-1.4\nnot a real pdf")))
	if err == nil {
		t.Fatal("expected an error for a file with no startxref")
	}
}
