// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdf

import "testing"

func TestScanMaxCount(t *testing.T) {
	raw := []byte("garbage /Count 3 more garbage /Count 42 trailing /Count 10")
	n, ok := scanMaxCount(raw)
	if !ok || n != 42 {
		t.Errorf("scanMaxCount = (%d, %v), want (42, true)", n, ok)
	}
}

func TestScanMaxCountNoMatch(t *testing.T) {
	if _, ok := scanMaxCount([]byte("nothing here")); ok {
		t.Error("expected no match")
	}
}

func TestScanNearestCount(t *testing.T) {
	raw := []byte("/Catalog xxxxxxxxxx /Count 7 yyyyyyyyyyyyyyyyyyyyyyyyyyyyyyyy /Count 200")
	anchor := catalogAnchor(raw)
	n, ok := scanNearestCount(raw, anchor)
	if !ok || n != 7 {
		t.Errorf("scanNearestCount = (%d, %v), want (7, true)", n, ok)
	}
}

func TestCountPageObjectsExcludesPages(t *testing.T) {
	raw := []byte("/Type/Pages /Type/Page /Type /Page /Type/PageLayout /Type /Page")
	got := countPageObjects(raw)
	if got != 3 {
		t.Errorf("countPageObjects = %d, want 3", got)
	}
}

func TestScanInflatedStreams(t *testing.T) {
	inner := deflate([]byte("some content /Count 9 more content"))
	raw := append([]byte("preamble\nstream\n"), inner...)
	raw = append(raw, []byte("\nendstream\n")...)
	n, ok := scanInflatedStreams(raw, scanMaxCount)
	if !ok || n != 9 {
		t.Errorf("scanInflatedStreams = (%d, %v), want (9, true)", n, ok)
	}
}
