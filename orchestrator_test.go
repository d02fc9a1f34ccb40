// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdf

import (
	"bytes"
	"testing"
)

func TestCountPagesBytesClassic(t *testing.T) {
	n, err := CountPagesBytes(simplePageTreePDF(5))
	if err != nil {
		t.Fatalf("CountPagesBytes: %v", err)
	}
	if n != 5 {
		t.Errorf("n = %d, want 5", n)
	}
}

func TestCountPagesBytesXrefStream(t *testing.T) {
	n, err := CountPagesBytes(xrefStreamPDF(3))
	if err != nil {
		t.Fatalf("CountPagesBytes: %v", err)
	}
	if n != 3 {
		t.Errorf("n = %d, want 3", n)
	}
}

func TestCountPagesBytesObjStm(t *testing.T) {
	n, err := CountPagesBytes(objStmPagesPDF(6))
	if err != nil {
		t.Fatalf("CountPagesBytes: %v", err)
	}
	if n != 6 {
		t.Errorf("n = %d, want 6", n)
	}
}

func TestCountPagesBytesIncrementalUpdate(t *testing.T) {
	n, err := CountPagesBytes(incrementalUpdatePDF())
	if err != nil {
		t.Fatalf("CountPagesBytes: %v", err)
	}
	if n != 2 {
		t.Errorf("n = %d, want 2", n)
	}
}

func TestCountPagesPrefersLargerHeuristicOverTruncatedCount(t *testing.T) {
	// Root /Pages claims /Count 1 with a dangling /Kids entry (a
	// truncated outline), but 5 raw /Type /Page objects exist in the
	// file; the orchestrator must trust the larger heuristic count.
	n, err := CountPagesBytes(truncatedOutlinePDF(1, 5))
	if err != nil {
		t.Fatalf("CountPagesBytes: %v", err)
	}
	if n != 5 {
		t.Errorf("n = %d, want 5 (the heuristic count, not the truncated /Count=1)", n)
	}
}

func TestCountPagesFallsBackToHeuristics(t *testing.T) {
	// No xref table at all, but a recognizable /Count fingerprint —
	// exercises the flat byte-scan waterfall once structural parsing
	// has nothing to work with.
	broken := []byte("%PDF-1.4\nthis file has no valid xref\n/Type /Catalog /Count 12\n%%EOF")
	n, err := CountPagesBytes(broken)
	if err != nil {
		t.Fatalf("CountPagesBytes: %v", err)
	}
	if n != 12 {
		t.Errorf("n = %d, want 12", n)
	}
}

func TestCountPagesEmptyReturnsNotFound(t *testing.T) {
	_, err := CountPagesBytes(nil)
	if err != ErrPageCountNotFound {
		t.Errorf("err = %v, want ErrPageCountNotFound", err)
	}
}

func TestCountPagesGarbageReturnsNotFound(t *testing.T) {
	_, err := CountPagesBytes([]byte("not a pdf at all, just text"))
	if err != ErrPageCountNotFound {
		t.Errorf("err = %v, want ErrPageCountNotFound", err)
	}
}

func TestCountPagesReaderAndAsync(t *testing.T) {
	data := simplePageTreePDF(4)
	n, err := CountPagesReader(bytes.NewReader(data), int64(len(data)))
	if err != nil || n != 4 {
		t.Fatalf("CountPagesReader = (%d, %v), want (4, nil)", n, err)
	}

	res := <-CountPagesAsyncContext(nil, bytes.NewReader(data), int64(len(data)))
	if res.Err != nil || res.N != 4 {
		t.Fatalf("CountPagesAsyncContext result = %+v, want N=4 Err=nil", res)
	}
}

func TestIOFailureErrorForMissingFile(t *testing.T) {
	_, err := CountPages("/nonexistent/does-not-exist.pdf")
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if _, ok := err.(*IOFailureError); !ok {
		t.Errorf("err = %#v (%T), want *IOFailureError", err, err)
	}
}
