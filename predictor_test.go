// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdf

import (
	"bytes"
	"testing"
)

func TestReversePNGPredictorNoneFilter(t *testing.T) {
	// Two rows of 4 bytes each, filter type 0 (None) on both.
	data := []byte{0, 1, 2, 3, 4, 0, 5, 6, 7, 8}
	got, err := reversePNGPredictor(data, 4, 1, 8)
	if err != nil {
		t.Fatalf("reversePNGPredictor: %v", err)
	}
	want := []byte{1, 2, 3, 4, 5, 6, 7, 8}
	if !bytes.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReversePNGPredictorUpFilter(t *testing.T) {
	// Row 0: None, [10 20 30]. Row 1: Up, deltas [1 1 1] -> [11 21 31].
	data := []byte{0, 10, 20, 30, 2, 1, 1, 1}
	got, err := reversePNGPredictor(data, 3, 1, 8)
	if err != nil {
		t.Fatalf("reversePNGPredictor: %v", err)
	}
	want := []byte{10, 20, 30, 11, 21, 31}
	if !bytes.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReversePNGPredictorSubFilter(t *testing.T) {
	// Single row, filter Sub: first byte as-is, rest cumulative.
	data := []byte{1, 5, 2, 3}
	got, err := reversePNGPredictor(data, 3, 1, 8)
	if err != nil {
		t.Fatalf("reversePNGPredictor: %v", err)
	}
	want := []byte{5, 7, 10}
	if !bytes.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestReversePNGPredictorRejectsBadColumns(t *testing.T) {
	if _, err := reversePNGPredictor([]byte{1, 2, 3}, 0, 1, 8); err == nil {
		t.Error("expected an error for zero columns")
	}
}
