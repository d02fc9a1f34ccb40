// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/Geek0x0/pagecount/internal/mmapfile"
)

// maxReasonablePageCount guards every strategy's output: a PDF claiming
// more pages than this is far more likely to be a misparsed byte offset
// than a real document, so the orchestrator keeps trying weaker strategies
// instead of trusting the number.
const maxReasonablePageCount = 5_000_000

func sanePageCount(n int64) bool {
	return n > 0 && n <= maxReasonablePageCount
}

// Options configures CountPagesWithOptions. The zero Options is valid and
// equivalent to DefaultOptions().
type Options struct {
	// Context, if non-nil, is checked between strategies. Once it is done,
	// the remaining strategies are skipped and CountPagesWithOptions
	// returns ErrPageCountNotFound, not ctx.Err(); a strategy that is
	// already running is not interrupted.
	Context context.Context

	// Debug turns on the package's DebugOn diagnostic logging for the
	// duration of this call only, restoring the previous value afterward.
	Debug bool
}

// DefaultOptions returns the Options used by CountPages and the other
// convenience entry points.
func DefaultOptions() Options {
	return Options{Context: context.Background()}
}

// CountPages returns the number of pages in the PDF file at path.
func CountPages(path string) (int, error) {
	mf, err := mmapfile.Open(path)
	if err != nil {
		return 0, &IOFailureError{Path: path, Err: err}
	}
	defer mf.Close()
	n, err := CountPagesBytes(mf.Data)
	if err != nil {
		return 0, err
	}
	return n, nil
}

// CountPagesBytes returns the number of pages in an in-memory PDF buffer.
func CountPagesBytes(data []byte) (int, error) {
	return CountPagesWithOptions(bytes.NewReader(data), int64(len(data)), DefaultOptions())
}

// CountPagesReader returns the number of pages in a PDF accessible through
// r, which must support random access over exactly size bytes.
func CountPagesReader(r io.ReaderAt, size int64) (int, error) {
	return CountPagesWithOptions(r, size, DefaultOptions())
}

// CountPagesContext is CountPagesReader with cancellation: ctx is checked
// between strategies, and once it is done the remaining ones are skipped.
func CountPagesContext(ctx context.Context, r io.ReaderAt, size int64) (int, error) {
	opt := DefaultOptions()
	opt.Context = ctx
	return CountPagesWithOptions(r, size, opt)
}

// Result is the outcome delivered on the channel returned by
// CountPagesAsync.
type Result struct {
	N   int
	Err error
}

// CountPagesAsync runs CountPages on a background goroutine, matching the
// synchronous API's behavior for callers that want to overlap it with other
// work rather than block. The channel is always sent to exactly once and is
// closed immediately afterward.
func CountPagesAsync(path string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		n, err := CountPages(path)
		ch <- Result{N: n, Err: err}
		close(ch)
	}()
	return ch
}

// CountPagesAsyncContext is the cancelable counterpart of CountPagesAsync,
// for callers already holding a reader rather than a path.
func CountPagesAsyncContext(ctx context.Context, r io.ReaderAt, size int64) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		n, err := CountPagesContext(ctx, r, size)
		ch <- Result{N: n, Err: err}
		close(ch)
	}()
	return ch
}

// CountPagesWithOptions is the configurable entry point every other
// CountPages* function funnels through. It runs a waterfall of strategies,
// most-accurate first, and returns the first one that produces a sane
// positive page count. If every strategy fails, it returns
// ErrPageCountNotFound.
func CountPagesWithOptions(r io.ReaderAt, size int64, opt Options) (int, error) {
	if opt.Debug && !DebugOn {
		DebugOn = true
		defer func() { DebugOn = false }()
	}
	if size <= 0 {
		return 0, ErrPageCountNotFound
	}

	d := &doc{r: r, end: size}
	cc := newContextChecker(opt.Context)

	raw, _ := io.ReadAll(d.sectionReader(0))
	if len(raw) == 0 {
		return 0, ErrPageCountNotFound
	}

	if n, ok := tryXrefStrategies(d, raw, cc); ok {
		return n, nil
	}
	if cc.canceled() {
		return 0, ErrPageCountNotFound
	}

	if n, ok := tryHeuristics(raw, cc); ok {
		return n, nil
	}
	return 0, ErrPageCountNotFound
}

// tryXrefStrategies runs the xref-backed strategies in accuracy order: a
// full recursive page-tree traversal (exact, trusted outright), then —
// if that can't fully resolve /Kids — trusting a /Pages node's own
// /Count. A trusted /Count is compared against the raw page-object
// heuristic and the larger of the two wins, guarding against a truncated
// outline whose /Count undersells the real page total.
func tryXrefStrategies(d *doc, raw []byte, cc *contextChecker) (int, bool) {
	xr, err := buildXref(d)
	if err != nil {
		debugf("orchestrator: buildXref: %v\n", err)
		return 0, false
	}

	if n, exact, err := countPageTree(d, xr); err == nil && sanePageCount(int64(n)) {
		if exact {
			return n, true
		}
		return trustedCount(n, raw), true
	} else if err != nil {
		debugf("orchestrator: countPageTree: %v\n", err)
	}

	root := d.resolveRoot(xr)
	if c := root.Key("Pages").Key("Count"); c.Kind() == Integer && sanePageCount(c.Int64()) {
		return trustedCount(int(c.Int64()), raw), true
	}

	return 0, false
}

// trustedCount implements spec strategies 3/4: a /Count taken on trust
// rather than reached by a fully-resolved /Kids walk is still compared
// against the page-object occurrence count, and the larger sane value
// wins.
func trustedCount(n int, raw []byte) int {
	if h := countPageObjects(raw); h > n && sanePageCount(int64(h)) {
		return h
	}
	return n
}

// tryHeuristics runs the flat-byte-scan fallbacks in order of decreasing
// trustworthiness: a /Count nearest the catalog, the largest /Count seen
// anywhere, the same two scans replayed against every inflated stream body
// the file contains, and finally a raw count of /Type /Page occurrences.
func tryHeuristics(raw []byte, cc *contextChecker) (int, bool) {
	anchor := catalogAnchor(raw)

	if n, ok := scanNearestCount(raw, anchor); ok && sanePageCount(n) {
		return int(n), true
	}
	if cc.canceled() {
		return 0, false
	}
	if n, ok := scanMaxCount(raw); ok && sanePageCount(n) {
		return int(n), true
	}
	if cc.canceled() {
		return 0, false
	}
	if n, ok := scanInflatedStreams(raw, func(b []byte) (int64, bool) {
		return scanNearestCount(b, catalogAnchor(b))
	}); ok && sanePageCount(n) {
		return int(n), true
	}
	if cc.canceled() {
		return 0, false
	}
	if n, ok := scanInflatedStreams(raw, scanMaxCount); ok && sanePageCount(n) {
		return int(n), true
	}
	if cc.canceled() {
		return 0, false
	}
	if n := countPageObjects(raw); n > 0 && sanePageCount(int64(n)) {
		return n, true
	}
	return 0, false
}

// catalogAnchor returns the byte offset of the first /Type /Catalog
// fingerprint in raw, or 0 if none is found, giving scanNearestCount
// something to measure distance from even in a badly corrupted file.
func catalogAnchor(raw []byte) int64 {
	if i := bytes.Index(raw, []byte("/Catalog")); i >= 0 {
		return int64(i)
	}
	return 0
}
