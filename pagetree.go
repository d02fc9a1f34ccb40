// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdf

import "errors"

// maxPageTreeDepth bounds recursion into /Kids. PDF page trees are a few
// levels deep at most; a longer chain is either a cycle or an attempt to
// force unbounded recursion.
const maxPageTreeDepth = 64

// countPageTree resolves the document's Catalog via xr's trailer, then
// recursively walks /Pages. exact reports whether every leaf was reached by
// real traversal: false means the result (or part of it) came from trusting
// a node's own /Count rather than walking its /Kids, which the orchestrator
// treats as merely a strategy-3/4 candidate rather than a strategy-1/2 one.
func countPageTree(d *doc, xr *xrefMap) (n int, exact bool, err error) {
	root := d.resolveRoot(xr)
	if root.IsNull() {
		return 0, false, malformed("countPageTree", errors.New("trailer /Root did not resolve"))
	}
	pages := root.Key("Pages")
	if pages.IsNull() {
		return 0, false, malformed("countPageTree", errors.New("Catalog has no /Pages"))
	}
	seen := make(map[objptr]bool)
	count, exact, ok := countNode(d, xr, pages, 0, seen)
	if !ok {
		return 0, false, malformed("countPageTree", errors.New("page tree did not resolve to a count"))
	}
	return count, exact, nil
}

// countNode returns the number of /Page leaves under node, whether that
// number came from a fully-resolved /Kids walk (exact), and whether any
// count could be determined at all (ok).
func countNode(d *doc, xr *xrefMap, node Value, depth int, seen map[objptr]bool) (count int, exact bool, ok bool) {
	if depth > maxPageTreeDepth {
		return 0, false, false
	}
	if node.ptr != (objptr{}) {
		if seen[node.ptr] {
			return 0, false, false
		}
		seen[node.ptr] = true
	}

	if node.Key("Type").Name() == "Page" {
		return 1, true, true
	}

	if kids := node.Key("Kids"); kids.Kind() == Array {
		sum := 0
		allExact := true
		anyKid := false
		allResolved := true
		for i := 0; i < kids.Len(); i++ {
			kid := kids.Index(i)
			if kid.IsNull() {
				// A dangling reference: this kid can't be counted.
				allResolved = false
				continue
			}
			anyKid = true
			n, ex, resolved := countNode(d, xr, kid, depth+1, seen)
			if !resolved {
				allResolved = false
				continue
			}
			sum += n
			if !ex {
				allExact = false
			}
		}
		if anyKid && allResolved {
			return sum, allExact, true
		}
		// Some kids wouldn't resolve at all: the partial sum would
		// undercount, so fall through to trusting this node's own
		// /Count instead of reporting it as a real answer.
	}

	if c := node.Key("Count"); c.Kind() == Integer && c.Int64() >= 0 {
		return int(c.Int64()), false, true
	}

	// A dictionary with no /Type, no /Kids, and no /Count is assumed to be
	// a single page; this matches how permissive viewers treat stray page
	// dictionaries. It's an assumption, not a traversal, so it's not exact.
	if node.Key("Type").IsNull() && node.Key("Kids").IsNull() {
		return 1, false, true
	}
	return 0, false, false
}
