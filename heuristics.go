// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdf

import "bytes"

// heuristics.go holds the last-resort scanners the orchestrator falls back
// on once xref-driven traversal has failed outright. They treat the file as
// a flat byte soup and look for textual fingerprints of the page count,
// tolerating truncation, missing xref tables, and outright corruption that
// would make lex.go give up. None of this is exact; it's a best guess.

// maxHeuristicStreamScan caps how much inflated stream data a single
// recursive heuristic scan will examine, so a hostile or oversized
// compressed object can't blow up memory use during a fallback pass.
const maxHeuristicStreamScan = 10 << 20 // 10MiB

// scanMaxCount scans raw for every "/Count N" occurrence and returns the
// largest N seen. The root /Pages node's /Count is the total page count and
// is almost always the largest /Count in the file, since every subtree's
// count is bounded by its parent's.
func scanMaxCount(raw []byte) (int64, bool) {
	var best int64
	found := false
	for _, n := range findCounts(raw) {
		if !found || n > best {
			best = n
			found = true
		}
	}
	return best, found
}

// scanNearestCount returns the /Count occurrence whose byte offset is
// closest to anchor, useful once a Pages object's rough location is known
// but its dictionary couldn't be parsed cleanly.
func scanNearestCount(raw []byte, anchor int64) (int64, bool) {
	var best countHit
	found := false
	for _, h := range findCountsWithOffset(raw) {
		d := h.offset - anchor
		if d < 0 {
			d = -d
		}
		bd := best.offset - anchor
		if bd < 0 {
			bd = -bd
		}
		if !found || d < bd {
			best = h
			found = true
		}
	}
	return best.value, found
}

type countHit struct {
	value  int64
	offset int64
}

func findCounts(raw []byte) []int64 {
	hits := findCountsWithOffset(raw)
	out := make([]int64, len(hits))
	for i, h := range hits {
		out[i] = h.value
	}
	return out
}

func findCountsWithOffset(raw []byte) []countHit {
	const key = "/Count"
	var hits []countHit
	for i := 0; ; {
		j := bytes.Index(raw[i:], []byte(key))
		if j < 0 {
			break
		}
		pos := i + j + len(key)
		i = pos
		p := pos
		for p < len(raw) && isSpace(raw[p]) {
			p++
		}
		neg := false
		if p < len(raw) && raw[p] == '-' {
			neg = true
			p++
		}
		start := p
		for p < len(raw) && raw[p] >= '0' && raw[p] <= '9' {
			p++
		}
		if p == start {
			continue
		}
		var v int64
		for _, c := range raw[start:p] {
			v = v*10 + int64(c-'0')
		}
		if neg {
			v = -v
		}
		if v >= 0 {
			hits = append(hits, countHit{value: v, offset: int64(pos)})
		}
	}
	return hits
}

// countPageObjects counts word-bounded occurrences of "/Type/Page" or
// "/Type /Page" in raw, excluding "/Type /Pages" (a longer name that would
// otherwise match as a prefix). This is the least reliable count — a page
// can be referenced more than once, or not mentioned by /Type at all — so
// the orchestrator uses it only as the last heuristic fallback, and as a
// cross-check that can raise a /Count taken on trust from the page tree.
func countPageObjects(raw []byte) int {
	const key = "/Page"
	count := 0
	for i := 0; ; {
		j := bytes.Index(raw[i:], []byte(key))
		if j < 0 {
			break
		}
		pos := i + j
		i = pos + len(key)
		end := pos + len(key)
		if end < len(raw) && (raw[end] == 's' || isNameChar(raw[end])) {
			// "/Pages" or a longer name like "/PageLayout".
			continue
		}
		start := pos
		for start > 0 && isSpace(raw[start-1]) {
			start--
		}
		if start < len("/Type") || string(raw[start-len("/Type"):start]) != "/Type" {
			continue
		}
		count++
	}
	return count
}

func isNameChar(b byte) bool {
	return !isSpace(b) && !isDelim(b)
}

// scanInflatedStreams decodes every FlateDecode stream it can find in raw
// (by locating "stream"/"endstream" pairs directly, without a working
// xref) and runs scan on each decoded payload, returning the best hit
// across all of them. It is the most expensive fallback, used only once the
// structural strategies and the raw /Count scans have failed.
func scanInflatedStreams(raw []byte, scan func([]byte) (int64, bool)) (int64, bool) {
	var best int64
	found := false
	const streamKw = "stream"
	const endKw = "endstream"
	for i := 0; ; {
		j := bytes.Index(raw[i:], []byte(streamKw))
		if j < 0 {
			break
		}
		pos := i + j
		dataStart := pos + len(streamKw)
		i = dataStart
		if dataStart < len(raw) && raw[dataStart] == '\r' {
			dataStart++
		}
		if dataStart < len(raw) && raw[dataStart] == '\n' {
			dataStart++
		}
		e := bytes.Index(raw[dataStart:], []byte(endKw))
		if e < 0 {
			continue
		}
		encoded := raw[dataStart : dataStart+e]
		if len(encoded) == 0 || len(encoded) > maxHeuristicStreamScan {
			continue
		}
		decoded, err := inflate(encoded, maxHeuristicStreamScan)
		if err != nil || len(decoded) == 0 {
			continue
		}
		if v, ok := scan(decoded); ok {
			if !found || v > best {
				best = v
				found = true
			}
		}
	}
	return best, found
}
