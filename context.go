// Copyright 2024 The Go Authors.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pdf

import (
	"context"
	"sync/atomic"
)

// contextChecker amortizes context cancellation checks across a hot loop.
// Calling ctx.Done() on every iteration of a byte scanner or xref walk is
// measurably slower than the work it's guarding; checking every N calls
// instead still cancels promptly in practice while keeping the fast path a
// plain counter increment.
type contextChecker struct {
	ctx       context.Context
	every     uint32
	n         uint32
	cancelled atomic.Bool
}

func newContextChecker(ctx context.Context) *contextChecker {
	if ctx == nil {
		ctx = context.Background()
	}
	return &contextChecker{ctx: ctx, every: 1}
}

// canceled reports whether ctx has been canceled, re-checking only every
// `every` calls once it has observed a non-canceled context.
func (c *contextChecker) canceled() bool {
	if c.cancelled.Load() {
		return true
	}
	c.n++
	if c.n < c.every {
		return false
	}
	c.n = 0
	select {
	case <-c.ctx.Done():
		c.cancelled.Store(true)
		return true
	default:
		return false
	}
}
