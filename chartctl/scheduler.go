// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) The goldchart authors

package chartctl

import (
	"sync/atomic"
)

// RedrawScheduler coalesces redraw requests into at most one window
// invalidate per frame. All mutation paths funnel through Request; a
// second request before the pending frame fires is a no-op.
type RedrawScheduler struct {
	pending    atomic.Bool
	invalidate func()
}

func NewRedrawScheduler(invalidate func()) *RedrawScheduler {
	return &RedrawScheduler{invalidate: invalidate}
}

// Request asks for one paint. Returns true if this call scheduled the
// frame, false if one was already pending.
func (s *RedrawScheduler) Request() bool {
	if !s.pending.CompareAndSwap(false, true) {
		return false
	}
	if s.invalidate != nil {
		s.invalidate()
	}
	return true
}

// FrameDone releases the token at the end of a paint, allowing the
// next request to schedule again.
func (s *RedrawScheduler) FrameDone() {
	s.pending.Store(false)
}

// Pending reports whether a frame is scheduled but not yet painted.
func (s *RedrawScheduler) Pending() bool {
	return s.pending.Load()
}
