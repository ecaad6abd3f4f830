// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package joinflow

import (
	"sync"
	"time"

	"github.com/bureau-foundation/lobby/lib/clock"
)

// Throttle is a sliding-window limit on join attempts per room. It
// keeps a mistyped password from being retried against the backend as
// fast as the user can press enter.
type Throttle struct {
	mu      sync.Mutex
	clock   clock.Clock
	limit   int
	window  time.Duration
	history map[string][]time.Time
}

// NewThrottle allows limit attempts per room in any window. A limit
// below 1 disables throttling.
func NewThrottle(limit int, window time.Duration, source clock.Clock) *Throttle {
	return &Throttle{
		clock:   source,
		limit:   limit,
		window:  window,
		history: make(map[string][]time.Time),
	}
}

// Allow records an attempt on roomID and reports whether it is within
// the limit. Refused attempts are not recorded.
func (throttle *Throttle) Allow(roomID string) bool {
	if throttle.limit < 1 {
		return true
	}
	throttle.mu.Lock()
	defer throttle.mu.Unlock()

	now := throttle.clock.Now()
	windowStart := now.Add(-throttle.window)

	recent := throttle.history[roomID][:0]
	for _, attempt := range throttle.history[roomID] {
		if attempt.After(windowStart) {
			recent = append(recent, attempt)
		}
	}
	if len(recent) >= throttle.limit {
		throttle.history[roomID] = recent
		return false
	}
	throttle.history[roomID] = append(recent, now)
	return true
}
