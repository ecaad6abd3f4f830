// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"time"
)

// HeatDecayDuration is how long a newly listed room glows. Heat starts
// at 1.0 and decays linearly to 0.0 over this duration.
const HeatDecayDuration = 5 * time.Second

// HeatTracker maps room ids to ignition timestamps so rooms that
// appear between two refreshes can be highlighted briefly.
type HeatTracker struct {
	entries map[string]time.Time
	known   map[string]struct{}
	primed  bool
}

// NewHeatTracker creates an empty heat tracker.
func NewHeatTracker() *HeatTracker {
	return &HeatTracker{
		entries: make(map[string]time.Time),
		known:   make(map[string]struct{}),
	}
}

// Observe records the ids of a fresh listing and ignites those not
// present in the previous one. The first listing ignites nothing: on
// startup every room is new, and none of them is news.
func (tracker *HeatTracker) Observe(ids []string, now time.Time) {
	current := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		current[id] = struct{}{}
		if _, seen := tracker.known[id]; !seen && tracker.primed {
			tracker.Ignite(id, now)
		}
	}
	tracker.known = current
	tracker.primed = true
}

// Ignite starts (or restarts) the glow for id.
func (tracker *HeatTracker) Ignite(id string, now time.Time) {
	tracker.entries[id] = now
}

// Heat returns the current intensity for id: 1.0 at ignition, falling
// linearly to 0.0 over [HeatDecayDuration].
func (tracker *HeatTracker) Heat(id string, now time.Time) float64 {
	ignition, exists := tracker.entries[id]
	if !exists {
		return 0.0
	}
	elapsed := now.Sub(ignition)
	if elapsed >= HeatDecayDuration || elapsed < 0 {
		return 0.0
	}
	return 1.0 - float64(elapsed)/float64(HeatDecayDuration)
}

// HasHot reports whether any room still glows, dropping entries that
// have fully decayed.
func (tracker *HeatTracker) HasHot(now time.Time) bool {
	hot := false
	for id, ignition := range tracker.entries {
		if now.Sub(ignition) < HeatDecayDuration {
			hot = true
			continue
		}
		delete(tracker.entries, id)
	}
	return hot
}
