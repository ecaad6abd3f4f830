// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package roomview

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/lobby/lib/room"
)

// RelativeTime describes when a room was created as seen from now:
// "now" for anything under a minute old (or not recorded), "N minutes
// ago" style up to a week, and the date after that. Timestamps that
// could not be parsed are shown as the backend sent them.
func RelativeTime(created room.Timestamp, now time.Time) string {
	if created.IsZero() {
		return "now"
	}
	if !created.Valid() {
		return created.Raw
	}
	age := now.Sub(created.Time)
	switch {
	case age < time.Minute:
		// Includes small clock skew putting creation in the future.
		return "now"
	case age < 7*24*time.Hour:
		return humanize.RelTime(created.Time, now, "ago", "from now")
	default:
		return created.Time.Format("2006-01-02")
	}
}
