// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"fmt"

	"github.com/bureau-foundation/lobby/lib/room"
)

// VisiblePage is one page of the filtered room list with the numbers
// a pager needs.
type VisiblePage struct {
	// Rooms holds at most ItemsPerPage rooms, in filtered order.
	Rooms []room.Room

	CurrentPage int
	TotalPages  int

	// TotalCount is the size of the filtered list. TotalRooms is the
	// size of the master list, so a renderer can tell "no rooms yet"
	// from "nothing matches".
	TotalCount int
	TotalRooms int

	// RangeStart and RangeEnd are the 1-based positions of the first
	// and last room shown, both zero when the page is empty.
	RangeStart int
	RangeEnd   int

	ItemsPerPage int
	Criteria     room.Criteria
}

// HasPrev reports whether a previous page exists.
func (page VisiblePage) HasPrev() bool { return page.CurrentPage > 1 }

// HasNext reports whether a following page exists.
func (page VisiblePage) HasNext() bool { return page.CurrentPage < page.TotalPages }

// Summary is the pager line: "Showing 11-12 of 12 rooms · page 3 of 3".
func (page VisiblePage) Summary() string {
	noun := "rooms"
	if page.TotalCount == 1 {
		noun = "room"
	}
	if page.TotalCount == 0 {
		return fmt.Sprintf("No %s · page %d of %d", noun, page.CurrentPage, page.TotalPages)
	}
	return fmt.Sprintf("Showing %d-%d of %d %s · page %d of %d",
		page.RangeStart, page.RangeEnd, page.TotalCount, noun, page.CurrentPage, page.TotalPages)
}
