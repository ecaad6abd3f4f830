// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"github.com/bureau-foundation/lobby/lib/room"
)

// Store holds the last fetched room list together with the filter
// criteria and pagination, and derives the visible page from them.
// It performs no I/O and is not safe for concurrent use: it belongs
// to exactly one event loop.
//
// currentPage always lies in [1, TotalPages()]. Every mutation
// re-establishes that before returning.
type Store struct {
	rooms    []room.Room
	criteria room.Criteria
	filtered []room.Room

	currentPage  int
	itemsPerPage int
	loaded       bool
}

// NewStore returns an empty store showing itemsPerPage rooms per
// page.
func NewStore(itemsPerPage int) *Store {
	return &Store{
		currentPage:  1,
		itemsPerPage: max(1, itemsPerPage),
	}
}

// ReplaceAll installs rooms as the new master list. The list is a full
// snapshot: rooms absent from it are gone. The page resets to 1 on the
// first load or when nothing matches the criteria; otherwise the
// current page is kept and clamped to the new page count.
func (store *Store) ReplaceAll(rooms []room.Room) {
	firstLoad := !store.loaded
	store.loaded = true
	store.rooms = append([]room.Room(nil), rooms...)
	store.filtered = room.Filter(store.rooms, store.criteria)

	if firstLoad || len(store.filtered) == 0 {
		store.currentPage = 1
		return
	}
	store.clampPage()
}

// SetFilter replaces the criteria and restarts pagination at page 1.
func (store *Store) SetFilter(criteria room.Criteria) {
	store.criteria = criteria
	store.filtered = room.Filter(store.rooms, criteria)
	store.currentPage = 1
}

// SetSearchTerm changes only the search term. Like SetFilter it
// returns to page 1.
func (store *Store) SetSearchTerm(term string) {
	criteria := store.criteria
	criteria.SearchTerm = term
	store.SetFilter(criteria)
}

// SetStatus changes only the status filter and returns to page 1.
func (store *Store) SetStatus(status room.StatusFilter) {
	criteria := store.criteria
	criteria.Status = status
	store.SetFilter(criteria)
}

// SetItemsPerPage changes the page size and selects the page that
// contains the item that was first on screen before the change.
// Values below 1 are treated as 1.
func (store *Store) SetItemsPerPage(itemsPerPage int) {
	itemsPerPage = max(1, itemsPerPage)
	if itemsPerPage == store.itemsPerPage {
		return
	}
	firstIndex := (store.currentPage - 1) * store.itemsPerPage
	if firstIndex >= len(store.filtered) {
		firstIndex = 0
	}
	store.itemsPerPage = itemsPerPage
	store.currentPage = firstIndex/itemsPerPage + 1
	store.clampPage()
}

// GoToPage moves to page when it is in [1, TotalPages()] and reports
// whether it did. Anything else, such as a stale click on a page that
// no longer exists, is ignored.
func (store *Store) GoToPage(page int) bool {
	if page < 1 || page > store.TotalPages() {
		return false
	}
	store.currentPage = page
	return true
}

// NextPage advances one page if there is one.
func (store *Store) NextPage() bool { return store.GoToPage(store.currentPage + 1) }

// PrevPage goes back one page if there is one.
func (store *Store) PrevPage() bool { return store.GoToPage(store.currentPage - 1) }

// TotalPages is max(1, ceil(filtered/itemsPerPage)).
func (store *Store) TotalPages() int {
	return max(1, (len(store.filtered)+store.itemsPerPage-1)/store.itemsPerPage)
}

// CurrentPage returns the 1-based current page.
func (store *Store) CurrentPage() int { return store.currentPage }

// ItemsPerPage returns the page size.
func (store *Store) ItemsPerPage() int { return store.itemsPerPage }

// Criteria returns the active filter criteria.
func (store *Store) Criteria() room.Criteria { return store.criteria }

// Loaded reports whether ReplaceAll has been called at least once.
func (store *Store) Loaded() bool { return store.loaded }

// TotalRooms is the size of the master list, before filtering.
func (store *Store) TotalRooms() int { return len(store.rooms) }

// Lookup finds a room in the master list by id, regardless of the
// current filter.
func (store *Store) Lookup(id string) (room.Room, bool) {
	for _, entry := range store.rooms {
		if entry.ID == id {
			return entry, true
		}
	}
	return room.Room{}, false
}

// VisiblePage projects the current page. The returned slice is a copy.
func (store *Store) VisiblePage() VisiblePage {
	total := len(store.filtered)
	start := min((store.currentPage-1)*store.itemsPerPage, total)
	end := min(start+store.itemsPerPage, total)

	page := VisiblePage{
		Rooms:        append([]room.Room(nil), store.filtered[start:end]...),
		CurrentPage:  store.currentPage,
		TotalPages:   store.TotalPages(),
		TotalCount:   total,
		TotalRooms:   len(store.rooms),
		ItemsPerPage: store.itemsPerPage,
		Criteria:     store.criteria,
	}
	if end > start {
		page.RangeStart = start + 1
		page.RangeEnd = end
	}
	return page
}

func (store *Store) clampPage() {
	store.currentPage = min(max(store.currentPage, 1), store.TotalPages())
}
