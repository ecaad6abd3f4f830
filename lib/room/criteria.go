// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package room

import (
	"fmt"
	"strings"
)

// StatusFilter narrows the directory by password protection.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPublic    StatusFilter = "public"
	StatusProtected StatusFilter = "protected"
)

// ParseStatusFilter accepts "all", "public", or "protected". The empty
// string means all.
func ParseStatusFilter(text string) (StatusFilter, error) {
	switch StatusFilter(strings.ToLower(strings.TrimSpace(text))) {
	case "", StatusAll:
		return StatusAll, nil
	case StatusPublic:
		return StatusPublic, nil
	case StatusProtected:
		return StatusProtected, nil
	default:
		return "", fmt.Errorf("unknown status filter %q (want all, public, or protected)", text)
	}
}

// Next cycles all -> public -> protected -> all. The TUI binds it to
// a single key.
func (status StatusFilter) Next() StatusFilter {
	switch status {
	case StatusPublic:
		return StatusProtected
	case StatusProtected:
		return StatusAll
	default:
		return StatusPublic
	}
}

// Admits reports whether a room with the given protection passes
// the status filter. The zero value admits everything.
func (status StatusFilter) Admits(hasPassword bool) bool {
	switch status {
	case StatusPublic:
		return !hasPassword
	case StatusProtected:
		return hasPassword
	default:
		return true
	}
}

func (status StatusFilter) String() string {
	if status == "" {
		return string(StatusAll)
	}
	return string(status)
}

// Criteria is the search and status filter applied to the master
// room list.
type Criteria struct {
	// SearchTerm matches as a case-insensitive substring of Name or
	// Creator. Empty matches every room.
	SearchTerm string

	Status StatusFilter
}

// Matches reports whether entry passes both the search term and the
// status filter.
func (criteria Criteria) Matches(entry Room) bool {
	if !criteria.Status.Admits(entry.HasPassword) {
		return false
	}
	if criteria.SearchTerm == "" {
		return true
	}
	needle := strings.ToLower(criteria.SearchTerm)
	return strings.Contains(strings.ToLower(entry.Name), needle) ||
		strings.Contains(strings.ToLower(entry.Creator), needle)
}

// IsZero reports whether the criteria admit every room.
func (criteria Criteria) IsZero() bool {
	return criteria.SearchTerm == "" && criteria.Status.String() == string(StatusAll)
}

// Filter returns the rooms matching criteria in their original order.
// The result never aliases rooms.
func Filter(rooms []Room, criteria Criteria) []Room {
	matched := make([]Room, 0, len(rooms))
	for _, entry := range rooms {
		if criteria.Matches(entry) {
			matched = append(matched, entry)
		}
	}
	return matched
}
