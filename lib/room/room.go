// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package room

import (
	"encoding/json"
	"fmt"
	"time"
)

// Room is one entry of the backend's room listing. Wire names are
// camelCase; the snake_case spelling some backends use is accepted
// when decoding.
type Room struct {
	// ID is opaque, stable, and unique within one listing.
	ID string `json:"id"`

	Name    string `json:"name"`
	Creator string `json:"creator"`

	// HasPassword marks a protected room. Joining it requires the
	// password challenge.
	HasPassword bool `json:"hasPassword"`

	// IsActive is false for rooms the backend still lists but that no
	// longer accept joins. Renderers show them faint.
	IsActive bool `json:"isActive"`

	// UserCount and MessageCount default to zero when the backend
	// omits them.
	UserCount    int `json:"userCount"`
	MessageCount int `json:"messageCount"`

	CreatedAt Timestamp `json:"createdAt"`
}

// roomWire accepts both spellings of every multi-word field.
type roomWire struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Creator string `json:"creator"`

	HasPassword  *bool      `json:"hasPassword"`
	IsActive     *bool      `json:"isActive"`
	UserCount    *int       `json:"userCount"`
	MessageCount *int       `json:"messageCount"`
	CreatedAt    *Timestamp `json:"createdAt"`

	SnakeHasPassword  *bool      `json:"has_password"`
	SnakeIsActive     *bool      `json:"is_active"`
	SnakeUserCount    *int       `json:"user_count"`
	SnakeMessageCount *int       `json:"message_count"`
	SnakeCreatedAt    *Timestamp `json:"created_at"`
}

// UnmarshalJSON applies the listing defaults: a room without an
// isActive field is active, and absent counters are zero. The
// camelCase field wins when both spellings are present.
func (entry *Room) UnmarshalJSON(data []byte) error {
	var decoded roomWire
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*entry = Room{
		ID:           decoded.ID,
		Name:         decoded.Name,
		Creator:      decoded.Creator,
		HasPassword:  firstSet(false, decoded.HasPassword, decoded.SnakeHasPassword),
		IsActive:     firstSet(true, decoded.IsActive, decoded.SnakeIsActive),
		UserCount:    firstSet(0, decoded.UserCount, decoded.SnakeUserCount),
		MessageCount: firstSet(0, decoded.MessageCount, decoded.SnakeMessageCount),
		CreatedAt:    firstSet(Timestamp{}, decoded.CreatedAt, decoded.SnakeCreatedAt),
	}
	return nil
}

// firstSet returns the first non-nil value, or fallback.
func firstSet[T any](fallback T, values ...*T) T {
	for _, value := range values {
		if value != nil {
			return *value
		}
	}
	return fallback
}

// Timestamp is an optional creation time. The backend sends ISO-8601
// strings, sometimes without a zone offset; those are read as UTC. A
// value that parses under none of the accepted layouts keeps its raw
// text so it can still be displayed.
type Timestamp struct {
	Time time.Time
	Raw  string
}

// timestampLayouts are tried in order. The zone-less layouts cover
// Python's datetime.isoformat() output.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp parses text with the accepted layouts. An empty
// string yields the zero Timestamp.
func ParseTimestamp(text string) Timestamp {
	if text == "" {
		return Timestamp{}
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, text); err == nil {
			return Timestamp{Time: parsed, Raw: text}
		}
	}
	return Timestamp{Raw: text}
}

// At returns a Timestamp for a known time.
func At(when time.Time) Timestamp {
	return Timestamp{Time: when, Raw: when.Format(time.RFC3339Nano)}
}

// IsZero reports whether the backend sent no timestamp at all.
func (timestamp Timestamp) IsZero() bool {
	return timestamp.Raw == "" && timestamp.Time.IsZero()
}

// Valid reports whether the timestamp parsed to a time.
func (timestamp Timestamp) Valid() bool {
	return !timestamp.Time.IsZero()
}

func (timestamp *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*timestamp = Timestamp{}
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return fmt.Errorf("createdAt: expected string, got %s", data)
	}
	*timestamp = ParseTimestamp(text)
	return nil
}

func (timestamp Timestamp) MarshalJSON() ([]byte, error) {
	if timestamp.IsZero() {
		return []byte("null"), nil
	}
	if timestamp.Raw != "" {
		return json.Marshal(timestamp.Raw)
	}
	return json.Marshal(timestamp.Time.Format(time.RFC3339Nano))
}

// ValidateList checks the invariants a listing must hold before the
// directory accepts it as a snapshot: every id present and unique,
// counters non-negative.
func ValidateList(rooms []Room) error {
	seen := make(map[string]int, len(rooms))
	for index, entry := range rooms {
		if entry.ID == "" {
			return fmt.Errorf("room at index %d has an empty id", index)
		}
		if previous, duplicate := seen[entry.ID]; duplicate {
			return fmt.Errorf("room id %q appears at index %d and %d", entry.ID, previous, index)
		}
		seen[entry.ID] = index
		if entry.UserCount < 0 || entry.MessageCount < 0 {
			return fmt.Errorf("room %q has a negative counter (users %d, messages %d)",
				entry.ID, entry.UserCount, entry.MessageCount)
		}
	}
	return nil
}
