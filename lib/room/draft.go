// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package room

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Length limits the backend enforces on new rooms.
const (
	MaxNameLength    = 50
	MaxCreatorLength = 30
)

// Draft is the input for creating a room. An empty Password creates a
// public room.
type Draft struct {
	Name     string `json:"name"`
	Creator  string `json:"creator"`
	Password string `json:"password,omitempty"`
}

// ValidationError reports a draft field that fails local validation.
// It is surfaced to the user verbatim and never sent to the backend.
type ValidationError struct {
	Field   string
	Message string
}

func (err *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Field, err.Message)
}

// Normalized returns the draft with name and creator trimmed. The
// password is left as typed.
func (draft Draft) Normalized() Draft {
	draft.Name = strings.TrimSpace(draft.Name)
	draft.Creator = strings.TrimSpace(draft.Creator)
	return draft
}

// Validate checks the normalized draft against the backend's rules.
func (draft Draft) Validate() error {
	normalized := draft.Normalized()
	switch {
	case normalized.Name == "":
		return &ValidationError{Field: "name", Message: "room name is required"}
	case utf8.RuneCountInString(normalized.Name) > MaxNameLength:
		return &ValidationError{Field: "name", Message: fmt.Sprintf("room name must be at most %d characters", MaxNameLength)}
	case normalized.Creator == "":
		return &ValidationError{Field: "creator", Message: "creator name is required"}
	case utf8.RuneCountInString(normalized.Creator) > MaxCreatorLength:
		return &ValidationError{Field: "creator", Message: fmt.Sprintf("creator name must be at most %d characters", MaxCreatorLength)}
	}
	return nil
}
