// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package roomclient

import "fmt"

// JoinKind classifies the backend's answer to a join attempt.
type JoinKind int

const (
	JoinAccepted JoinKind = iota
	JoinRoomNotFound
	JoinWrongPassword
	JoinRejected
)

func (kind JoinKind) String() string {
	switch kind {
	case JoinAccepted:
		return "accepted"
	case JoinRoomNotFound:
		return "room not found"
	case JoinWrongPassword:
		return "wrong password"
	case JoinRejected:
		return "rejected"
	default:
		return fmt.Sprintf("JoinKind(%d)", int(kind))
	}
}

// JoinOutcome is the result of a join attempt that reached the
// backend. Message carries the backend's text for every kind except
// JoinAccepted. Code and StatusCode are the raw "code" field and HTTP
// status of a refusal.
type JoinOutcome struct {
	Kind       JoinKind
	Message    string
	Code       string
	StatusCode int
}

// Accepted reports whether the join succeeded.
func (outcome JoinOutcome) Accepted() bool { return outcome.Kind == JoinAccepted }

// Unclassified reports a refusal sent with a 2xx status and no code,
// the backend's generic "200 {error}" answer. Nothing in it says why
// the join was refused.
func (outcome JoinOutcome) Unclassified() bool {
	return outcome.Kind == JoinRejected && outcome.Code == "" && outcome.StatusCode/100 == 2
}

// Codes the backend may put in the "code" field next to "error".
const (
	CodeRoomNotFound  = "room_not_found"
	CodeWrongPassword = "wrong_password"
	CodeRoomInactive  = "room_inactive"
)
