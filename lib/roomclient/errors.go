// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package roomclient

import (
	"errors"
	"fmt"
)

// NetworkError means the backend could not be reached or stopped
// answering: dial failures, resets, timeouts, cancelled contexts, and
// bodies cut off mid-read.
type NetworkError struct {
	Op  string
	Err error
}

func (err *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", err.Op, err.Err)
}

func (err *NetworkError) Unwrap() error { return err.Err }

// ProtocolError means the backend answered with something other than
// the expected shape. StatusCode is the HTTP status.
type ProtocolError struct {
	Op         string
	StatusCode int
	Err        error
}

func (err *ProtocolError) Error() string {
	return fmt.Sprintf("%s: unexpected response (HTTP %d): %v", err.Op, err.StatusCode, err.Err)
}

func (err *ProtocolError) Unwrap() error { return err.Err }

// Rejection is a domain-level refusal the backend reported through an
// "error" field, such as a duplicate room name. Error returns the
// backend's message unchanged so it can be shown to the user as is.
type Rejection struct {
	Op         string
	StatusCode int

	// Code is the optional machine-readable "code" field.
	Code    string
	Message string
}

func (err *Rejection) Error() string { return err.Message }

// IsRetryable reports whether err is a transport or protocol failure
// that a later attempt may not hit. Rejections are final.
func IsRetryable(err error) bool {
	var network *NetworkError
	var protocol *ProtocolError
	return errors.As(err, &network) || errors.As(err, &protocol)
}
