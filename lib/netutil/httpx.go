// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package netutil holds HTTP plumbing shared by lobby's API client.
//
// Response helpers (ReadResponse, DecodeResponse, ErrorBody) bound
// every body read at MaxResponseSize. NewTransport builds the client
// transport: gzip negotiation plus request identification headers.
package netutil

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// MaxResponseSize bounds JSON response bodies: 8 MB. A room listing
// is a few kilobytes per hundred rooms.
const MaxResponseSize int64 = 8 << 20

// maxErrorBody is how much of an unexpected body is quoted back in an
// error message.
const maxErrorBody = 512

// ReadResponse reads a response body up to MaxResponseSize bytes.
func ReadResponse(body io.Reader) ([]byte, error) {
	return io.ReadAll(io.LimitReader(body, MaxResponseSize))
}

// DecodeResponse reads a response body (up to MaxResponseSize bytes)
// and JSON-decodes it into v.
func DecodeResponse(body io.Reader, v any) error {
	data, err := ReadResponse(body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}
	return json.Unmarshal(data, v)
}

// ErrorBody reads a response body for inclusion in an error message.
// Read errors are ignored; a partial body is still useful.
func ErrorBody(body io.Reader) string {
	data, _ := ReadResponse(body)
	return Snippet(data)
}

// Snippet trims data for quoting in an error message: surrounding
// whitespace removed, cut at maxErrorBody bytes.
func Snippet(data []byte) string {
	text := strings.TrimSpace(string(data))
	if len(text) > maxErrorBody {
		return text[:maxErrorBody] + "..."
	}
	return text
}
