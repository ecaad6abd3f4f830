// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestDecodeResponse(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		var result []struct {
			ID string `json:"id"`
		}
		if err := DecodeResponse(bytes.NewReader([]byte(`[{"id":"A1"},{"id":"B2"}]`)), &result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result) != 2 || result[1].ID != "B2" {
			t.Fatalf("got %+v, want two rooms ending in B2", result)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		if err := DecodeResponse(bytes.NewReader([]byte(`<html>`)), &struct{}{}); err == nil {
			t.Fatal("expected error for invalid JSON")
		}
	})

	t.Run("read error propagates", func(t *testing.T) {
		if err := DecodeResponse(&failReader{}, &struct{}{}); err == nil {
			t.Fatal("expected error from failing reader")
		}
	})
}

func TestErrorBody(t *testing.T) {
	t.Run("trims whitespace", func(t *testing.T) {
		got := ErrorBody(bytes.NewReader([]byte("  upstream timeout\n")))
		if got != "upstream timeout" {
			t.Fatalf("got %q, want %q", got, "upstream timeout")
		}
	})

	t.Run("long bodies are cut", func(t *testing.T) {
		got := ErrorBody(strings.NewReader(strings.Repeat("x", 4096)))
		if len(got) != maxErrorBody+len("...") || !strings.HasSuffix(got, "...") {
			t.Fatalf("got %d bytes, want %d with ellipsis", len(got), maxErrorBody+3)
		}
	})

	t.Run("read error returns empty", func(t *testing.T) {
		if got := ErrorBody(&failReader{}); got != "" {
			t.Fatalf("expected empty from failing reader, got %q", got)
		}
	})
}

// failReader always returns an error on Read.
type failReader struct{}

func (*failReader) Read([]byte) (int, error) {
	return 0, fmt.Errorf("simulated read failure")
}
