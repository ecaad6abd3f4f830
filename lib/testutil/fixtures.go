// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/bureau-foundation/lobby/lib/room"
)

// NumberedRooms returns count public rooms with ids "r1".."rN" and
// names "Room 1".."Room N", created by "host". Item i (1-based) of a
// page can then be checked by id.
func NumberedRooms(count int) []room.Room {
	rooms := make([]room.Room, count)
	for index := range rooms {
		rooms[index] = room.Room{
			ID:       fmt.Sprintf("r%d", index+1),
			Name:     fmt.Sprintf("Room %d", index+1),
			Creator:  "host",
			IsActive: true,
		}
	}
	return rooms
}

// WriteFile writes content to name inside a fresh temporary directory
// and returns the full path.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}
