// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/bureau-foundation/lobby/lib/room"
)

// roomServer is an in-memory backend speaking the room API.
type roomServer struct {
	mu        sync.Mutex
	rooms     []map[string]any
	passwords map[string]string
}

func newRoomServer(t *testing.T) string {
	t.Helper()
	backend := &roomServer{
		rooms: []map[string]any{
			{"id": "A1", "name": "Lobby", "creator": "Alice", "hasPassword": false, "isActive": true, "userCount": 2},
			{"id": "B2", "name": "Secret", "creator": "Bob", "hasPassword": true, "isActive": true},
			{"id": "C3", "name": "Design review", "creator": "Cy", "hasPassword": false, "isActive": true},
		},
		passwords: map[string]string{"A1": "", "B2": "hunter2", "C3": ""},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/rooms", func(writer http.ResponseWriter, _ *http.Request) {
		backend.mu.Lock()
		defer backend.mu.Unlock()
		writer.Header().Set("Content-Type", "application/json")
		json.NewEncoder(writer).Encode(backend.rooms)
	})
	mux.HandleFunc("POST /api/rooms", func(writer http.ResponseWriter, request *http.Request) {
		var draft room.Draft
		json.NewDecoder(request.Body).Decode(&draft)
		backend.mu.Lock()
		defer backend.mu.Unlock()
		id := "N" + string(rune('0'+len(backend.rooms)))
		backend.rooms = append(backend.rooms, map[string]any{
			"id": id, "name": draft.Name, "creator": draft.Creator,
			"hasPassword": draft.Password != "", "isActive": true,
		})
		backend.passwords[id] = draft.Password
		writer.Header().Set("Content-Type", "application/json")
		io.WriteString(writer, `{"roomId":"`+id+`"}`)
	})
	mux.HandleFunc("POST /api/rooms/{id}/join", func(writer http.ResponseWriter, request *http.Request) {
		var body struct {
			Password string `json:"password"`
		}
		json.NewDecoder(request.Body).Decode(&body)
		backend.mu.Lock()
		want, ok := backend.passwords[request.PathValue("id")]
		backend.mu.Unlock()

		writer.Header().Set("Content-Type", "application/json")
		switch {
		case !ok:
			writer.WriteHeader(http.StatusNotFound)
			io.WriteString(writer, `{"error":"Room not found"}`)
		case want != body.Password:
			writer.WriteHeader(http.StatusUnauthorized)
			io.WriteString(writer, `{"error":"Wrong password!","code":"wrong_password"}`)
		default:
			io.WriteString(writer, `{}`)
		}
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server.URL
}

// execute runs the root command with args against serverURL and
// returns stdout.
func execute(t *testing.T, serverURL string, args ...string) (string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	command := newRootCommand(&stdout, &stderr)
	command.SetArgs(append([]string{"--server", serverURL, "--log-level", "error"}, args...))
	err := command.ExecuteContext(context.Background())
	return stdout.String(), err
}

func TestListJSON(t *testing.T) {
	t.Parallel()

	serverURL := newRoomServer(t)
	output, err := execute(t, serverURL, "list", "--json", "--search", "design")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var rooms []room.Room
	if err := json.Unmarshal([]byte(output), &rooms); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, output)
	}
	if len(rooms) != 1 || rooms[0].ID != "C3" {
		t.Errorf("rooms = %+v, want only C3", rooms)
	}
}

func TestListPlain(t *testing.T) {
	t.Parallel()

	serverURL := newRoomServer(t)
	output, err := execute(t, serverURL, "list", "--status", "protected", "--width", "140", "--color", "never")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(output, "Secret") || strings.Contains(output, "Lobby") {
		t.Errorf("protected listing:\n%s", output)
	}
	if !strings.Contains(output, "Showing 1-1 of 1 room") {
		t.Errorf("listing has no pager summary:\n%s", output)
	}
}

func TestListRejectsBadFlags(t *testing.T) {
	t.Parallel()

	serverURL := newRoomServer(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"page out of range", []string{"list", "--page", "9"}, "page 9 does not exist"},
		{"unknown status", []string{"list", "--status", "secret"}, "unknown status filter"},
		{"unknown color", []string{"list", "--color", "rainbow"}, "unknown --color"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			_, err := execute(t, serverURL, test.args...)
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Errorf("error = %v, want it to mention %q", err, test.want)
			}
		})
	}
}

func TestJoin(t *testing.T) {
	t.Parallel()

	serverURL := newRoomServer(t)
	output, err := execute(t, serverURL, "join", "B2", "--username", "ana", "--password", "hunter2")
	if err != nil {
		t.Fatalf("join: %v", err)
	}
	if want := serverURL + "/chat/B2?username=ana\n"; output != want {
		t.Errorf("output = %q, want %q", output, want)
	}
}

func TestJoinRefusals(t *testing.T) {
	t.Parallel()

	serverURL := newRoomServer(t)
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"protected without password", []string{"join", "B2", "--username", "ana"}, errPasswordRequired.Error()},
		{"wrong password", []string{"join", "B2", "--username", "ana", "--password", "nope"}, "Wrong password!"},
		{"unknown room", []string{"join", "Z9", "--username", "ana"}, "Room not found"},
		{"no username", []string{"join", "A1"}, "enter a username"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			_, err := execute(t, serverURL, test.args...)
			if err == nil || !strings.Contains(err.Error(), test.want) {
				t.Errorf("error = %v, want it to mention %q", err, test.want)
			}
		})
	}
}

func TestCreateAndJoin(t *testing.T) {
	t.Parallel()

	serverURL := newRoomServer(t)
	output, err := execute(t, serverURL, "create", "--name", " Den ", "--creator", "cy", "--password", "pw", "--join")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(output), "\n")
	if len(lines) != 2 {
		t.Fatalf("output = %q, want two lines", output)
	}
	if lines[0] != `Created room "Den" (id N3)` {
		t.Errorf("first line = %q", lines[0])
	}
	if lines[1] != serverURL+"/chat/N3?username=cy" {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestCreateValidatesBeforeSending(t *testing.T) {
	t.Parallel()

	serverURL := newRoomServer(t)
	_, err := execute(t, serverURL, "create", "--creator", "cy")
	if err == nil || !strings.Contains(err.Error(), "room name is required") {
		t.Errorf("error = %v, want the name rule", err)
	}
}

func TestVersion(t *testing.T) {
	t.Parallel()

	output, err := execute(t, "http://localhost:8000", "version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.HasPrefix(output, "lobby ") {
		t.Errorf("output = %q", output)
	}
}
