// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package roomclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bureau-foundation/lobby/lib/room"
)

// testServer starts an httptest server for handler and returns a
// Client pointed at it. The server is closed when the test completes.
func testServer(t *testing.T, handler http.Handler, options ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(server.URL, options...)
	if err != nil {
		t.Fatalf("New(%q): %v", server.URL, err)
	}
	return client
}

func respond(status int, body string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		io.WriteString(writer, body)
	}
}

func TestNewRejectsBadURLs(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"localhost:5000", "ftp://example.com", "http://", "://bad"} {
		if _, err := New(raw); err == nil {
			t.Errorf("New(%q) = nil error", raw)
		}
	}
}

func TestListRooms(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/rooms", func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get("X-Request-ID") == "" {
			t.Error("request carries no X-Request-ID")
		}
		respond(http.StatusOK, `[
			{"id":"A1","name":"Lobby","creator":"Alice","hasPassword":false,"isActive":true,"userCount":2},
			{"id":"B2","name":"Secret","creator":"Bob","hasPassword":true,"userCount":4,"createdAt":"2026-01-01T00:00:00"}
		]`)(writer, request)
	})

	client := testServer(t, mux)
	rooms, err := client.ListRooms(context.Background())
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 2 {
		t.Fatalf("len(rooms) = %d, want 2", len(rooms))
	}
	if rooms[0].ID != "A1" || rooms[0].UserCount != 2 || rooms[0].MessageCount != 0 {
		t.Errorf("rooms[0] = %+v", rooms[0])
	}
	if !rooms[1].HasPassword || rooms[1].UserCount != 4 || !rooms[1].CreatedAt.Valid() {
		t.Errorf("rooms[1] = %+v", rooms[1])
	}
}

func TestListRoomsEmpty(t *testing.T) {
	t.Parallel()

	client := testServer(t, respond(http.StatusOK, `[]`))
	rooms, err := client.ListRooms(context.Background())
	if err != nil {
		t.Fatalf("ListRooms: %v", err)
	}
	if len(rooms) != 0 {
		t.Fatalf("rooms = %v, want empty", rooms)
	}
}

func TestListRoomsProtocolErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		handler http.HandlerFunc
		status  int
		mention string
	}{
		{"html page", respond(http.StatusOK, `<html>maintenance</html>`), 200, "decoding room list"},
		{"null", respond(http.StatusOK, `null`), 200, "got null"},
		{"object instead of list", respond(http.StatusOK, `{"rooms":[]}`), 200, "decoding room list"},
		{"error field with 200", respond(http.StatusOK, `{"error":"database locked"}`), 200, "database locked"},
		{"error field with 500", respond(http.StatusInternalServerError, `{"error":"internal server error"}`), 500, "internal server error"},
		{"bare 502", respond(http.StatusBadGateway, `bad gateway`), 502, "bad gateway"},
		{"duplicate ids", respond(http.StatusOK, `[{"id":"x"},{"id":"x"}]`), 200, "appears at index"},
		{"negative counter", respond(http.StatusOK, `[{"id":"x","userCount":-2}]`), 200, "negative"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			client := testServer(t, test.handler)
			_, err := client.ListRooms(context.Background())

			var protocol *ProtocolError
			if !errors.As(err, &protocol) {
				t.Fatalf("ListRooms error = %T %v, want *ProtocolError", err, err)
			}
			if protocol.StatusCode != test.status {
				t.Errorf("StatusCode = %d, want %d", protocol.StatusCode, test.status)
			}
			if !strings.Contains(err.Error(), test.mention) {
				t.Errorf("error %q does not mention %q", err, test.mention)
			}
			if !IsRetryable(err) {
				t.Error("IsRetryable(protocol error) = false")
			}
		})
	}
}

func TestListRoomsNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	address := server.URL
	server.Close()

	client, err := New(address)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_, err = client.ListRooms(context.Background())
	var network *NetworkError
	if !errors.As(err, &network) {
		t.Fatalf("ListRooms error = %T %v, want *NetworkError", err, err)
	}
	if network.Op != "list rooms" {
		t.Errorf("Op = %q", network.Op)
	}
}

func TestListRoomsTimeoutIsNetworkError(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	client := testServer(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		select {
		case <-release:
		case <-request.Context().Done():
		}
	}), WithTimeout(50*time.Millisecond))

	_, err := client.ListRooms(context.Background())
	var network *NetworkError
	if !errors.As(err, &network) {
		t.Fatalf("ListRooms error = %T %v, want *NetworkError", err, err)
	}
}

func TestJoinRoomOutcomes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		status       int
		body         string
		want         JoinKind
		message      string
		unclassified bool
	}{
		{"accepted empty object", 200, `{}`, JoinAccepted, "", false},
		{"accepted with message", 200, `{"message":"access granted"}`, JoinAccepted, "", false},
		{"accepted empty body", 204, ``, JoinAccepted, "", false},
		{"not found by status", 404, `{"error":"Room not found"}`, JoinRoomNotFound, "Room not found", false},
		{"wrong password by status", 401, `{"error":"Wrong password!"}`, JoinWrongPassword, "Wrong password!", false},
		{"inactive", 403, `{"error":"Room is no longer active"}`, JoinRejected, "Room is no longer active", false},
		{"200 with wrong_password code", 200, `{"error":"nope","code":"wrong_password"}`, JoinWrongPassword, "nope", false},
		{"200 with room_not_found code", 200, `{"error":"gone","code":"room_not_found"}`, JoinRoomNotFound, "gone", false},
		{"200 with bare error", 200, `{"error":"room is full"}`, JoinRejected, "room is full", true},
		{"code wins over status", 404, `{"error":"bad","code":"wrong_password"}`, JoinWrongPassword, "bad", false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			mux := http.NewServeMux()
			mux.HandleFunc("POST /api/rooms/{id}/join", respond(test.status, test.body))
			client := testServer(t, mux)

			outcome, err := client.JoinRoom(context.Background(), "A1", "pw")
			if err != nil {
				t.Fatalf("JoinRoom: %v", err)
			}
			if outcome.Kind != test.want {
				t.Errorf("Kind = %v, want %v", outcome.Kind, test.want)
			}
			if outcome.Message != test.message {
				t.Errorf("Message = %q, want %q", outcome.Message, test.message)
			}
			if outcome.Unclassified() != test.unclassified {
				t.Errorf("Unclassified() = %v, want %v", outcome.Unclassified(), test.unclassified)
			}
			if !outcome.Accepted() && outcome.StatusCode != test.status {
				t.Errorf("StatusCode = %d, want %d", outcome.StatusCode, test.status)
			}
		})
	}
}

func TestJoinRoomSendsPassword(t *testing.T) {
	t.Parallel()

	var gotID, gotPassword string
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/rooms/{id}/join", func(writer http.ResponseWriter, request *http.Request) {
		gotID = request.PathValue("id")
		var body joinRequest
		if err := json.NewDecoder(request.Body).Decode(&body); err != nil {
			t.Errorf("decoding join body: %v", err)
		}
		gotPassword = body.Password
		respond(http.StatusOK, `{}`)(writer, request)
	})

	client := testServer(t, mux)
	if _, err := client.JoinRoom(context.Background(), "B2", "hunter2"); err != nil {
		t.Fatalf("JoinRoom: %v", err)
	}
	if gotID != "B2" || gotPassword != "hunter2" {
		t.Fatalf("server saw id=%q password=%q", gotID, gotPassword)
	}
}

func TestJoinRoomProtocolAndNetworkErrors(t *testing.T) {
	t.Parallel()

	t.Run("non-2xx without error field", func(t *testing.T) {
		t.Parallel()
		client := testServer(t, respond(http.StatusInternalServerError, `{}`))
		_, err := client.JoinRoom(context.Background(), "A1", "")
		var protocol *ProtocolError
		if !errors.As(err, &protocol) {
			t.Fatalf("error = %T %v, want *ProtocolError", err, err)
		}
	})

	t.Run("html body", func(t *testing.T) {
		t.Parallel()
		client := testServer(t, respond(http.StatusNotFound, `<h1>Not Found</h1>`))
		_, err := client.JoinRoom(context.Background(), "A1", "")
		var protocol *ProtocolError
		if !errors.As(err, &protocol) {
			t.Fatalf("error = %T %v, want *ProtocolError", err, err)
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()
		server := httptest.NewServer(http.NotFoundHandler())
		address := server.URL
		server.Close()
		client, _ := New(address)

		outcome, err := client.JoinRoom(context.Background(), "A1", "secret")
		var network *NetworkError
		if !errors.As(err, &network) {
			t.Fatalf("error = %T %v, want *NetworkError", err, err)
		}
		if outcome.Kind == JoinWrongPassword {
			t.Fatal("transport failure reported as wrong password")
		}
	})
}

func TestCreateRoom(t *testing.T) {
	t.Parallel()

	var got room.Draft
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/rooms", func(writer http.ResponseWriter, request *http.Request) {
		if err := json.NewDecoder(request.Body).Decode(&got); err != nil {
			t.Errorf("decoding create body: %v", err)
		}
		respond(http.StatusOK, `{"roomId":"C3","message":"Room created"}`)(writer, request)
	})

	client := testServer(t, mux)
	id, err := client.CreateRoom(context.Background(), room.Draft{Name: " Jazz ", Creator: "Carol", Password: "pw"})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if id != "C3" {
		t.Errorf("id = %q, want C3", id)
	}
	if got.Name != "Jazz" || got.Creator != "Carol" || got.Password != "pw" {
		t.Errorf("server saw %+v, want trimmed draft", got)
	}
}

func TestCreateRoomRejection(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusOK, http.StatusBadRequest} {
		client := testServer(t, respond(status, `{"error":"A room with that name already exists"}`))
		_, err := client.CreateRoom(context.Background(), room.Draft{Name: "Lobby", Creator: "Alice"})

		var rejection *Rejection
		if !errors.As(err, &rejection) {
			t.Fatalf("status %d: error = %T %v, want *Rejection", status, err, err)
		}
		if err.Error() != "A room with that name already exists" {
			t.Errorf("status %d: message = %q, want the backend text verbatim", status, err)
		}
		if IsRetryable(err) {
			t.Errorf("status %d: rejection reported retryable", status)
		}
	}
}

func TestCreateRoomValidatesLocally(t *testing.T) {
	t.Parallel()

	called := false
	client := testServer(t, http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	_, err := client.CreateRoom(context.Background(), room.Draft{Name: "", Creator: "Alice"})

	var validation *room.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("error = %T %v, want *room.ValidationError", err, err)
	}
	if called {
		t.Fatal("invalid draft reached the backend")
	}
}

func TestCreateRoomSnakeCaseID(t *testing.T) {
	t.Parallel()

	client := testServer(t, respond(http.StatusOK, `{"room_id":"N1"}`))
	id, err := client.CreateRoom(context.Background(), room.Draft{Name: "Den", Creator: "Cy"})
	if err != nil {
		t.Fatalf("CreateRoom: %v", err)
	}
	if id != "N1" {
		t.Errorf("id = %q, want N1", id)
	}
}

func TestCreateRoomMissingID(t *testing.T) {
	t.Parallel()

	client := testServer(t, respond(http.StatusOK, `{"message":"ok"}`))
	_, err := client.CreateRoom(context.Background(), room.Draft{Name: "Lobby", Creator: "Alice"})
	var protocol *ProtocolError
	if !errors.As(err, &protocol) {
		t.Fatalf("error = %T %v, want *ProtocolError", err, err)
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	client, err := New("https://chat.example.com/")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := client.Resolve("/chat/A1?username=ana")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if want := "https://chat.example.com/chat/A1?username=ana"; got != want {
		t.Fatalf("Resolve = %q, want %q", got, want)
	}
}
