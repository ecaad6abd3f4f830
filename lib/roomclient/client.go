// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package roomclient is the HTTP client for the chat backend's room
// API: listing rooms, creating one, and attempting to join one.
//
// Failures come back typed. A transport problem is a *NetworkError, a
// response of the wrong shape is a *ProtocolError, and a refusal the
// backend spelled out in an "error" field is a *Rejection (or, for
// joins, a JoinOutcome other than JoinAccepted). The backend reports
// refusals with an "error" field and may still use status 200, so the
// field decides, not the status code.
package roomclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bureau-foundation/lobby/lib/netutil"
	"github.com/bureau-foundation/lobby/lib/room"
	"github.com/bureau-foundation/lobby/lib/version"
)

// Client talks to one backend. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	logger     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client. Its transport is used as
// is; tests use this to point the client at an httptest server.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) { client.httpClient = httpClient }
}

// WithTimeout bounds each request, connection through body.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) { client.httpClient.Timeout = timeout }
}

// WithLogger sets the logger for request diagnostics.
func WithLogger(logger zerolog.Logger) Option {
	return func(client *Client) { client.logger = logger }
}

// New returns a client for the backend at baseURL, for example
// "http://localhost:5000". The default transport negotiates gzip and
// identifies each request.
func New(baseURL string, options ...Option) (*Client, error) {
	parsed, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing server URL %q: %w", baseURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("server URL %q: scheme must be http or https", baseURL)
	}
	if parsed.Host == "" {
		return nil, fmt.Errorf("server URL %q has no host", baseURL)
	}

	client := &Client{
		httpClient: &http.Client{
			Transport: netutil.NewTransport(nil, version.UserAgent()),
			Timeout:   10 * time.Second,
		},
		baseURL: parsed,
		logger:  zerolog.Nop(),
	}
	for _, option := range options {
		option(client)
	}
	return client, nil
}

// BaseURL returns the backend root.
func (client *Client) BaseURL() *url.URL {
	copied := *client.baseURL
	return &copied
}

// Resolve turns a backend-relative reference such as
// "/chat/A1?username=ana" into an absolute URL.
func (client *Client) Resolve(reference string) (string, error) {
	parsed, err := url.Parse(reference)
	if err != nil {
		return "", fmt.Errorf("resolving %q: %w", reference, err)
	}
	return client.baseURL.ResolveReference(parsed).String(), nil
}

// reply is the envelope of every non-list response. The new room id
// arrives as roomId, or room_id from snake_case backends.
type reply struct {
	Error       *string `json:"error"`
	Code        string  `json:"code"`
	RoomID      string  `json:"roomId"`
	SnakeRoomID string  `json:"room_id"`
	Message     string  `json:"message"`
}

func (body reply) roomID() string {
	if body.RoomID != "" {
		return body.RoomID
	}
	return body.SnakeRoomID
}

// rejected reports whether the reply carries an error field.
func (body reply) rejected() bool { return body.Error != nil }

func (body reply) errorText() string {
	if body.Error == nil {
		return ""
	}
	return *body.Error
}

// ListRooms fetches the full room listing.
func (client *Client) ListRooms(ctx context.Context) ([]room.Room, error) {
	const op = "list rooms"

	status, data, err := client.roundTrip(ctx, http.MethodGet, "/api/rooms", nil)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}

	var rooms []room.Room
	decodeErr := json.Unmarshal(data, &rooms)
	if decodeErr == nil && status/100 == 2 && rooms != nil {
		if err := room.ValidateList(rooms); err != nil {
			return nil, &ProtocolError{Op: op, StatusCode: status, Err: err}
		}
		return rooms, nil
	}

	var body reply
	if json.Unmarshal(data, &body) == nil && body.rejected() {
		return nil, &ProtocolError{Op: op, StatusCode: status, Err: fmt.Errorf("server error: %s", body.errorText())}
	}
	if status/100 != 2 {
		return nil, &ProtocolError{Op: op, StatusCode: status, Err: fmt.Errorf("body: %s", netutil.Snippet(data))}
	}
	if decodeErr == nil {
		decodeErr = errors.New("expected a JSON array of rooms, got null")
	}
	return nil, &ProtocolError{Op: op, StatusCode: status, Err: fmt.Errorf("decoding room list: %w", decodeErr)}
}

// joinRequest is the body of POST /api/rooms/{id}/join.
type joinRequest struct {
	Password string `json:"password"`
}

// JoinRoom asks the backend to admit the caller to roomID. An empty
// password is sent as "" for unprotected rooms. Only transport and
// shape failures are returned as errors; every answer the backend
// spells out is a JoinOutcome.
func (client *Client) JoinRoom(ctx context.Context, roomID, password string) (JoinOutcome, error) {
	const op = "join room"

	if roomID == "" {
		return JoinOutcome{Kind: JoinRoomNotFound, Message: "room id is empty"}, nil
	}
	path := "/api/rooms/" + url.PathEscape(roomID) + "/join"
	status, data, err := client.roundTrip(ctx, http.MethodPost, path, joinRequest{Password: password})
	if err != nil {
		return JoinOutcome{}, &NetworkError{Op: op, Err: err}
	}

	body, err := decodeReply(data)
	if err != nil {
		return JoinOutcome{}, &ProtocolError{Op: op, StatusCode: status, Err: err}
	}
	if !body.rejected() {
		if status/100 != 2 {
			return JoinOutcome{}, &ProtocolError{Op: op, StatusCode: status, Err: fmt.Errorf("no error field in body: %s", netutil.Snippet(data))}
		}
		return JoinOutcome{Kind: JoinAccepted}, nil
	}

	outcome := JoinOutcome{
		Kind:       classifyJoin(status, body.Code),
		Message:    body.errorText(),
		Code:       body.Code,
		StatusCode: status,
	}
	client.logger.Debug().
		Str("room_id", roomID).
		Int("status", status).
		Str("code", body.Code).
		Stringer("outcome", outcome.Kind).
		Msg("join refused")
	return outcome, nil
}

// classifyJoin maps a refused join to its kind. The code field wins
// over the status because the backend may refuse with status 200.
func classifyJoin(status int, code string) JoinKind {
	switch code {
	case CodeRoomNotFound:
		return JoinRoomNotFound
	case CodeWrongPassword:
		return JoinWrongPassword
	case CodeRoomInactive:
		return JoinRejected
	}
	switch status {
	case http.StatusNotFound:
		return JoinRoomNotFound
	case http.StatusUnauthorized:
		return JoinWrongPassword
	default:
		return JoinRejected
	}
}

// CreateRoom creates a room from draft and returns its id. The draft
// is validated locally first; a *room.ValidationError never reaches
// the backend.
func (client *Client) CreateRoom(ctx context.Context, draft room.Draft) (string, error) {
	const op = "create room"

	if err := draft.Validate(); err != nil {
		return "", err
	}
	status, data, err := client.roundTrip(ctx, http.MethodPost, "/api/rooms", draft.Normalized())
	if err != nil {
		return "", &NetworkError{Op: op, Err: err}
	}

	body, err := decodeReply(data)
	if err != nil {
		return "", &ProtocolError{Op: op, StatusCode: status, Err: err}
	}
	if body.rejected() {
		return "", &Rejection{Op: op, StatusCode: status, Code: body.Code, Message: body.errorText()}
	}
	if status/100 != 2 || body.roomID() == "" {
		return "", &ProtocolError{Op: op, StatusCode: status, Err: fmt.Errorf("no roomId in body: %s", netutil.Snippet(data))}
	}
	return body.roomID(), nil
}

// decodeReply parses an envelope. An empty body decodes as {}.
func decodeReply(data []byte) (reply, error) {
	var body reply
	if len(bytes.TrimSpace(data)) == 0 {
		return body, nil
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return reply{}, fmt.Errorf("decoding response: %w (body: %s)", err, netutil.Snippet(data))
	}
	return body, nil
}

// roundTrip sends a request and reads the whole (bounded) body. A
// returned error is always a transport-level failure.
func (client *Client) roundTrip(ctx context.Context, method, path string, payload any) (int, []byte, error) {
	var bodyReader *bytes.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encoding request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	target := client.baseURL.JoinPath(path)
	var request *http.Request
	var err error
	if bodyReader != nil {
		request, err = http.NewRequestWithContext(ctx, method, target.String(), bodyReader)
	} else {
		request, err = http.NewRequestWithContext(ctx, method, target.String(), nil)
	}
	if err != nil {
		return 0, nil, err
	}
	request.Header.Set("Accept", "application/json")
	if bodyReader != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	started := time.Now()
	response, err := client.httpClient.Do(request)
	if err != nil {
		client.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return 0, nil, err
	}
	defer response.Body.Close()

	data, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("reading response body: %w", err)
	}
	client.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", response.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("request complete")
	return response.StatusCode, data, nil
}
