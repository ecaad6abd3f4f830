// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lobbyui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"

	"github.com/bureau-foundation/lobby/lib/clock"
	"github.com/bureau-foundation/lobby/lib/joinflow"
	"github.com/bureau-foundation/lobby/lib/room"
	"github.com/bureau-foundation/lobby/lib/roomclient"
	"github.com/bureau-foundation/lobby/lib/testutil"
	"github.com/bureau-foundation/lobby/lib/viewport"
)

var testNow = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

// fakeBackend serves an in-memory room list. Joins succeed when the
// password matches the room's entry in passwords; rooms without an
// entry are not found.
type fakeBackend struct {
	rooms     []room.Room
	listErr   error
	passwords map[string]string
	createErr error

	lists   int
	joins   []string
	created []room.Draft
}

func newBackend() *fakeBackend {
	return &fakeBackend{
		rooms: []room.Room{
			{ID: "A1", Name: "Lobby", Creator: "Alice", IsActive: true, UserCount: 3},
			{ID: "B2", Name: "Secret", Creator: "Bob", IsActive: true, HasPassword: true},
		},
		passwords: map[string]string{"A1": "", "B2": "hunter2"},
	}
}

func (backend *fakeBackend) ListRooms(context.Context) ([]room.Room, error) {
	backend.lists++
	if backend.listErr != nil {
		return nil, backend.listErr
	}
	return append([]room.Room(nil), backend.rooms...), nil
}

func (backend *fakeBackend) JoinRoom(_ context.Context, roomID, password string) (roomclient.JoinOutcome, error) {
	backend.joins = append(backend.joins, roomID)
	want, ok := backend.passwords[roomID]
	switch {
	case !ok:
		return roomclient.JoinOutcome{Kind: roomclient.JoinRoomNotFound, Message: "Room not found"}, nil
	case want != password:
		return roomclient.JoinOutcome{Kind: roomclient.JoinWrongPassword, Message: "Wrong password!"}, nil
	default:
		return roomclient.JoinOutcome{Kind: roomclient.JoinAccepted}, nil
	}
}

func (backend *fakeBackend) CreateRoom(_ context.Context, draft room.Draft) (string, error) {
	if backend.createErr != nil {
		return "", backend.createErr
	}
	draft = draft.Normalized()
	backend.created = append(backend.created, draft)
	id := fmt.Sprintf("new%d", len(backend.created))
	backend.passwords[id] = draft.Password
	backend.rooms = append(backend.rooms, room.Room{
		ID: id, Name: draft.Name, Creator: draft.Creator,
		HasPassword: draft.Password != "", IsActive: true,
	})
	return id, nil
}

func (backend *fakeBackend) Resolve(reference string) (string, error) {
	return "http://rooms.test" + reference, nil
}

// timer is one scheduled message the harness has not delivered.
type timer struct {
	delay   time.Duration
	message tea.Msg
}

// harness drives a Model the way a bubbletea program would, but
// synchronously: commands run inline and their messages are fed back
// to Update. Scheduled messages are recorded instead of slept on and
// delivered only when a test fires them.
type harness struct {
	t      *testing.T
	model  Model
	timers []timer
	quit   bool
}

func newHarness(t *testing.T, backend *fakeBackend, options Options) *harness {
	t.Helper()
	if options.Clock == nil {
		options.Clock = clock.Fake(testNow)
	}
	h := &harness{t: t}
	model := NewModel(backend, options)
	model.schedule = func(delay time.Duration, message tea.Msg) tea.Cmd {
		return func() tea.Msg {
			h.timers = append(h.timers, timer{delay: delay, message: message})
			return nil
		}
	}
	h.model = model
	h.run(h.model.Init())
	h.send(tea.WindowSizeMsg{Width: 120, Height: 40})
	return h
}

func (h *harness) send(message tea.Msg) {
	updated, command := h.model.Update(message)
	h.model = updated.(Model)
	h.run(command)
}

func (h *harness) run(command tea.Cmd) {
	if command == nil {
		return
	}
	switch message := command().(type) {
	case nil:
	case tea.BatchMsg:
		for _, inner := range message {
			h.run(inner)
		}
	case tea.QuitMsg:
		h.quit = true
	default:
		h.send(message)
	}
}

// press sends named keys ("enter", "esc", "tab") or runes.
func (h *harness) press(names ...string) {
	for _, name := range names {
		switch name {
		case "enter":
			h.send(tea.KeyMsg{Type: tea.KeyEnter})
		case "esc":
			h.send(tea.KeyMsg{Type: tea.KeyEsc})
		case "tab":
			h.send(tea.KeyMsg{Type: tea.KeyTab})
		default:
			h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)})
		}
	}
}

// typeText sends text as one paste-like key event.
func (h *harness) typeText(text string) {
	h.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func (h *harness) screen() string { return ansi.Strip(h.model.View()) }

func (h *harness) pending(match func(tea.Msg) bool) int {
	count := 0
	for _, entry := range h.timers {
		if match(entry.message) {
			count++
		}
	}
	return count
}

// fireNext delivers the earliest pending scheduled message of type T.
func fireNext[T tea.Msg](h *harness) timer {
	h.t.Helper()
	for index, entry := range h.timers {
		if _, ok := entry.message.(T); ok {
			h.timers = append(h.timers[:index], h.timers[index+1:]...)
			h.send(entry.message)
			return entry
		}
	}
	var zero T
	h.t.Fatalf("no %T scheduled", zero)
	return timer{}
}

func isPoll(message tea.Msg) bool {
	_, ok := message.(pollTickMsg)
	return ok
}

func TestInitialLoad(t *testing.T) {
	t.Parallel()

	backend := newBackend()
	h := newHarness(t, backend, Options{})

	if backend.lists != 1 {
		t.Errorf("lists = %d, want 1", backend.lists)
	}
	screen := h.screen()
	for _, want := range []string{"Lobby", "Secret", "Showing 1-2 of 2 rooms"} {
		if !strings.Contains(screen, want) {
			t.Errorf("screen missing %q:\n%s", want, screen)
		}
	}
	if count := h.pending(isPoll); count != 1 {
		t.Errorf("pending polls = %d, want 1", count)
	}
}

func TestPollingRefreshesAndMarksArrivals(t *testing.T) {
	t.Parallel()

	backend := newBackend()
	h := newHarness(t, backend, Options{PollInterval: 15 * time.Second})

	backend.rooms = append(backend.rooms, room.Room{ID: "C3", Name: "Attic", Creator: "Cy", IsActive: true})
	fired := fireNext[pollTickMsg](h)
	if fired.delay != 15*time.Second {
		t.Errorf("poll delay = %s, want 15s", fired.delay)
	}

	if backend.lists != 2 {
		t.Errorf("lists = %d, want 2", backend.lists)
	}
	if !strings.Contains(h.screen(), "Attic") {
		t.Errorf("polled room missing from screen:\n%s", h.screen())
	}
	hot := h.model.hotRooms(testNow)
	if !hot["C3"] || hot["A1"] {
		t.Errorf("hot rooms = %v, want only C3", hot)
	}
	if count := h.pending(isPoll); count != 1 {
		t.Errorf("pending polls = %d, want the next one scheduled", count)
	}
	fireNext[heatTickMsg](h)
}

func TestFetchFailureKeepsRooms(t *testing.T) {
	t.Parallel()

	backend := newBackend()
	h := newHarness(t, backend, Options{})

	backend.listErr = errors.New("connection refused")
	fireNext[pollTickMsg](h)

	screen := h.screen()
	if !strings.Contains(screen, "Lobby") {
		t.Errorf("rooms disappeared after a failed refresh:\n%s", screen)
	}
	if !strings.Contains(screen, "Refresh failed") {
		t.Errorf("refresh failure not shown:\n%s", screen)
	}

	backend.listErr = nil
	h.press("r")
	if strings.Contains(h.screen(), "Refresh failed") {
		t.Errorf("failure still shown after a successful retry:\n%s", h.screen())
	}
}

func TestResizeIsDebounced(t *testing.T) {
	t.Parallel()

	h := newHarness(t, newBackend(), Options{})
	if mode := h.model.directory.Layout().Mode; mode != viewport.Full {
		t.Fatalf("initial mode at 120 columns = %v, want full", mode)
	}

	h.send(tea.WindowSizeMsg{Width: 80, Height: 40})
	h.send(tea.WindowSizeMsg{Width: 90, Height: 40})
	if mode := h.model.directory.Layout().Mode; mode != viewport.Full {
		t.Errorf("mode changed before the quiet window passed: %v", mode)
	}

	stale := fireNext[settleMsg](h)
	if stale.delay != 250*time.Millisecond {
		t.Errorf("settle delay = %s, want 250ms", stale.delay)
	}
	if mode := h.model.directory.Layout().Mode; mode != viewport.Full {
		t.Errorf("a superseded settle changed the mode to %v", mode)
	}

	fireNext[settleMsg](h)
	if mode := h.model.directory.Layout().Mode; mode != viewport.Compact {
		t.Errorf("mode after settling at 90 columns = %v, want compact", mode)
	}
}

func TestSearchFiltersLive(t *testing.T) {
	t.Parallel()

	h := newHarness(t, newBackend(), Options{})

	h.press("/")
	if h.model.Focus() != FocusSearch {
		t.Fatalf("focus = %v, want search", h.model.Focus())
	}
	h.typeText("sec")
	screen := h.screen()
	if !strings.Contains(screen, "Secret") || strings.Contains(screen, "Lobby") {
		t.Errorf("search for sec:\n%s", screen)
	}

	h.press("enter")
	if h.model.Focus() != FocusList {
		t.Errorf("focus after enter = %v, want list", h.model.Focus())
	}
	if term := h.model.directory.Criteria().SearchTerm; term != "sec" {
		t.Errorf("term after enter = %q, want sec", term)
	}

	h.press("/", "esc")
	if term := h.model.directory.Criteria().SearchTerm; term != "" {
		t.Errorf("term after esc = %q, want empty", term)
	}
	if h.model.Focus() != FocusSearch {
		t.Errorf("first esc should only clear the term")
	}
	h.press("esc")
	if h.model.Focus() != FocusList {
		t.Errorf("second esc should leave search, focus = %v", h.model.Focus())
	}
}

func TestCycleStatus(t *testing.T) {
	t.Parallel()

	h := newHarness(t, newBackend(), Options{})

	h.press("s")
	if screen := h.screen(); !strings.Contains(screen, "Lobby") || strings.Contains(screen, "Secret") {
		t.Errorf("public filter:\n%s", screen)
	}
	h.press("s")
	if screen := h.screen(); strings.Contains(screen, "Lobby") || !strings.Contains(screen, "Secret") {
		t.Errorf("protected filter:\n%s", screen)
	}
	h.press("s")
	if status := h.model.directory.Criteria().Status; status != room.StatusAll {
		t.Errorf("status after three presses = %v, want all", status)
	}
}

func TestPagingAndSelection(t *testing.T) {
	t.Parallel()

	backend := newBackend()
	backend.rooms = testutil.NumberedRooms(25)
	h := newHarness(t, backend, Options{})

	h.press("l")
	if page := h.model.directory.View().Page.CurrentPage; page != 2 {
		t.Fatalf("page after l = %d, want 2", page)
	}
	if selected, _ := h.model.selectedRoom(); selected.ID != "r11" {
		t.Errorf("selected = %q, want r11", selected.ID)
	}

	for range 9 {
		h.press("j")
	}
	if selected, _ := h.model.selectedRoom(); selected.ID != "r20" {
		t.Fatalf("selected = %q, want r20", selected.ID)
	}
	h.press("j")
	if selected, _ := h.model.selectedRoom(); selected.ID != "r21" {
		t.Errorf("moving down from the last row selected %q, want r21 on the next page", selected.ID)
	}
	h.press("k")
	if selected, _ := h.model.selectedRoom(); selected.ID != "r20" {
		t.Errorf("moving up from the first row selected %q, want r20", selected.ID)
	}
}

func TestJoinPublicRoomAsksForUsername(t *testing.T) {
	t.Parallel()

	backend := newBackend()
	h := newHarness(t, backend, Options{})

	h.press("enter")
	if !h.model.modalOpen(modalUsername) {
		t.Fatalf("expected the username prompt, focus = %v", h.model.Focus())
	}
	h.press("enter")
	if h.model.modal.Error() != joinflow.ErrBlankUsername.Error() {
		t.Errorf("blank username error = %q", h.model.modal.Error())
	}
	if len(backend.joins) != 0 {
		t.Fatalf("blank username reached the backend")
	}

	h.typeText("ana")
	h.press("enter")

	if !h.quit {
		t.Fatal("program did not quit after an accepted join")
	}
	destination, ok := h.model.Destination()
	if !ok {
		t.Fatal("no destination after an accepted join")
	}
	if destination.URL != "http://rooms.test/chat/A1?username=ana" {
		t.Errorf("destination = %q", destination.URL)
	}
	if h.model.directory.Mounted() {
		t.Error("directory still mounted after handoff")
	}
}

func TestProtectedRoomRetriesPassword(t *testing.T) {
	t.Parallel()

	backend := newBackend()
	h := newHarness(t, backend, Options{Username: "bea"})

	h.press("j", "enter")
	if !h.model.modalOpen(modalPassword) {
		t.Fatalf("expected the password prompt, focus = %v", h.model.Focus())
	}
	if !strings.Contains(h.screen(), "joining as bea") {
		t.Errorf("password prompt does not name the user:\n%s", h.screen())
	}

	h.typeText("nope")
	h.press("enter")
	if !h.model.modalOpen(modalPassword) {
		t.Fatalf("wrong password closed the prompt")
	}
	if h.model.modal.Error() != "Wrong password!" {
		t.Errorf("prompt error = %q, want the backend message", h.model.modal.Error())
	}
	if h.model.modal.Value(0) != "" {
		t.Errorf("rejected password kept in the prompt")
	}

	h.typeText("hunter2")
	h.press("enter")
	destination, ok := h.model.Destination()
	if !ok || destination.Handoff.RoomID != "B2" || destination.Handoff.Username != "bea" {
		t.Errorf("destination = %+v, %v", destination, ok)
	}
}

func TestEscapeCancelsJoin(t *testing.T) {
	t.Parallel()

	h := newHarness(t, newBackend(), Options{})

	h.press("enter", "esc")
	if h.model.Focus() != FocusList {
		t.Errorf("focus after esc = %v, want list", h.model.Focus())
	}
	if phase := h.model.join.Phase(); phase != joinflow.PhaseIdle {
		t.Errorf("join phase after esc = %v, want idle", phase)
	}
}

func TestRefusedJoinShowsNotice(t *testing.T) {
	t.Parallel()

	backend := newBackend()
	delete(backend.passwords, "A1")
	h := newHarness(t, backend, Options{Username: "ana"})

	h.press("enter")
	if !strings.Contains(h.screen(), "Room not found") {
		t.Fatalf("refusal not shown:\n%s", h.screen())
	}
	if _, ok := h.model.Destination(); ok {
		t.Error("refused join produced a destination")
	}

	fired := fireNext[noticeFadeMsg](h)
	if fired.delay != defaultNoticeFade {
		t.Errorf("fade delay = %s, want %s", fired.delay, defaultNoticeFade)
	}
	if strings.Contains(h.screen(), "Room not found") {
		t.Errorf("notice survived its fade:\n%s", h.screen())
	}
}

func TestNewerNoticeOutlivesOlderFade(t *testing.T) {
	t.Parallel()

	h := newHarness(t, newBackend(), Options{})
	h.send(logRecordMsg{Summary: "first", Level: zerolog.ErrorLevel})
	h.send(logRecordMsg{Summary: "second", Level: zerolog.ErrorLevel})

	fireNext[noticeFadeMsg](h)
	if !strings.Contains(h.screen(), "second") {
		t.Errorf("the first notice's fade cleared the second:\n%s", h.screen())
	}
}

func TestDirectJoinForm(t *testing.T) {
	t.Parallel()

	backend := newBackend()
	h := newHarness(t, backend, Options{})

	h.press("i")
	if !h.model.modalOpen(modalDirectJoin) {
		t.Fatalf("expected the direct-join form, focus = %v", h.model.Focus())
	}
	h.press("enter")
	if h.model.modal.Error() != joinflow.ErrBlankRoomID.Error() {
		t.Errorf("blank room id error = %q", h.model.modal.Error())
	}

	h.typeText("B2")
	h.press("tab")
	h.typeText("cy")
	h.press("tab")
	h.typeText("hunter2")
	h.press("enter")

	destination, ok := h.model.Destination()
	if !ok || destination.URL != "http://rooms.test/chat/B2?username=cy" {
		t.Errorf("destination = %+v, %v", destination, ok)
	}
}

func TestThrottledDirectJoinKeepsForm(t *testing.T) {
	t.Parallel()

	backend := newBackend()
	fake := clock.Fake(testNow)
	h := newHarness(t, backend, Options{
		Clock:    fake,
		Throttle: joinflow.NewThrottle(1, time.Minute, fake),
	})

	h.press("i")
	h.typeText("B2")
	h.press("tab")
	h.typeText("cy")
	h.press("enter")
	// Wrong (empty) password: the flow now asks for it.
	if !h.model.modalOpen(modalPassword) {
		t.Fatalf("expected a password challenge, focus = %v", h.model.Focus())
	}
	h.typeText("hunter2")
	h.press("enter")
	if h.model.modal.Error() != joinflow.ErrThrottled.Error() {
		t.Errorf("second attempt error = %q, want throttled", h.model.modal.Error())
	}
	if h.model.modal.Value(0) != "hunter2" {
		t.Errorf("throttled prompt lost the typed password")
	}
	if len(backend.joins) != 1 {
		t.Errorf("joins = %v, want one request", backend.joins)
	}
}

func TestCreateRoomThenJoin(t *testing.T) {
	t.Parallel()

	backend := newBackend()
	h := newHarness(t, backend, Options{})

	h.press("c")
	h.typeText("  Den ")
	h.press("tab")
	h.typeText("cy")
	h.press("enter")

	if len(backend.created) != 1 || backend.created[0].Name != "Den" {
		t.Fatalf("created = %+v", backend.created)
	}
	if backend.lists != 2 {
		t.Errorf("lists = %d, want a refresh after creating", backend.lists)
	}
	if !strings.Contains(h.screen(), "Den") {
		t.Errorf("created room not listed:\n%s", h.screen())
	}
	if !h.model.modalOpen(modalJoinCreated) {
		t.Fatalf("expected the join offer, focus = %v", h.model.Focus())
	}

	h.press("enter")
	destination, ok := h.model.Destination()
	if !ok || destination.URL != "http://rooms.test/chat/new1?username=cy" {
		t.Errorf("destination = %+v, %v", destination, ok)
	}
}

func TestCreateDuringPollRefetchesAfterIt(t *testing.T) {
	t.Parallel()

	backend := newBackend()
	h := newHarness(t, backend, Options{})

	// A poll starts and takes its snapshot before the room exists.
	poll := h.model.directory.Tick()
	if poll == nil {
		t.Fatal("poll did not start")
	}
	stale := poll.Run(context.Background())

	h.press("c")
	h.typeText("Den")
	h.press("tab")
	h.typeText("cy")
	h.press("enter")
	if backend.lists != 2 {
		t.Fatalf("lists = %d, want no second fetch while the poll is in flight", backend.lists)
	}

	h.send(fetchResultMsg{result: stale})
	if backend.lists != 3 {
		t.Errorf("lists = %d, want a fetch after the stale poll landed", backend.lists)
	}
	if !strings.Contains(h.screen(), "Den") {
		t.Errorf("created room not listed after the follow-up fetch:\n%s", h.screen())
	}

	// The follow-up is issued once.
	fireNext[pollTickMsg](h)
	if backend.lists != 4 {
		t.Errorf("lists = %d, want only the regular poll", backend.lists)
	}
}

func TestCreateRoomValidatesLocally(t *testing.T) {
	t.Parallel()

	backend := newBackend()
	h := newHarness(t, backend, Options{})

	h.press("c", "enter")
	if h.model.modal.Error() != "name: room name is required" {
		t.Errorf("validation error = %q", h.model.modal.Error())
	}
	h.typeText(strings.Repeat("x", room.MaxNameLength))
	h.press("tab")
	h.press("enter")
	if !strings.HasPrefix(h.model.modal.Error(), "creator:") {
		t.Errorf("validation error = %q, want the creator rule", h.model.modal.Error())
	}
	if h.model.modal.Focused() != createCreatorField {
		t.Errorf("focus = field %d, want creator", h.model.modal.Focused())
	}
	if len(backend.created) != 0 {
		t.Errorf("invalid draft reached the backend: %+v", backend.created)
	}
}

func TestCreateRoomRejectionReopensForm(t *testing.T) {
	t.Parallel()

	backend := newBackend()
	backend.createErr = &roomclient.Rejection{Op: "create room", StatusCode: 200, Message: "Room name already taken"}
	h := newHarness(t, backend, Options{Username: "cy"})

	h.press("c")
	h.typeText("Lobby")
	h.press("enter")

	if !h.model.modalOpen(modalCreate) {
		t.Fatalf("rejection did not reopen the form, focus = %v", h.model.Focus())
	}
	if h.model.modal.Error() != "Room name already taken" {
		t.Errorf("form error = %q, want the backend message verbatim", h.model.modal.Error())
	}
	if h.model.modal.Value(createNameField) != "Lobby" || h.model.modal.Value(createCreatorField) != "cy" {
		t.Errorf("form lost the draft: name %q creator %q",
			h.model.modal.Value(createNameField), h.model.modal.Value(createCreatorField))
	}
}

func TestQuit(t *testing.T) {
	t.Parallel()

	h := newHarness(t, newBackend(), Options{})
	h.press("q")
	if !h.quit {
		t.Fatal("q did not quit")
	}
	if h.model.View() != "" {
		t.Errorf("view after quit = %q, want empty", h.model.View())
	}
	if _, ok := h.model.Destination(); ok {
		t.Error("quitting without a join produced a destination")
	}

	lists := h.model.directory.View().Page.TotalRooms
	fireNext[pollTickMsg](h)
	if h.model.directory.View().Page.TotalRooms != lists {
		t.Error("poll after quit changed the directory")
	}
}

func TestSpinnerStopsWhenIdle(t *testing.T) {
	t.Parallel()

	h := newHarness(t, newBackend(), Options{})
	isSpin := func(message tea.Msg) bool {
		_, ok := message.(spinTickMsg)
		return ok
	}
	for h.pending(isSpin) > 0 {
		fireNext[spinTickMsg](h)
	}
	if h.model.spinning {
		t.Error("spinner still marked running with nothing in flight")
	}
	if status := h.model.statusLine(); status != "" {
		t.Errorf("status line = %q, want empty when idle", status)
	}
}
