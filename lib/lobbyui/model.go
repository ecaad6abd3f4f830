// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lobbyui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/bureau-foundation/lobby/lib/clock"
	"github.com/bureau-foundation/lobby/lib/directory"
	"github.com/bureau-foundation/lobby/lib/joinflow"
	"github.com/bureau-foundation/lobby/lib/room"
	"github.com/bureau-foundation/lobby/lib/roomview"
	"github.com/bureau-foundation/lobby/lib/tui"
	"github.com/bureau-foundation/lobby/lib/viewport"
)

// Backend is the room service the browser talks to.
// roomclient.Client implements it.
type Backend interface {
	directory.Lister
	joinflow.Joiner
	CreateRoom(ctx context.Context, draft room.Draft) (string, error)
	Resolve(reference string) (string, error)
}

// Options configures a Model. Zero fields take the defaults noted.
type Options struct {
	// Viewport is the layout policy. Default: viewport.DefaultConfig().
	Viewport viewport.Config

	// PollInterval between background refreshes. Default: 30s.
	PollInterval time.Duration

	// NoticeFade is how long a status-line notice stays. Default: 5s.
	NoticeFade time.Duration

	// Username skips the username prompt when set.
	Username string

	// Throttle limits join attempts per room. Nil disables it.
	Throttle *joinflow.Throttle

	// Theme colors the browser. Default: tui.DefaultTheme.
	Theme tui.Theme

	// Clock anchors relative times and arrival highlighting.
	// Default: clock.Real().
	Clock clock.Clock

	// Logger receives diagnostics. Nil discards them.
	Logger *zerolog.Logger

	// Context bounds every backend request. Default:
	// context.Background().
	Context context.Context
}

const (
	defaultPollInterval = 30 * time.Second
	defaultNoticeFade   = 5 * time.Second

	// heatTickInterval is how often arrival highlighting is rechecked
	// while any room glows.
	heatTickInterval = time.Second
)

// FocusRegion identifies which part of the browser receives keys.
type FocusRegion int

const (
	FocusList FocusRegion = iota
	FocusSearch
	FocusModal
)

// modalKind says what submitting the open modal means.
type modalKind int

const (
	modalNone modalKind = iota
	modalUsername
	modalPassword
	modalDirectJoin
	modalCreate
	modalJoinCreated
)

// Destination is where the browser sends the user after an accepted
// join.
type Destination struct {
	Handoff joinflow.Handoff

	// URL is the chat page, absolute against the backend root.
	URL string
}

// createdRoom remembers the last room this session created, for the
// "join it now" offer.
type createdRoom struct {
	id    string
	draft room.Draft
}

// Model is the bubbletea model of the room browser. The directory and
// join controllers it wraps are only touched from Update, so the
// single-threaded discipline they require holds.
type Model struct {
	backend   Backend
	directory *directory.ListController
	join      *joinflow.Controller

	keys    KeyMap
	theme   tui.Theme
	help    help.Model
	spinner spinner.Model
	search  textinput.Model

	focus     FocusRegion
	modal     tui.FormModal
	modalKind modalKind

	width, height int
	sized         bool

	// selected indexes the rooms of the visible page.
	selected int

	clock        clock.Clock
	pollInterval time.Duration
	noticeFade   time.Duration

	notice         *notice
	noticeSequence uint64

	heat        *tui.HeatTracker
	heatTicking bool

	// refetch asks for another fetch once the one in flight lands. Set
	// when a refresh was wanted but the list was already loading.
	refetch bool

	creating         bool
	createGeneration uint64
	created          *createdRoom

	spinning     bool
	spinSequence uint64

	destination *Destination
	quitting    bool

	ctx    context.Context
	logger zerolog.Logger

	// schedule delivers message after delay. Every timed event of the
	// browser goes through it.
	schedule func(delay time.Duration, message tea.Msg) tea.Cmd
}

// NewModel builds the browser over backend. The directory mounts and
// the first fetch starts when the program calls Init.
func NewModel(backend Backend, options Options) Model {
	if options.Viewport == (viewport.Config{}) {
		options.Viewport = viewport.DefaultConfig()
	}
	if options.PollInterval <= 0 {
		options.PollInterval = defaultPollInterval
	}
	if options.NoticeFade <= 0 {
		options.NoticeFade = defaultNoticeFade
	}
	if options.Theme == (tui.Theme{}) {
		options.Theme = tui.DefaultTheme
	}
	if options.Clock == nil {
		options.Clock = clock.Real()
	}
	if options.Context == nil {
		options.Context = context.Background()
	}
	logger := zerolog.Nop()
	if options.Logger != nil {
		logger = *options.Logger
	}

	styles := roomview.NewStyles(lipgloss.DefaultRenderer(), options.Theme)
	controller := directory.NewListController(
		backend,
		viewport.NewPolicy(options.Viewport),
		roomview.Renderers(styles),
		directory.WithControllerClock(options.Clock),
		directory.WithControllerLogger(logger),
	)
	joinOptions := []joinflow.Option{
		joinflow.WithUsername(options.Username),
		joinflow.WithLogger(logger),
	}
	if options.Throttle != nil {
		joinOptions = append(joinOptions, joinflow.WithThrottle(options.Throttle))
	}

	helpModel := help.New()
	helpModel.Styles.ShortKey = helpModel.Styles.ShortKey.Foreground(options.Theme.AccentColor)
	helpModel.Styles.ShortDesc = helpModel.Styles.ShortDesc.Foreground(options.Theme.HelpText)

	busy := spinner.New()
	busy.Spinner = spinner.Dot
	busy.Style = lipgloss.NewStyle().Foreground(options.Theme.AccentColor)

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "search name or creator"
	search.Cursor.SetMode(cursor.CursorStatic)
	search.PromptStyle = lipgloss.NewStyle().Foreground(options.Theme.AccentColor)

	return Model{
		backend:      backend,
		directory:    controller,
		join:         joinflow.NewController(backend, joinOptions...),
		keys:         DefaultKeyMap,
		theme:        options.Theme,
		help:         helpModel,
		spinner:      busy,
		search:       search,
		clock:        options.Clock,
		pollInterval: options.PollInterval,
		noticeFade:   options.NoticeFade,
		heat:         tui.NewHeatTracker(),
		ctx:          options.Context,
		logger:       logger,
		schedule:     tickAfter,
	}
}

func tickAfter(delay time.Duration, message tea.Msg) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg { return message })
}

// Init implements tea.Model. Mounts the directory, starts the first
// fetch, the polling timer, and the spinner.
func (model Model) Init() tea.Cmd {
	return tea.Batch(
		model.runFetch(model.directory.Mount()),
		model.schedule(model.pollInterval, pollTickMsg{}),
		model.schedule(model.spinner.Spinner.FPS, spinTickMsg{sequence: model.spinSequence}),
	)
}

// Destination returns where the user chose to go. It is set only when
// the program quit because a join was accepted.
func (model Model) Destination() (Destination, bool) {
	if model.destination == nil {
		return Destination{}, false
	}
	return *model.destination, true
}

// Focus returns the region receiving keys.
func (model Model) Focus() FocusRegion { return model.focus }

// Update implements tea.Model. Keys are routed by focus; everything
// else is an event from a command the model started.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		if model.quitting {
			return model, nil
		}
		switch model.focus {
		case FocusModal:
			return model.handleModalKeys(message)
		case FocusSearch:
			return model.handleSearchKeys(message)
		default:
			return model.handleListKeys(message)
		}

	case tea.WindowSizeMsg:
		return model.handleResize(message)

	case settleMsg:
		if model.directory.Settle(message.token) {
			model.selected = 0
		}
		model.clampSelection()

	case pollTickMsg:
		if !model.directory.Mounted() {
			return model, nil
		}
		command := model.fetch(model.directory.Tick())
		return model, tea.Batch(command, model.schedule(model.pollInterval, pollTickMsg{}))

	case fetchResultMsg:
		return model.handleFetchResult(message)

	case joinResultMsg:
		if !model.join.Complete(message.result) {
			return model, nil
		}
		command := model.syncJoin(nil, nil)
		return model, command

	case createResultMsg:
		return model.handleCreateResult(message)

	case heatTickMsg:
		if model.heat.HasHot(model.clock.Now()) {
			return model, model.schedule(heatTickInterval, heatTickMsg{})
		}
		model.heatTicking = false

	case spinTickMsg:
		return model.handleSpinTick(message)

	case noticeFadeMsg:
		if message.sequence == model.noticeSequence {
			model.notice = nil
		}

	case logRecordMsg:
		kind := noticeInfo
		if message.Level >= zerolog.WarnLevel {
			kind = noticeError
		}
		command := model.showNotice(kind, message.Summary)
		return model, command
	}
	return model, nil
}

// handleResize applies the first size at once and debounces the rest:
// every later size is observed, and only the one still newest after
// the quiet window is evaluated.
func (model Model) handleResize(message tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	model.width = message.Width
	model.height = message.Height
	model.help.Width = message.Width

	if !model.sized {
		model.sized = true
		model.directory.ApplyWidth(message.Width)
		model.clampSelection()
		return model, nil
	}

	token := model.directory.ObserveWidth(message.Width)
	quiet := model.directory.QuietWindow()
	if quiet <= 0 {
		if model.directory.Settle(token) {
			model.selected = 0
		}
		model.clampSelection()
		return model, nil
	}
	return model, model.schedule(quiet, settleMsg{token: token})
}

func (model Model) handleFetchResult(message fetchResultMsg) (tea.Model, tea.Cmd) {
	previous, hadSelection := model.selectedRoom()
	if !model.directory.Complete(message.result) {
		return model, nil
	}
	model.restoreSelection(previous.ID, hadSelection)

	var followUp tea.Cmd
	if model.refetch {
		model.refetch = false
		followUp = model.fetch(model.directory.Retry())
	}
	if message.result.Err != nil {
		return model, followUp
	}
	now := model.clock.Now()
	ids := make([]string, len(message.result.Rooms))
	for index, entry := range message.result.Rooms {
		ids[index] = entry.ID
	}
	model.heat.Observe(ids, now)
	if !model.heatTicking && model.heat.HasHot(now) {
		model.heatTicking = true
		return model, tea.Batch(followUp, model.schedule(heatTickInterval, heatTickMsg{}))
	}
	return model, followUp
}

// runFetch wraps a fetch as a command. Nil fetches (one already in
// flight, or not mounted) produce no command.
func (model Model) runFetch(fetch *directory.Fetch) tea.Cmd {
	if fetch == nil {
		return nil
	}
	ctx := model.ctx
	return func() tea.Msg {
		return fetchResultMsg{result: fetch.Run(ctx)}
	}
}

// fetch starts fetch and the spinner.
func (model *Model) fetch(fetch *directory.Fetch) tea.Cmd {
	if fetch == nil {
		return nil
	}
	return tea.Batch(model.runFetch(fetch), model.startSpinner())
}

func (model Model) runJoin(attempt *joinflow.Attempt) tea.Cmd {
	ctx := model.ctx
	return func() tea.Msg {
		return joinResultMsg{result: attempt.Run(ctx)}
	}
}

// selectedRoom returns the highlighted room of the visible page.
func (model Model) selectedRoom() (room.Room, bool) {
	rooms := model.directory.View().Page.Rooms
	if model.selected < 0 || model.selected >= len(rooms) {
		return room.Room{}, false
	}
	return rooms[model.selected], true
}

// restoreSelection keeps the highlight on the room with id when it is
// still on the visible page after a refresh.
func (model *Model) restoreSelection(id string, ok bool) {
	if ok {
		for index, entry := range model.directory.View().Page.Rooms {
			if entry.ID == id {
				model.selected = index
				return
			}
		}
	}
	model.clampSelection()
}

func (model *Model) clampSelection() {
	count := len(model.directory.View().Page.Rooms)
	model.selected = min(model.selected, count-1)
	model.selected = max(model.selected, 0)
}

// hotRooms returns the ids still glowing from a recent arrival.
func (model Model) hotRooms(now time.Time) map[string]bool {
	var hot map[string]bool
	for _, entry := range model.directory.View().Page.Rooms {
		if model.heat.Heat(entry.ID, now) > 0 {
			if hot == nil {
				hot = make(map[string]bool)
			}
			hot[entry.ID] = true
		}
	}
	return hot
}

// View implements tea.Model.
func (model Model) View() string {
	if model.quitting {
		return ""
	}
	if !model.sized {
		return "Loading rooms…"
	}

	var sections []string
	if model.focus == FocusSearch || model.directory.Criteria().SearchTerm != "" {
		sections = append(sections, model.search.View())
	}

	now := model.clock.Now()
	selected := model.selected
	if _, ok := model.selectedRoom(); !ok {
		selected = -1
	}
	sections = append(sections, model.directory.Render(directory.Frame{
		Width:    model.width,
		Selected: selected,
		Now:      now,
		Hot:      model.hotRooms(now),
	}))

	if status := model.statusLine(); status != "" {
		sections = append(sections, status)
	}
	sections = append(sections, model.help.View(model.keys))

	output := strings.Join(sections, "\n")
	if model.focus == FocusModal {
		lines, anchorX, anchorY := model.modal.Render(model.width, model.height)
		output = tui.SpliceOverlay(output, lines, anchorX, anchorY)
	}
	return output
}
