// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bureau-foundation/lobby/lib/clock"
	"github.com/bureau-foundation/lobby/lib/room"
	"github.com/bureau-foundation/lobby/lib/viewport"
)

// State is the fetch lifecycle of a ListController.
type State int

const (
	// StateIdle: not mounted, or mounted but never fetched.
	StateIdle State = iota

	// StateLoading: a listing fetch is outstanding. Previously loaded
	// rooms remain visible.
	StateLoading

	// StateReady: the last fetch succeeded.
	StateReady

	// StateError: the last fetch failed. Previously loaded rooms
	// remain visible beneath the error.
	StateError
)

func (state State) String() string {
	switch state {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(state))
	}
}

// Lister fetches the full room listing. roomclient.Client implements
// it.
type Lister interface {
	ListRooms(ctx context.Context) ([]room.Room, error)
}

// Fetch is one pending listing request. Run it off the event loop and
// pass its result to ListController.Complete.
type Fetch struct {
	generation uint64
	lister     Lister
}

// Run performs the request. It is safe to call from any goroutine.
func (fetch *Fetch) Run(ctx context.Context) FetchResult {
	rooms, err := fetch.lister.ListRooms(ctx)
	return FetchResult{generation: fetch.generation, Rooms: rooms, Err: err}
}

// FetchResult is the outcome of a Fetch.
type FetchResult struct {
	generation uint64

	Rooms []room.Room
	Err   error
}

// ListController drives the directory: fetch lifecycle, filtering,
// pagination, and layout. It is not safe for concurrent use; every
// method must be called from the host's event loop.
type ListController struct {
	store     *Store
	policy    *viewport.Policy
	lister    Lister
	renderers Renderers
	clock     clock.Clock
	logger    zerolog.Logger

	state     State
	err       error
	updatedAt time.Time

	mounted    bool
	inFlight   bool
	generation uint64
}

// ControllerOption configures a ListController.
type ControllerOption func(*ListController)

// WithControllerClock sets the clock used to stamp successful fetches.
func WithControllerClock(source clock.Clock) ControllerOption {
	return func(controller *ListController) { controller.clock = source }
}

// WithControllerLogger sets the logger.
func WithControllerLogger(logger zerolog.Logger) ControllerOption {
	return func(controller *ListController) { controller.logger = logger }
}

// NewListController returns an unmounted controller in StateIdle. The
// store starts with the policy's current page size.
func NewListController(lister Lister, policy *viewport.Policy, renderers Renderers, options ...ControllerOption) *ListController {
	controller := &ListController{
		store:     NewStore(policy.Layout().ItemsPerPage),
		policy:    policy,
		lister:    lister,
		renderers: renderers,
		clock:     clock.Real(),
		logger:    zerolog.Nop(),
	}
	for _, option := range options {
		option(controller)
	}
	return controller
}

// Mount marks the directory as on screen and starts the first fetch.
// Mounting an already mounted controller only retries.
func (controller *ListController) Mount() *Fetch {
	if !controller.mounted {
		controller.mounted = true
		controller.generation++
		controller.inFlight = false
	}
	return controller.refresh("mount")
}

// Unmount marks the directory as torn down. Results of fetches started
// before Unmount are discarded when they arrive. Data already loaded
// is kept for a later Mount.
func (controller *ListController) Unmount() {
	controller.mounted = false
	controller.inFlight = false
	controller.generation++
	if controller.state == StateLoading {
		controller.state = StateIdle
	}
}

// Mounted reports whether the directory is on screen.
func (controller *ListController) Mounted() bool { return controller.mounted }

// Retry starts a fetch on user request. Nil when a fetch is already
// outstanding or the directory is not mounted.
func (controller *ListController) Retry() *Fetch { return controller.refresh("retry") }

// Tick starts a polling fetch, with the same rules as Retry.
func (controller *ListController) Tick() *Fetch { return controller.refresh("poll") }

func (controller *ListController) refresh(reason string) *Fetch {
	if !controller.mounted {
		return nil
	}
	if controller.inFlight {
		controller.logger.Debug().Str("reason", reason).Msg("listing fetch already in flight")
		return nil
	}
	controller.inFlight = true
	controller.state = StateLoading
	controller.logger.Debug().Str("reason", reason).Uint64("generation", controller.generation).Msg("fetching room list")
	return &Fetch{generation: controller.generation, lister: controller.lister}
}

// Complete applies a fetch result and reports whether it was applied.
// Results from an earlier mount, or arriving while unmounted, are
// discarded. On failure the previously loaded rooms stay in place.
func (controller *ListController) Complete(result FetchResult) bool {
	if !controller.mounted || result.generation != controller.generation {
		controller.logger.Debug().
			Uint64("result_generation", result.generation).
			Uint64("generation", controller.generation).
			Msg("discarding stale room list")
		return false
	}
	controller.inFlight = false

	if result.Err != nil {
		controller.state = StateError
		controller.err = result.Err
		controller.logger.Warn().Err(result.Err).Msg("room list fetch failed")
		return true
	}

	controller.store.ReplaceAll(result.Rooms)
	controller.state = StateReady
	controller.err = nil
	controller.updatedAt = controller.clock.Now()
	return true
}

// InFlight reports whether a listing fetch is outstanding.
func (controller *ListController) InFlight() bool { return controller.inFlight }

// State returns the fetch lifecycle state.
func (controller *ListController) State() State { return controller.state }

// SetSearchTerm filters by term and returns to page 1.
func (controller *ListController) SetSearchTerm(term string) {
	controller.store.SetSearchTerm(term)
}

// SetStatus filters by protection and returns to page 1.
func (controller *ListController) SetStatus(status room.StatusFilter) {
	controller.store.SetStatus(status)
}

// SetFilter replaces both criteria and returns to page 1.
func (controller *ListController) SetFilter(criteria room.Criteria) {
	controller.store.SetFilter(criteria)
}

// Criteria returns the active criteria.
func (controller *ListController) Criteria() room.Criteria { return controller.store.Criteria() }

// GoToPage moves to page if it exists.
func (controller *ListController) GoToPage(page int) bool { return controller.store.GoToPage(page) }

// NextPage advances one page if there is one.
func (controller *ListController) NextPage() bool { return controller.store.NextPage() }

// PrevPage goes back one page if there is one.
func (controller *ListController) PrevPage() bool { return controller.store.PrevPage() }

// Lookup finds a loaded room by id, ignoring the filter.
func (controller *ListController) Lookup(id string) (room.Room, bool) {
	return controller.store.Lookup(id)
}

// ApplyWidth evaluates width immediately. Hosts call it for the first
// size they learn, before any debouncing is useful. Reports whether the
// layout changed.
func (controller *ListController) ApplyWidth(width int) bool {
	layout, changed := controller.policy.Evaluate(width)
	if changed {
		controller.applyLayout(layout)
	}
	return changed
}

// ObserveWidth records a width from a resize burst. The host calls
// Settle with the returned token once the policy's quiet window has
// passed without a newer observation.
func (controller *ListController) ObserveWidth(width int) viewport.Token {
	return controller.policy.Observe(width)
}

// Settle evaluates the width recorded under token if it is still the
// latest. On a layout change the page size is updated (keeping the
// first visible room on screen) and the renderer switches.
func (controller *ListController) Settle(token viewport.Token) bool {
	layout, changed := controller.policy.Settle(token)
	if changed {
		controller.applyLayout(layout)
	}
	return changed
}

// QuietWindow is the resize debounce interval.
func (controller *ListController) QuietWindow() time.Duration {
	return controller.policy.QuietWindow()
}

// Layout returns the current display layout.
func (controller *ListController) Layout() viewport.Layout { return controller.policy.Layout() }

func (controller *ListController) applyLayout(layout viewport.Layout) {
	controller.store.SetItemsPerPage(layout.ItemsPerPage)
	controller.logger.Debug().
		Stringer("mode", layout.Mode).
		Int("items_per_page", layout.ItemsPerPage).
		Int("page", controller.store.CurrentPage()).
		Msg("layout changed")
}

// View derives the current view. It never touches the network.
func (controller *ListController) View() View {
	return View{
		Page:      controller.store.VisiblePage(),
		State:     controller.state,
		Layout:    controller.policy.Layout(),
		Err:       controller.err,
		UpdatedAt: controller.updatedAt,
	}
}

// Render paints the current view with the renderer for the current
// mode.
func (controller *ListController) Render(frame Frame) string {
	view := controller.View()
	renderer := controller.renderers.For(view.Layout.Mode)
	if renderer == nil {
		return view.Page.Summary()
	}
	return renderer.Render(view, frame)
}
