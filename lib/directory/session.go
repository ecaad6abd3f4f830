// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bureau-foundation/lobby/lib/clock"
)

// DefaultPollInterval is how often a mounted directory refetches.
const DefaultPollInterval = 30 * time.Second

// Session hosts a ListController without a terminal UI. All
// controller calls happen on the goroutine running Run; Resize only
// enqueues work for it.
type Session struct {
	controller *ListController
	clock      clock.Clock
	interval   time.Duration
	logger     zerolog.Logger
	onFrame    func(string)

	events  chan func()
	results chan FetchResult
	done    chan struct{}

	// Owned by the Run goroutine.
	width int
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithClock sets the clock driving polls and resize debouncing.
func WithClock(source clock.Clock) SessionOption {
	return func(session *Session) { session.clock = source }
}

// WithPollInterval overrides DefaultPollInterval.
func WithPollInterval(interval time.Duration) SessionOption {
	return func(session *Session) { session.interval = interval }
}

// WithSessionLogger sets the logger.
func WithSessionLogger(logger zerolog.Logger) SessionOption {
	return func(session *Session) { session.logger = logger }
}

// WithFrames registers the function that receives each rendered
// frame. It runs on the session goroutine.
func WithFrames(onFrame func(frame string)) SessionOption {
	return func(session *Session) { session.onFrame = onFrame }
}

// NewSession returns a session for controller, initially width
// columns wide. Call Run to start it.
func NewSession(controller *ListController, width int, options ...SessionOption) *Session {
	session := &Session{
		controller: controller,
		clock:      clock.Real(),
		interval:   DefaultPollInterval,
		logger:     zerolog.Nop(),
		onFrame:    func(string) {},
		events:     make(chan func(), 16),
		results:    make(chan FetchResult, 1),
		done:       make(chan struct{}),
		width:      width,
	}
	for _, option := range options {
		option(session)
	}
	return session
}

// Run mounts the directory, polls until ctx is cancelled, and then
// unmounts it. It returns nil on cancellation.
func (session *Session) Run(ctx context.Context) error {
	defer close(session.done)

	ticker := session.clock.NewTicker(session.interval)
	defer ticker.Stop()

	session.controller.ApplyWidth(session.width)
	session.start(ctx, session.controller.Mount())
	session.render()

	for {
		select {
		case <-ctx.Done():
			session.controller.Unmount()
			return nil

		case <-ticker.C:
			if fetch := session.controller.Tick(); fetch != nil {
				session.start(ctx, fetch)
				session.render()
			}

		case result := <-session.results:
			if session.controller.Complete(result) {
				session.render()
			}

		case event := <-session.events:
			event()
			session.render()
		}
	}
}

// start runs fetch on its own goroutine and routes the result back to
// the loop.
func (session *Session) start(ctx context.Context, fetch *Fetch) {
	if fetch == nil {
		return
	}
	go func() {
		result := fetch.Run(ctx)
		select {
		case session.results <- result:
		case <-session.done:
		}
	}()
}

func (session *Session) render() {
	session.onFrame(session.controller.Render(Frame{
		Width:    session.width,
		Selected: -1,
		Now:      session.clock.Now(),
	}))
}

// post enqueues event for the loop. Events posted after Run has
// returned are dropped.
func (session *Session) post(event func()) {
	select {
	case session.events <- event:
	case <-session.done:
	}
}

// Resize reports a new terminal width. Bursts are coalesced: the
// layout is re-evaluated once the quiet window passes without another
// Resize.
func (session *Session) Resize(width int) {
	session.post(func() {
		session.width = width
		token := session.controller.ObserveWidth(width)
		session.clock.AfterFunc(session.controller.QuietWindow(), func() {
			session.post(func() { session.controller.Settle(token) })
		})
	})
}
