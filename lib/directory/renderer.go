// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package directory

import (
	"time"

	"github.com/bureau-foundation/lobby/lib/viewport"
)

// View is everything a renderer may show about the directory.
type View struct {
	Page   VisiblePage
	State  State
	Layout viewport.Layout

	// Err is the most recent fetch failure. It stays set while the
	// controller is in StateError and clears on the next success.
	Err error

	// UpdatedAt is when the displayed list was fetched. Zero before
	// the first successful fetch.
	UpdatedAt time.Time
}

// Loaded reports whether any listing has been received.
func (view View) Loaded() bool { return !view.UpdatedAt.IsZero() }

// Frame carries the host-side facts a renderer needs that are not
// directory state.
type Frame struct {
	// Width is the number of columns available.
	Width int

	// Selected is the index into View.Page.Rooms of the highlighted
	// room, or -1 for none.
	Selected int

	// Now anchors relative timestamps.
	Now time.Time

	// Hot holds the ids of rooms that appeared since the previous
	// refresh. Nil when the host does not track arrivals.
	Hot map[string]bool
}

// Renderer projects a view into text. Implementations are pure: the
// same View and Frame always produce the same output.
type Renderer interface {
	Render(view View, frame Frame) string
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(view View, frame Frame) string

func (function RendererFunc) Render(view View, frame Frame) string { return function(view, frame) }

// Renderers pairs a renderer with each viewport mode.
type Renderers struct {
	Compact Renderer
	Full    Renderer
}

// For returns the renderer for mode.
func (renderers Renderers) For(mode viewport.Mode) Renderer {
	if mode == viewport.Compact {
		return renderers.Compact
	}
	return renderers.Full
}
