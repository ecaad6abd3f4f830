// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package viewport maps the width of the terminal to a display mode
// and a page size.
//
// A Policy holds one width threshold. At or below it the directory is
// shown as compact cards with a small page size; above it as a full
// table with a larger one. Resize events arrive in bursts while a
// window is dragged, so the policy evaluates a burst once: Observe
// records each width and hands back a token, and the host calls Settle
// with that token after its own quiet-window timer fires. Only the
// newest token evaluates; older ones are stale and do nothing.
package viewport

import (
	"fmt"
	"time"
)

// Mode is the presentation variant.
type Mode int

const (
	// Full is the wide layout: one table row per room.
	Full Mode = iota

	// Compact is the narrow layout: one card per room.
	Compact
)

func (mode Mode) String() string {
	switch mode {
	case Compact:
		return "compact"
	case Full:
		return "full"
	default:
		return fmt.Sprintf("Mode(%d)", int(mode))
	}
}

// Layout is the outcome of an evaluation.
type Layout struct {
	Mode         Mode
	ItemsPerPage int
}

// Config parameterizes a Policy.
type Config struct {
	// Threshold is the widest width still treated as compact.
	Threshold int

	CompactItemsPerPage int
	FullItemsPerPage    int

	// QuietWindow is how long a burst of resizes must pause before the
	// host calls Settle.
	QuietWindow time.Duration
}

// DefaultConfig suits terminal widths: up to 100 columns gets four
// cards per page, anything wider a ten-row table.
func DefaultConfig() Config {
	return Config{
		Threshold:           100,
		CompactItemsPerPage: 4,
		FullItemsPerPage:    10,
		QuietWindow:         250 * time.Millisecond,
	}
}

// Validate rejects configurations the policy cannot honour.
func (config Config) Validate() error {
	if config.Threshold <= 0 {
		return fmt.Errorf("viewport threshold must be positive, got %d", config.Threshold)
	}
	if config.CompactItemsPerPage <= 0 || config.FullItemsPerPage <= 0 {
		return fmt.Errorf("viewport page sizes must be positive, got compact=%d full=%d",
			config.CompactItemsPerPage, config.FullItemsPerPage)
	}
	if config.QuietWindow < 0 {
		return fmt.Errorf("viewport quiet window must not be negative, got %s", config.QuietWindow)
	}
	return nil
}

// Token identifies one Observe call.
type Token uint64

// Policy is not safe for concurrent use.
type Policy struct {
	config Config

	current   Layout
	evaluated bool

	pendingWidth int
	latest       Token
}

// NewPolicy returns a policy that has not evaluated any width yet.
// Until the first evaluation Layout reports the full layout.
func NewPolicy(config Config) *Policy {
	return &Policy{
		config:  config,
		current: Layout{Mode: Full, ItemsPerPage: config.FullItemsPerPage},
	}
}

// Classify maps a width to a layout without touching policy state.
func (policy *Policy) Classify(width int) Layout {
	if width <= policy.config.Threshold {
		return Layout{Mode: Compact, ItemsPerPage: policy.config.CompactItemsPerPage}
	}
	return Layout{Mode: Full, ItemsPerPage: policy.config.FullItemsPerPage}
}

// Evaluate classifies width immediately and reports whether the result
// differs from the previous evaluation. The first evaluation counts as
// a change only when it differs from the initial full layout.
func (policy *Policy) Evaluate(width int) (Layout, bool) {
	next := policy.Classify(width)
	changed := next != policy.current
	policy.current = next
	policy.evaluated = true
	return next, changed
}

// Observe records width as the latest of a resize burst. The returned
// token supersedes every earlier one.
func (policy *Policy) Observe(width int) Token {
	policy.pendingWidth = width
	policy.latest++
	return policy.latest
}

// Settle evaluates the latest observed width if token is still the
// newest, and reports whether the layout changed. A stale token
// returns the current layout and false.
func (policy *Policy) Settle(token Token) (Layout, bool) {
	if token != policy.latest {
		return policy.current, false
	}
	return policy.Evaluate(policy.pendingWidth)
}

// Layout returns the layout of the last evaluation.
func (policy *Policy) Layout() Layout { return policy.current }

// Evaluated reports whether any width has been evaluated.
func (policy *Policy) Evaluated() bool { return policy.evaluated }

// QuietWindow returns the configured debounce interval.
func (policy *Policy) QuietWindow() time.Duration { return policy.config.QuietWindow }
