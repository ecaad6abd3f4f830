// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the terminal building blocks shared by the
// room directory's renderers and its interactive model: the color
// theme, overlay splicing, form modals, search match highlighting,
// and the decaying glow for recently added rooms.
//
// Nothing here knows about fetching or paging. The directory and join
// controllers own state; this package only draws it.
package tui
