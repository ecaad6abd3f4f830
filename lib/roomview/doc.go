// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package roomview renders the room directory. TableRenderer is the
// wide layout, one row per room in a lipgloss table. CardRenderer is
// the narrow layout, one bordered card per room. Both implement
// directory.Renderer and draw the same header, empty states, and pager
// footer, so switching layouts on resize changes only the room list.
//
// Renderers are pure: output depends only on the View, the Frame, and
// the Styles they were built with. Styles carry their own
// lipgloss.Renderer, which lets the CLI print with a color profile
// chosen by --color instead of the one detected on stdout.
package roomview
