// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package roomview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/lobby/lib/directory"
	"github.com/bureau-foundation/lobby/lib/tui"
)

// highlight renders text in base with occurrences of the search term
// marked.
func highlight(text, term string, base lipgloss.Style, styles Styles) string {
	return tui.Highlight(text, term, base, base.Inherit(styles.Match))
}

// Renderers returns the table and card renderers sharing styles, ready
// for directory.NewListController.
func Renderers(styles Styles) directory.Renderers {
	return directory.Renderers{
		Compact: CardRenderer{Styles: styles},
		Full:    TableRenderer{Styles: styles},
	}
}
