// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package roomview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/bureau-foundation/lobby/lib/directory"
	"github.com/bureau-foundation/lobby/lib/room"
)

// CardRenderer draws one bordered card per room, stacked vertically.
// It is the Compact layout.
type CardRenderer struct {
	Styles Styles
}

// minCardWidth keeps a card legible on very narrow terminals; the
// caller's clipping takes over below it.
const minCardWidth = 20

// Render implements directory.Renderer.
func (renderer CardRenderer) Render(view directory.View, frame directory.Frame) string {
	styles := renderer.Styles
	if body, ok := placeholder(view, styles); ok {
		return compose(frame.Width, header(view, styles), body, footer(view, frame, styles))
	}

	width := max(frame.Width, minCardWidth)
	cards := make([]string, 0, len(view.Page.Rooms))
	for index, entry := range view.Page.Rooms {
		cards = append(cards, renderer.card(entry, index == frame.Selected, frame, view.Page.Criteria.SearchTerm, width))
	}
	return compose(frame.Width, header(view, styles), strings.Join(cards, "\n"), footer(view, frame, styles))
}

func (renderer CardRenderer) card(entry room.Room, selected bool, frame directory.Frame, term string, width int) string {
	styles := renderer.Styles
	// Border takes one column each side and padding one more.
	inner := width - 4

	base := styles.Normal
	if !entry.IsActive {
		base = styles.Inactive
	}
	title := highlight(entry.Name, term, base.Bold(true), styles)
	if entry.HasPassword {
		title = lockGlyph + " " + title
	}
	if selected {
		title = "› " + title
	}

	lines := []string{
		title,
		base.Render("by ") + highlight(entry.Creator, term, base, styles) +
			styles.Faint.Render(" · "+plural(entry.UserCount, "user", "users")+
				" · "+plural(entry.MessageCount, "message", "messages")),
		styles.access(entry.HasPassword, entry.IsActive).Render(accessLabel(entry)) +
			styles.Faint.Render(" · "+RelativeTime(entry.CreatedAt, frame.Now)+" · "+entry.ID),
	}
	for index, line := range lines {
		if ansi.StringWidth(line) > inner {
			lines[index] = ansi.Truncate(line, inner, "…")
		}
	}

	border := styles.Border.GetForeground()
	switch {
	case selected:
		border = styles.Theme.AccentColor
	case frame.Hot[entry.ID]:
		border = styles.Theme.HotAccent
	}
	box := styles.Normal.
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1).
		Width(width - 2)
	if !entry.IsActive {
		box = box.Faint(true)
	}
	return box.Render(strings.Join(lines, "\n"))
}
