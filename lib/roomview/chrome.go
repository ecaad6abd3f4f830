// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package roomview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"

	"github.com/bureau-foundation/lobby/lib/directory"
	"github.com/bureau-foundation/lobby/lib/room"
)

const lockGlyph = "🔒"

// header is the title line with a description of the active filter.
func header(view directory.View, styles Styles) string {
	title := styles.Title.Render("Rooms")
	if described := describeCriteria(view.Page.Criteria); described != "" {
		title += "  " + styles.Faint.Render(described)
	}
	return title
}

func describeCriteria(criteria room.Criteria) string {
	var parts []string
	if criteria.SearchTerm != "" {
		parts = append(parts, fmt.Sprintf("matching %q", criteria.SearchTerm))
	}
	if criteria.Status != room.StatusAll && criteria.Status != "" {
		parts = append(parts, criteria.Status.String()+" only")
	}
	return strings.Join(parts, " · ")
}

// placeholder returns the text shown instead of the room list, when
// there is no list to show.
func placeholder(view directory.View, styles Styles) (string, bool) {
	if !view.Loaded() {
		if view.State == directory.StateError {
			return styles.Error.Render("Could not load rooms: " + errorText(view.Err)), true
		}
		return styles.Faint.Render("Loading rooms…"), true
	}
	if view.Page.TotalRooms == 0 {
		return styles.Faint.Render("No rooms yet. Create one to get started."), true
	}
	if view.Page.TotalCount == 0 {
		return styles.Faint.Render("No rooms match the current filter."), true
	}
	return "", false
}

// footer is the pager summary, freshness, and any refresh failure.
func footer(view directory.View, frame directory.Frame, styles Styles) string {
	if !view.Loaded() {
		return ""
	}
	line := view.Page.Summary() + " · updated " + RelativeTime(room.At(view.UpdatedAt), frame.Now)
	if view.State == directory.StateLoading {
		line += " · refreshing"
	}
	rendered := styles.Faint.Render(line)
	if view.State == directory.StateError {
		rendered += "\n" + styles.Error.Render("Refresh failed: "+errorText(view.Err))
	}
	return rendered
}

func errorText(err error) string {
	if err == nil {
		return "unknown error"
	}
	return err.Error()
}

// accessLabel names a room's access and activity.
func accessLabel(entry room.Room) string {
	label := "public"
	if entry.HasPassword {
		label = lockGlyph + " protected"
	}
	if !entry.IsActive {
		label += " · inactive"
	}
	return label
}

func plural(count int, singular, pluralForm string) string {
	noun := pluralForm
	if count == 1 {
		noun = singular
	}
	return humanize.Comma(int64(count)) + " " + noun
}

// compose joins non-empty sections with newlines and clips every line
// to width. Zero width disables clipping.
func compose(width int, sections ...string) string {
	var lines []string
	for _, section := range sections {
		if section == "" {
			continue
		}
		for _, line := range strings.Split(section, "\n") {
			if width > 0 && ansi.StringWidth(line) > width {
				line = ansi.Truncate(line, width, "…")
			}
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
