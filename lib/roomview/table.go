// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package roomview

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/bureau-foundation/lobby/lib/directory"
)

// TableRenderer draws one row per room. It is the Full layout.
type TableRenderer struct {
	Styles Styles
}

var tableHeaders = []string{"", "Name", "Creator", "Access", "Users", "Messages", "Created", "ID"}

const (
	columnMarker = iota
	columnName
	columnCreator
	columnAccess
	columnUsers
	columnMessages
	columnCreated
	columnID
)

// Render implements directory.Renderer.
func (renderer TableRenderer) Render(view directory.View, frame directory.Frame) string {
	styles := renderer.Styles
	if body, ok := placeholder(view, styles); ok {
		return compose(frame.Width, header(view, styles), body, footer(view, frame, styles))
	}

	term := view.Page.Criteria.SearchTerm
	rooms := view.Page.Rooms
	rows := make([][]string, 0, len(rooms))
	for index, entry := range rooms {
		marker := " "
		if index == frame.Selected {
			marker = "›"
		}
		base := styles.Normal
		if !entry.IsActive {
			base = styles.Inactive
		}
		rows = append(rows, []string{
			marker,
			highlight(entry.Name, term, base, styles),
			highlight(entry.Creator, term, base, styles),
			styles.access(entry.HasPassword, entry.IsActive).Render(accessLabel(entry)),
			strconv.Itoa(entry.UserCount),
			strconv.Itoa(entry.MessageCount),
			RelativeTime(entry.CreatedAt, frame.Now),
			entry.ID,
		})
	}

	cell := styles.Normal.Padding(0, 1)
	grid := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(styles.Border).
		BorderColumn(false).
		BorderLeft(false).
		BorderRight(false).
		Headers(tableHeaders...).
		Rows(rows...).
		StyleFunc(func(row, column int) lipgloss.Style {
			if row == table.HeaderRow {
				return styles.Header.Padding(0, 1)
			}
			style := cell
			if row >= 0 && row < len(rooms) {
				entry := rooms[row]
				switch {
				case row == frame.Selected:
					style = styles.Selected.Padding(0, 1)
				case frame.Hot[entry.ID]:
					style = style.Inherit(styles.Hot)
				}
				if !entry.IsActive {
					style = style.Faint(true)
				}
			}
			switch column {
			case columnMarker:
				style = style.Padding(0, 0, 0, 1)
			case columnUsers, columnMessages:
				style = style.Align(lipgloss.Right)
			case columnCreated, columnID:
				style = style.Foreground(styles.Theme.FaintText)
			}
			return style
		})
	if frame.Width > 0 {
		grid = grid.Width(frame.Width)
	}

	return compose(frame.Width, header(view, styles), grid.String(), footer(view, frame, styles))
}
