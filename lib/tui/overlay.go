// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// SpliceOverlay replaces a rectangular region of a rendered view with
// overlay lines, starting at (anchorX, anchorY) in screen coordinates.
// Truncation is ANSI-aware, so styling in the underlying view survives
// on both sides of the overlay. Overlay lines falling outside the view
// are dropped.
func SpliceOverlay(view string, overlayLines []string, anchorX, anchorY int) string {
	if len(overlayLines) == 0 {
		return view
	}

	viewLines := strings.Split(view, "\n")
	for len(viewLines) < anchorY+len(overlayLines) && anchorY >= 0 {
		// Short views (an empty directory, a one-line error) still
		// get the whole modal.
		viewLines = append(viewLines, "")
	}
	overlayWidth := ansi.StringWidth(overlayLines[0])

	for index, overlayLine := range overlayLines {
		row := anchorY + index
		if row < 0 || row >= len(viewLines) {
			continue
		}

		viewLine := viewLines[row]
		viewLineWidth := ansi.StringWidth(viewLine)

		var line strings.Builder
		if anchorX > 0 {
			prefix := ansi.Truncate(viewLine, anchorX, "")
			line.WriteString(prefix)
			if gap := anchorX - ansi.StringWidth(prefix); gap > 0 {
				line.WriteString(strings.Repeat(" ", gap))
			}
		}
		line.WriteString("\x1b[0m")
		line.WriteString(overlayLine)
		line.WriteString("\x1b[0m")

		if suffixStart := anchorX + overlayWidth; suffixStart < viewLineWidth {
			line.WriteString(ansi.TruncateLeft(viewLine, suffixStart, ""))
		}
		viewLines[row] = line.String()
	}

	return strings.Join(viewLines, "\n")
}

// CenterAnchor returns the top-left corner that centers a block of
// lines on a screen of the given size, clamped to the screen origin.
func CenterAnchor(lines []string, screenWidth, screenHeight int) (int, int) {
	width := 0
	for _, line := range lines {
		width = max(width, ansi.StringWidth(line))
	}
	return max(0, (screenWidth-width)/2), max(0, (screenHeight-len(lines))/2)
}

// PadOverlayLine pads styled content to innerWidth with
// background-colored spaces and adds one column of margin each side.
func PadOverlayLine(styledContent string, innerWidth int, backgroundStyle lipgloss.Style) string {
	rightPad := max(0, innerWidth-ansi.StringWidth(styledContent))
	return backgroundStyle.Render(" ") +
		styledContent +
		backgroundStyle.Render(strings.Repeat(" ", rightPad+1))
}
