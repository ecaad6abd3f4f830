// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package roomview

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/bureau-foundation/lobby/lib/tui"
)

// Styles is the resolved set of lipgloss styles the renderers draw
// with, all bound to one lipgloss.Renderer.
type Styles struct {
	Theme tui.Theme

	Title     lipgloss.Style
	Normal    lipgloss.Style
	Faint     lipgloss.Style
	Header    lipgloss.Style
	Border    lipgloss.Style
	Selected  lipgloss.Style
	Hot       lipgloss.Style
	Match     lipgloss.Style
	Public    lipgloss.Style
	Protected lipgloss.Style
	Inactive  lipgloss.Style
	Error     lipgloss.Style
}

// NewStyles builds Styles for theme on renderer.
func NewStyles(renderer *lipgloss.Renderer, theme tui.Theme) Styles {
	return Styles{
		Theme:     theme,
		Title:     renderer.NewStyle().Bold(true).Foreground(theme.HeaderForeground),
		Normal:    renderer.NewStyle().Foreground(theme.NormalText),
		Faint:     renderer.NewStyle().Foreground(theme.FaintText),
		Header:    renderer.NewStyle().Bold(true).Foreground(theme.HeaderForeground),
		Border:    renderer.NewStyle().Foreground(theme.BorderColor),
		Selected:  renderer.NewStyle().Foreground(theme.SelectedForeground).Background(theme.SelectedBackground),
		Hot:       renderer.NewStyle().Background(theme.HotAccent),
		Match:     renderer.NewStyle().Underline(true).Background(theme.SearchHighlightBackground),
		Public:    renderer.NewStyle().Foreground(theme.PublicRoom),
		Protected: renderer.NewStyle().Foreground(theme.ProtectedRoom),
		Inactive:  renderer.NewStyle().Foreground(theme.InactiveRoom).Faint(true),
		Error:     renderer.NewStyle().Foreground(theme.NoticeError),
	}
}

// DefaultStyles uses the default theme on the stdout renderer.
func DefaultStyles() Styles {
	return NewStyles(lipgloss.DefaultRenderer(), tui.DefaultTheme)
}

// access returns the style for a room's access badge.
func (styles Styles) access(hasPassword, isActive bool) lipgloss.Style {
	switch {
	case !isActive:
		return styles.Inactive
	case hasPassword:
		return styles.Protected
	default:
		return styles.Public
	}
}
