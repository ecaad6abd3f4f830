// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// FieldSpec describes one input of a FormModal.
type FieldSpec struct {
	Label       string
	Placeholder string
	Value       string // Initial contents.
	Secret      bool   // Echo as bullets (passwords).
	CharLimit   int    // Zero means unlimited.
}

// FormModal is a centered overlay with one or more single-line inputs.
// Tab and the arrow keys move focus between fields; every other key
// goes to the focused input. The host handles enter and escape, since
// only it knows what submitting the form means.
type FormModal struct {
	Title string

	fields []FormField
	focus  int
	err    string
	theme  Theme
}

// FormField is a labeled input.
type FormField struct {
	Label string
	Input textinput.Model
}

// Modal chrome: 2 columns border + 2 columns padding horizontally.
// Inner width is clamped so short prompts do not stretch across wide
// terminals and long ones still fit narrow ones.
const (
	formModalChromeWidth  = 4
	formModalMinInner     = 24
	formModalMaxInner     = 56
	formModalScreenMargin = 2
)

// NewFormModal builds a modal with the first field focused.
func NewFormModal(title string, theme Theme, specs ...FieldSpec) FormModal {
	modal := FormModal{Title: title, theme: theme}
	for _, spec := range specs {
		input := textinput.New()
		input.Prompt = ""
		input.Placeholder = spec.Placeholder
		input.CharLimit = spec.CharLimit
		input.Cursor.SetMode(cursor.CursorStatic)
		input.SetValue(spec.Value)
		if spec.Secret {
			input.EchoMode = textinput.EchoPassword
			input.EchoCharacter = '•'
		}
		input.PromptStyle = lipgloss.NewStyle().Background(theme.ModalBackground)
		input.TextStyle = lipgloss.NewStyle().Foreground(theme.ModalForeground).Background(theme.ModalBackground)
		input.PlaceholderStyle = lipgloss.NewStyle().Foreground(theme.FaintText).Background(theme.ModalBackground)
		modal.fields = append(modal.fields, FormField{Label: spec.Label, Input: input})
	}
	if len(modal.fields) > 0 {
		modal.fields[0].Input.Focus()
	}
	return modal
}

// Update routes a message to the modal. Focus movement keys are
// consumed; everything else reaches the focused input.
func (modal *FormModal) Update(message tea.Msg) tea.Cmd {
	if len(modal.fields) == 0 {
		return nil
	}
	if keyMessage, ok := message.(tea.KeyMsg); ok {
		switch keyMessage.Type {
		case tea.KeyTab, tea.KeyDown:
			return modal.FocusField(modal.focus + 1)
		case tea.KeyShiftTab, tea.KeyUp:
			return modal.FocusField(modal.focus - 1)
		}
		modal.err = ""
	}
	var command tea.Cmd
	modal.fields[modal.focus].Input, command = modal.fields[modal.focus].Input.Update(message)
	return command
}

// FocusField moves focus to field index, wrapping at either end.
func (modal *FormModal) FocusField(index int) tea.Cmd {
	count := len(modal.fields)
	if count == 0 {
		return nil
	}
	index = ((index % count) + count) % count
	modal.fields[modal.focus].Input.Blur()
	modal.focus = index
	return modal.fields[modal.focus].Input.Focus()
}

// Focused returns the index of the focused field.
func (modal FormModal) Focused() int { return modal.focus }

// Value returns the contents of field index, or "" when out of range.
func (modal FormModal) Value(index int) string {
	if index < 0 || index >= len(modal.fields) {
		return ""
	}
	return modal.fields[index].Input.Value()
}

// SetError shows text under the fields until the next keystroke.
func (modal *FormModal) SetError(text string) { modal.err = text }

// Error returns the message set by SetError.
func (modal FormModal) Error() string { return modal.err }

// Render produces the modal lines and the anchor that centers them.
func (modal FormModal) Render(screenWidth, screenHeight int) ([]string, int, int) {
	innerWidth := screenWidth - formModalScreenMargin*2 - formModalChromeWidth
	innerWidth = min(max(innerWidth, formModalMinInner), formModalMaxInner)

	background := lipgloss.NewStyle().Background(modal.theme.ModalBackground)
	titleStyle := background.Bold(true).Foreground(modal.theme.HeaderForeground)
	labelStyle := background.Foreground(modal.theme.FaintText)
	focusedLabelStyle := background.Foreground(modal.theme.AccentColor)
	errorStyle := background.Foreground(modal.theme.NoticeError)
	footerStyle := background.Foreground(modal.theme.HelpText)

	fit := func(styled string) string {
		if ansi.StringWidth(styled) > innerWidth {
			styled = ansi.Truncate(styled, innerWidth, "…")
		}
		return PadOverlayLine(styled, innerWidth, background)
	}

	lines := []string{fit(titleStyle.Render(modal.Title)), fit("")}
	for index, field := range modal.fields {
		style := labelStyle
		if index == modal.focus {
			style = focusedLabelStyle
		}
		lines = append(lines, fit(style.Render(field.Label)), fit(field.Input.View()))
	}
	if modal.err != "" {
		lines = append(lines, fit(""), fit(errorStyle.Render(modal.err)))
	}
	footer := "Enter submit  Esc cancel"
	if len(modal.fields) > 1 {
		footer = "Enter submit  Tab next  Esc cancel"
	}
	lines = append(lines, fit(""), fit(footerStyle.Render(footer)))

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(modal.theme.BorderColor).
		BorderBackground(modal.theme.ModalBackground)
	rendered := strings.Split(border.Render(strings.Join(lines, "\n")), "\n")

	anchorX, anchorY := CenterAnchor(rendered, screenWidth, screenHeight)
	return rendered, anchorX, anchorY
}
