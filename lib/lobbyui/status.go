// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lobbyui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type noticeKind int

const (
	noticeInfo noticeKind = iota
	noticeSuccess
	noticeError
)

// notice is a transient status-line message.
type notice struct {
	kind noticeKind
	text string
}

// showNotice replaces the current notice and schedules its fade.
func (model *Model) showNotice(kind noticeKind, text string) tea.Cmd {
	model.notice = &notice{kind: kind, text: text}
	model.noticeSequence++
	return model.schedule(model.noticeFade, noticeFadeMsg{sequence: model.noticeSequence})
}

// busy reports whether any request is outstanding.
func (model Model) busy() bool {
	return model.directory.InFlight() || model.join.Busy() || model.creating
}

// activity describes the outstanding request, most specific first.
func (model Model) activity() string {
	switch {
	case model.join.Busy():
		if target, ok := model.join.Target(); ok {
			return "Joining " + target.Label() + "…"
		}
		return "Joining…"
	case model.creating:
		return "Creating room…"
	case model.directory.InFlight():
		return "Loading rooms…"
	}
	return ""
}

// startSpinner begins a tick chain unless one is already running.
func (model *Model) startSpinner() tea.Cmd {
	if model.spinning {
		return nil
	}
	model.spinning = true
	model.spinSequence++
	return model.schedule(model.spinner.Spinner.FPS, spinTickMsg{sequence: model.spinSequence})
}

// handleSpinTick advances the spinner while anything is outstanding
// and lets the chain end once nothing is.
func (model Model) handleSpinTick(message spinTickMsg) (tea.Model, tea.Cmd) {
	if message.sequence != model.spinSequence {
		return model, nil
	}
	if !model.busy() {
		model.spinning = false
		return model, nil
	}
	model.spinning = true
	// The spinner's own tick command is dropped; the chain runs on
	// spinTickMsg so it can be stopped.
	model.spinner, _ = model.spinner.Update(spinner.TickMsg{ID: model.spinner.ID(), Time: model.clock.Now()})
	return model, model.schedule(model.spinner.Spinner.FPS, spinTickMsg{sequence: model.spinSequence})
}

// statusLine shows the outstanding request, or else the current
// notice, or nothing.
func (model Model) statusLine() string {
	if model.busy() {
		return model.spinner.View() + " " + model.activity()
	}
	if model.notice == nil {
		return ""
	}
	color := model.theme.NoticeInfo
	switch model.notice.kind {
	case noticeSuccess:
		color = model.theme.NoticeSuccess
	case noticeError:
		color = model.theme.NoticeError
	}
	return lipgloss.NewStyle().Foreground(color).Render(model.notice.text)
}
