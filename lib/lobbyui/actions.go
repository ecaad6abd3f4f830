// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lobbyui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/lobby/lib/joinflow"
)

// action binds a key of the room list to a model method.
type action struct {
	binding func(KeyMap) key.Binding
	run     func(*Model) tea.Cmd
}

// listActions are tried in order; the first matching binding wins.
var listActions = []action{
	{func(keys KeyMap) key.Binding { return keys.Quit }, (*Model).quit},
	{func(keys KeyMap) key.Binding { return keys.Up }, (*Model).moveUp},
	{func(keys KeyMap) key.Binding { return keys.Down }, (*Model).moveDown},
	{func(keys KeyMap) key.Binding { return keys.NextPage }, (*Model).nextPage},
	{func(keys KeyMap) key.Binding { return keys.PrevPage }, (*Model).prevPage},
	{func(keys KeyMap) key.Binding { return keys.Search }, (*Model).focusSearch},
	{func(keys KeyMap) key.Binding { return keys.CycleStatus }, (*Model).cycleStatus},
	{func(keys KeyMap) key.Binding { return keys.Join }, (*Model).joinSelected},
	{func(keys KeyMap) key.Binding { return keys.JoinByID }, (*Model).openDirectJoin},
	{func(keys KeyMap) key.Binding { return keys.CreateRoom }, (*Model).openCreateRoom},
	{func(keys KeyMap) key.Binding { return keys.Refresh }, (*Model).refresh},
	{func(keys KeyMap) key.Binding { return keys.Help }, (*Model).toggleHelp},
}

func (model Model) handleListKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	for _, candidate := range listActions {
		if key.Matches(message, candidate.binding(model.keys)) {
			command := candidate.run(&model)
			return model, command
		}
	}
	return model, nil
}

func (model *Model) quit() tea.Cmd {
	model.quitting = true
	model.join.Cancel()
	model.directory.Unmount()
	return tea.Quit
}

// moveUp moves the highlight up, onto the previous page from the top
// row.
func (model *Model) moveUp() tea.Cmd {
	if model.selected > 0 {
		model.selected--
		return nil
	}
	if model.directory.PrevPage() {
		model.selected = len(model.directory.View().Page.Rooms) - 1
	}
	return nil
}

// moveDown moves the highlight down, onto the next page from the
// bottom row.
func (model *Model) moveDown() tea.Cmd {
	if model.selected < len(model.directory.View().Page.Rooms)-1 {
		model.selected++
		return nil
	}
	if model.directory.NextPage() {
		model.selected = 0
	}
	return nil
}

func (model *Model) nextPage() tea.Cmd {
	if model.directory.NextPage() {
		model.selected = 0
	}
	return nil
}

func (model *Model) prevPage() tea.Cmd {
	if model.directory.PrevPage() {
		model.selected = 0
	}
	return nil
}

func (model *Model) focusSearch() tea.Cmd {
	model.focus = FocusSearch
	return model.search.Focus()
}

// cycleStatus steps the protection filter: all, public, protected.
func (model *Model) cycleStatus() tea.Cmd {
	model.directory.SetStatus(model.directory.Criteria().Status.Next())
	model.selected = 0
	return nil
}

func (model *Model) joinSelected() tea.Cmd {
	selected, ok := model.selectedRoom()
	if !ok {
		return nil
	}
	return model.syncJoin(model.join.Select(joinflow.TargetFor(selected)))
}

// refresh fetches now, or once the fetch in flight has landed when its
// snapshot may predate a change this client just made.
func (model *Model) refresh() tea.Cmd {
	fetch := model.directory.Retry()
	if fetch == nil && model.directory.InFlight() {
		model.refetch = true
	}
	return model.fetch(fetch)
}

func (model *Model) toggleHelp() tea.Cmd {
	model.help.ShowAll = !model.help.ShowAll
	return nil
}

// handleSearchKeys edits the search term live. Enter keeps the term
// and returns to the list; Esc clears a non-empty term, and leaves
// search when it is already empty.
func (model Model) handleSearchKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case message.Type == tea.KeyCtrlC:
		command := model.quit()
		return model, command

	case key.Matches(message, model.keys.Cancel):
		if model.search.Value() == "" {
			model.leaveSearch()
			return model, nil
		}
		model.search.SetValue("")
		model.applySearch()

	case key.Matches(message, model.keys.Submit):
		model.leaveSearch()

	default:
		var command tea.Cmd
		model.search, command = model.search.Update(message)
		model.applySearch()
		return model, command
	}
	return model, nil
}

func (model *Model) leaveSearch() {
	model.search.Blur()
	model.focus = FocusList
}

func (model *Model) applySearch() {
	term := model.search.Value()
	if term == model.directory.Criteria().SearchTerm {
		return
	}
	model.directory.SetSearchTerm(term)
	model.selected = 0
}

