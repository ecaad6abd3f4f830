// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lobbyui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the room browser. Bindings apply
// while the room list has focus; the search input and modals take raw
// keystrokes and only react to Submit and Cancel.
type KeyMap struct {
	// Selection within the current page.
	Up   key.Binding
	Down key.Binding

	// Paging.
	NextPage key.Binding
	PrevPage key.Binding

	// Filtering.
	Search      key.Binding // Focus the search input.
	CycleStatus key.Binding // all -> public -> protected.

	// Actions.
	Join       key.Binding // Join the selected room.
	JoinByID   key.Binding // Open the direct-join form.
	CreateRoom key.Binding
	Refresh    key.Binding // Retry a failed load, or refresh now.

	// Inputs and modals.
	Submit key.Binding
	Cancel key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set. Vim-style movement
// (j/k, h/l) alongside arrows and page up/down.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("l", "right", "pgdown", "n"),
		key.WithHelp("l/→", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("h", "left", "pgup", "p"),
		key.WithHelp("h/←", "prev page"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	CycleStatus: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "public/protected"),
	),
	Join: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "join"),
	),
	JoinByID: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "join by id"),
	),
	CreateRoom: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "create"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("Enter", "submit"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("Esc", "cancel"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "more keys"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// ShortHelp implements help.KeyMap.
func (keys KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{keys.Join, keys.Search, keys.CycleStatus, keys.NextPage, keys.CreateRoom, keys.Help, keys.Quit}
}

// FullHelp implements help.KeyMap.
func (keys KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{keys.Up, keys.Down, keys.NextPage, keys.PrevPage},
		{keys.Search, keys.CycleStatus, keys.Refresh},
		{keys.Join, keys.JoinByID, keys.CreateRoom},
		{keys.Help, keys.Quit},
	}
}
