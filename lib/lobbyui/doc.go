// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package lobbyui is the interactive room browser: a bubbletea model
// over a [directory.ListController] and a [joinflow.Controller].
//
// The model owns no network code. Every backend call is a command built
// from a controller's Fetch or Attempt, and its result comes back to
// Update as a message, so the controllers are only ever touched from
// the bubbletea event loop. Timed events (polling, resize settling,
// notice fades, the spinner, arrival highlighting) all go through one
// scheduling function.
//
// Layout:
//
//	[/ search term]               only while searching or filtered
//	directory (cards or table)    chosen by the viewport policy
//	status line                   spinner + activity, or a notice
//	help                          short or full key help
//
// Prompts (username, password, direct join, create room) are
// [tui.FormModal] overlays spliced over the directory.
//
// When a join is accepted the program quits; [Model.Destination]
// then holds the chat URL for the caller to print or open.
package lobbyui
