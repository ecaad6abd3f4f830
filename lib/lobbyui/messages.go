// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lobbyui

import (
	"github.com/bureau-foundation/lobby/lib/directory"
	"github.com/bureau-foundation/lobby/lib/joinflow"
	"github.com/bureau-foundation/lobby/lib/room"
	"github.com/bureau-foundation/lobby/lib/viewport"
)

// fetchResultMsg carries a finished listing fetch back to Update.
type fetchResultMsg struct {
	result directory.FetchResult
}

// joinResultMsg carries a finished join attempt back to Update.
type joinResultMsg struct {
	result joinflow.Result
}

// createResultMsg carries a finished create request. Results whose
// generation is not the model's current one are ignored.
type createResultMsg struct {
	generation uint64
	draft      room.Draft
	roomID     string
	err        error
}

// pollTickMsg triggers a background refresh.
type pollTickMsg struct{}

// settleMsg fires when a resize burst may have gone quiet.
type settleMsg struct {
	token viewport.Token
}

// noticeFadeMsg clears the notice shown under sequence, if it is still
// the current one.
type noticeFadeMsg struct {
	sequence uint64
}

// heatTickMsg rechecks arrival highlighting.
type heatTickMsg struct{}

// spinTickMsg advances the spinner. Ticks from a superseded sequence
// stop their chain.
type spinTickMsg struct {
	sequence uint64
}
