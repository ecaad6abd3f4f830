// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lobbyui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/bureau-foundation/lobby/lib/joinflow"
	"github.com/bureau-foundation/lobby/lib/room"
	"github.com/bureau-foundation/lobby/lib/tui"
)

// Field indexes of the multi-field modals.
const (
	directRoomField     = 0
	directUsernameField = 1
	directPasswordField = 2

	createNameField     = 0
	createCreatorField  = 1
	createPasswordField = 2
)

func (model *Model) openModal(kind modalKind, modal tui.FormModal) {
	model.modal = modal
	model.modalKind = kind
	model.focus = FocusModal
}

func (model *Model) closeModal() {
	model.modal = tui.FormModal{}
	model.modalKind = modalNone
	model.focus = FocusList
}

// modalOpen reports whether a modal of kind has focus.
func (model Model) modalOpen(kind modalKind) bool {
	return model.focus == FocusModal && model.modalKind == kind
}

// syncJoin brings the screen in line with the join controller after
// any of its operations. An attempt starts the request; otherwise the
// phase decides which prompt is open.
func (model *Model) syncJoin(attempt *joinflow.Attempt, err error) tea.Cmd {
	if attempt != nil {
		model.closeModal()
		return tea.Batch(model.runJoin(attempt), model.startSpinner())
	}

	switch model.join.Phase() {
	case joinflow.PhaseAwaitingUsername:
		model.promptUsername(err)
		return nil
	case joinflow.PhaseAwaitingPassword:
		model.promptPassword(err)
		return nil
	case joinflow.PhaseDone:
		return model.handOff()
	case joinflow.PhaseSubmitting:
		if errors.Is(err, joinflow.ErrBusy) {
			return model.showNotice(noticeInfo, err.Error())
		}
		return nil
	}

	if err == nil {
		err = model.join.Notice()
	}
	if err == nil {
		return nil
	}
	// The direct-join form stays open on a local refusal, so the user
	// can correct it without retyping.
	if model.modalOpen(modalDirectJoin) {
		model.modal.SetError(err.Error())
		return nil
	}
	if model.focus == FocusModal {
		model.closeModal()
	}
	return model.showNotice(noticeError, err.Error())
}

func (model *Model) promptUsername(err error) {
	if !model.modalOpen(modalUsername) {
		title := "Join room"
		if target, ok := model.join.Target(); ok {
			title = "Join " + target.Label()
		}
		model.openModal(modalUsername, tui.NewFormModal(title, model.theme, tui.FieldSpec{
			Label:       "Username",
			Placeholder: "how others will see you",
			CharLimit:   room.MaxCreatorLength,
		}))
	}
	if err != nil {
		model.modal.SetError(err.Error())
	}
}

func (model *Model) promptPassword(err error) {
	challenge, _ := model.join.Challenge()
	if !model.modalOpen(modalPassword) {
		name := challenge.RoomName
		if name == "" {
			name = challenge.RoomID
		}
		model.openModal(modalPassword, tui.NewFormModal(
			lockTitle(name),
			model.theme,
			tui.FieldSpec{
				Label:  "Password (joining as " + challenge.Username + ")",
				Secret: true,
			},
		))
	}
	if err == nil {
		err = model.join.Notice()
	}
	if err != nil {
		model.modal.SetError(err.Error())
	}
}

func lockTitle(name string) string {
	return "🔒 " + name + " is protected"
}

// handOff records the chat destination and ends the program.
func (model *Model) handOff() tea.Cmd {
	handoff, _ := model.join.Handoff()
	address, err := model.backend.Resolve(handoff.Path())
	if err != nil {
		model.logger.Warn().Err(err).Str("room_id", handoff.RoomID).Msg("resolving chat address")
		address = handoff.Path()
	}
	model.destination = &Destination{Handoff: handoff, URL: address}
	model.logger.Info().Str("room_id", handoff.RoomID).Str("username", handoff.Username).Msg("joined room")
	model.quitting = true
	model.directory.Unmount()
	return tea.Quit
}

func (model *Model) openDirectJoin() tea.Cmd {
	model.openModal(modalDirectJoin, tui.NewFormModal("Join by room id", model.theme,
		tui.FieldSpec{Label: "Room ID"},
		tui.FieldSpec{Label: "Username", Value: model.join.Username(), CharLimit: room.MaxCreatorLength},
		tui.FieldSpec{Label: "Password", Placeholder: "only for protected rooms", Secret: true},
	))
	return nil
}

func (model *Model) openCreateRoom() tea.Cmd {
	model.openCreateForm(room.Draft{Creator: model.join.Username()})
	return nil
}

func (model *Model) openCreateForm(draft room.Draft) {
	model.openModal(modalCreate, tui.NewFormModal("Create a room", model.theme,
		tui.FieldSpec{Label: "Name", Value: draft.Name, CharLimit: room.MaxNameLength},
		tui.FieldSpec{Label: "Creator", Value: draft.Creator, CharLimit: room.MaxCreatorLength},
		tui.FieldSpec{Label: "Password", Value: draft.Password, Placeholder: "leave empty for a public room", Secret: true},
	))
}

// handleModalKeys routes keys to the open modal. Esc abandons it;
// Enter submits it.
func (model Model) handleModalKeys(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	var command tea.Cmd
	switch {
	case message.Type == tea.KeyCtrlC:
		command = model.quit()
	case key.Matches(message, model.keys.Cancel):
		model.cancelModal()
	case key.Matches(message, model.keys.Submit):
		command = model.submitModal()
	default:
		command = model.modal.Update(message)
	}
	return model, command
}

func (model *Model) cancelModal() {
	switch model.modalKind {
	case modalUsername, modalPassword:
		model.join.Cancel()
	}
	model.closeModal()
}

func (model *Model) submitModal() tea.Cmd {
	switch model.modalKind {
	case modalUsername:
		return model.syncJoin(model.join.SubmitUsername(model.modal.Value(0)))
	case modalPassword:
		return model.syncJoin(model.join.SubmitPassword(model.modal.Value(0)))
	case modalDirectJoin:
		return model.submitDirectJoin()
	case modalCreate:
		return model.submitCreate()
	case modalJoinCreated:
		created := model.created
		model.closeModal()
		if created == nil {
			return nil
		}
		return model.syncJoin(model.join.SubmitForm(created.id, created.draft.Creator, created.draft.Password))
	}
	model.closeModal()
	return nil
}

// submitDirectJoin checks the required fields before handing the form
// to the join controller, keeping the form and its input on a blank
// field.
func (model *Model) submitDirectJoin() tea.Cmd {
	roomID := model.modal.Value(directRoomField)
	username := model.modal.Value(directUsernameField)
	switch {
	case strings.TrimSpace(roomID) == "":
		model.modal.SetError(joinflow.ErrBlankRoomID.Error())
		return model.modal.FocusField(directRoomField)
	case strings.TrimSpace(username) == "":
		model.modal.SetError(joinflow.ErrBlankUsername.Error())
		return model.modal.FocusField(directUsernameField)
	}
	return model.syncJoin(model.join.SubmitForm(roomID, username, model.modal.Value(directPasswordField)))
}

// submitCreate validates the draft locally and starts the create
// request. A failure reopens the form with the draft restored.
func (model *Model) submitCreate() tea.Cmd {
	draft := room.Draft{
		Name:     model.modal.Value(createNameField),
		Creator:  model.modal.Value(createCreatorField),
		Password: model.modal.Value(createPasswordField),
	}
	if err := draft.Validate(); err != nil {
		model.modal.SetError(err.Error())
		var invalid *room.ValidationError
		if errors.As(err, &invalid) && invalid.Field == "creator" {
			return model.modal.FocusField(createCreatorField)
		}
		return model.modal.FocusField(createNameField)
	}
	if model.creating {
		model.modal.SetError("a room is already being created")
		return nil
	}

	model.creating = true
	model.createGeneration++
	model.closeModal()

	generation := model.createGeneration
	backend, ctx := model.backend, model.ctx
	request := func() tea.Msg {
		roomID, err := backend.CreateRoom(ctx, draft)
		return createResultMsg{generation: generation, draft: draft, roomID: roomID, err: err}
	}
	return tea.Batch(request, model.startSpinner())
}

// handleCreateResult refreshes the listing after a created room and
// offers to join it. A failure reopens the form with the backend's
// message, unless the user has moved on to another modal.
func (model Model) handleCreateResult(message createResultMsg) (tea.Model, tea.Cmd) {
	if message.generation != model.createGeneration || !model.creating {
		return model, nil
	}
	model.creating = false

	if message.err != nil {
		model.logger.Warn().Err(message.err).Str("name", message.draft.Name).Msg("creating room")
		if model.focus == FocusModal {
			command := model.showNotice(noticeError, message.err.Error())
			return model, command
		}
		model.openCreateForm(message.draft)
		model.modal.SetError(message.err.Error())
		return model, nil
	}

	draft := message.draft.Normalized()
	model.created = &createdRoom{id: message.roomID, draft: draft}
	commands := []tea.Cmd{
		model.showNotice(noticeSuccess, fmt.Sprintf("Created room %q (id %s)", draft.Name, message.roomID)),
		model.refresh(),
	}
	if model.focus != FocusModal && !model.join.Busy() {
		title := fmt.Sprintf("Join %s now as %s?", draft.Name, draft.Creator)
		model.openModal(modalJoinCreated, tui.NewFormModal(title, model.theme))
	}
	return model, tea.Batch(commands...)
}
