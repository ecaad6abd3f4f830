// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package joinflow

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/rs/zerolog"

	"github.com/bureau-foundation/lobby/lib/room"
	"github.com/bureau-foundation/lobby/lib/roomclient"
)

// Phase is the join interaction state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseAwaitingUsername
	PhaseAwaitingPassword
	PhaseSubmitting
	PhaseDone
)

func (phase Phase) String() string {
	switch phase {
	case PhaseIdle:
		return "idle"
	case PhaseAwaitingUsername:
		return "awaiting username"
	case PhaseAwaitingPassword:
		return "awaiting password"
	case PhaseSubmitting:
		return "submitting"
	case PhaseDone:
		return "done"
	default:
		return fmt.Sprintf("Phase(%d)", int(phase))
	}
}

var (
	// ErrBlankUsername rejects an empty or whitespace-only username.
	ErrBlankUsername = errors.New("enter a username to join")

	// ErrBlankRoomID rejects a direct-join form without a room id.
	ErrBlankRoomID = errors.New("enter a room id to join")

	// ErrBusy rejects any new request while one is being submitted.
	ErrBusy = errors.New("a join request is already in progress")

	// ErrNoTarget means a username was submitted with no room chosen.
	ErrNoTarget = errors.New("no room selected")

	// ErrNoChallenge means a password was submitted with no pending
	// challenge.
	ErrNoChallenge = errors.New("no password requested")

	// ErrThrottled means too many attempts were made on one room.
	ErrThrottled = errors.New("too many join attempts for this room; wait a moment and try again")
)

// RefusedError reports a join the backend answered but did not
// accept.
type RefusedError struct {
	RoomID  string
	Outcome roomclient.JoinOutcome
}

func (err *RefusedError) Error() string {
	if err.Outcome.Message != "" {
		return err.Outcome.Message
	}
	return fmt.Sprintf("joining %s: %s", err.RoomID, err.Outcome.Kind)
}

// Joiner performs the join request. roomclient.Client implements it.
type Joiner interface {
	JoinRoom(ctx context.Context, roomID, password string) (roomclient.JoinOutcome, error)
}

// Target is the room a join is aimed at.
type Target struct {
	RoomID      string
	RoomName    string
	HasPassword bool
}

// TargetFor builds a Target from a listed room.
func TargetFor(entry room.Room) Target {
	return Target{RoomID: entry.ID, RoomName: entry.Name, HasPassword: entry.HasPassword}
}

// Label is the room name, or the id when the name is unknown.
func (target Target) Label() string {
	if target.RoomName != "" {
		return target.RoomName
	}
	return target.RoomID
}

// Challenge is a pending password prompt for exactly one room.
type Challenge struct {
	RoomID   string
	RoomName string
	Username string
}

// Handoff is where the user goes after an accepted join.
type Handoff struct {
	RoomID   string
	Username string
}

// Path is the chat page reference, relative to the backend root.
func (handoff Handoff) Path() string {
	query := url.Values{"username": {handoff.Username}}
	return "/chat/" + url.PathEscape(handoff.RoomID) + "?" + query.Encode()
}

// Attempt is one submitted join request.
type Attempt struct {
	generation uint64
	joiner     Joiner
	roomID     string
	password   string
}

// RoomID is the room being joined.
func (attempt *Attempt) RoomID() string { return attempt.roomID }

// Run sends the request. It is safe to call from any goroutine.
func (attempt *Attempt) Run(ctx context.Context) Result {
	outcome, err := attempt.joiner.JoinRoom(ctx, attempt.roomID, attempt.password)
	return Result{
		generation:   attempt.generation,
		sentPassword: attempt.password != "",
		Outcome:      outcome,
		Err:          err,
	}
}

// Result is the outcome of an Attempt. Err is a transport or protocol
// failure; Outcome is meaningful only when Err is nil.
type Result struct {
	generation   uint64
	sentPassword bool

	Outcome roomclient.JoinOutcome
	Err     error
}

// Controller owns the in-flight join. It is not safe for concurrent
// use.
type Controller struct {
	joiner   Joiner
	throttle *Throttle
	logger   zerolog.Logger

	phase     Phase
	username  string
	target    *Target
	challenge *Challenge
	handoff   *Handoff
	notice    error

	// formPassword is the password typed into a direct-join form that
	// lacked a username. It is sent once the username arrives.
	formPassword string

	generation uint64
}

// Option configures a Controller.
type Option func(*Controller)

// WithUsername presets the username, so selecting a room skips the
// username prompt. Blank values are ignored.
func WithUsername(username string) Option {
	return func(controller *Controller) { controller.username = strings.TrimSpace(username) }
}

// WithThrottle limits submissions per room.
func WithThrottle(throttle *Throttle) Option {
	return func(controller *Controller) { controller.throttle = throttle }
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(controller *Controller) { controller.logger = logger }
}

// NewController returns an idle controller.
func NewController(joiner Joiner, options ...Option) *Controller {
	controller := &Controller{joiner: joiner, logger: zerolog.Nop()}
	for _, option := range options {
		option(controller)
	}
	return controller
}

// Select starts a join for target. Any pending challenge is discarded.
// When the username is already known the flow moves straight on, and
// for an unprotected room that means submitting: the returned Attempt
// is then non-nil.
func (controller *Controller) Select(target Target) (*Attempt, error) {
	if controller.phase == PhaseSubmitting {
		return nil, ErrBusy
	}
	controller.challenge = nil
	controller.handoff = nil
	controller.notice = nil
	controller.formPassword = ""
	controller.target = &target

	if controller.username == "" {
		controller.phase = PhaseAwaitingUsername
		return nil, nil
	}
	return controller.proceed()
}

// SubmitUsername supplies the username for the selected room. A blank
// name is rejected and the flow stays where it is.
func (controller *Controller) SubmitUsername(name string) (*Attempt, error) {
	if controller.phase == PhaseSubmitting {
		return nil, ErrBusy
	}
	if controller.phase != PhaseAwaitingUsername || controller.target == nil {
		return nil, ErrNoTarget
	}
	name = strings.TrimSpace(name)
	if name == "" {
		controller.notice = ErrBlankUsername
		return nil, ErrBlankUsername
	}
	controller.username = name
	controller.notice = nil
	return controller.proceed()
}

// SubmitPassword answers the pending challenge.
func (controller *Controller) SubmitPassword(password string) (*Attempt, error) {
	if controller.phase == PhaseSubmitting {
		return nil, ErrBusy
	}
	if controller.phase != PhaseAwaitingPassword || controller.challenge == nil {
		return nil, ErrNoChallenge
	}
	return controller.submit(controller.challenge.RoomID, password)
}

// SubmitForm is the direct-join form: room id, username, and an
// optional password in one step. Whether the room is protected is not
// known up front; a wrong-password answer turns into a challenge.
func (controller *Controller) SubmitForm(roomID, username, password string) (*Attempt, error) {
	if controller.phase == PhaseSubmitting {
		return nil, ErrBusy
	}
	roomID = strings.TrimSpace(roomID)
	if roomID == "" {
		controller.notice = ErrBlankRoomID
		return nil, ErrBlankRoomID
	}
	controller.challenge = nil
	controller.handoff = nil
	controller.formPassword = ""
	controller.target = &Target{RoomID: roomID, HasPassword: password != ""}

	username = strings.TrimSpace(username)
	if username == "" {
		controller.phase = PhaseAwaitingUsername
		controller.formPassword = password
		controller.notice = ErrBlankUsername
		return nil, ErrBlankUsername
	}
	controller.username = username
	controller.notice = nil
	return controller.submit(roomID, password)
}

func (controller *Controller) proceed() (*Attempt, error) {
	target := controller.target
	if password := controller.formPassword; password != "" {
		controller.formPassword = ""
		return controller.submit(target.RoomID, password)
	}
	if target.HasPassword {
		controller.challenge = &Challenge{
			RoomID:   target.RoomID,
			RoomName: target.RoomName,
			Username: controller.username,
		}
		controller.phase = PhaseAwaitingPassword
		return nil, nil
	}
	return controller.submit(target.RoomID, "")
}

func (controller *Controller) submit(roomID, password string) (*Attempt, error) {
	if controller.throttle != nil && !controller.throttle.Allow(roomID) {
		controller.notice = ErrThrottled
		if controller.challenge == nil {
			controller.phase = PhaseIdle
			controller.target = nil
		}
		return nil, ErrThrottled
	}
	controller.phase = PhaseSubmitting
	controller.generation++
	controller.logger.Debug().Str("room_id", roomID).Bool("with_password", password != "").Msg("submitting join")
	return &Attempt{
		generation: controller.generation,
		joiner:     controller.joiner,
		roomID:     roomID,
		password:   password,
	}, nil
}

// Complete applies an attempt's result and reports whether it was
// current. Results of cancelled or superseded attempts are dropped.
func (controller *Controller) Complete(result Result) bool {
	if controller.phase != PhaseSubmitting || result.generation != controller.generation {
		return false
	}
	target := controller.target
	if target == nil {
		target = &Target{}
	}

	switch {
	case result.Err != nil:
		controller.logger.Warn().Err(result.Err).Str("room_id", target.RoomID).Msg("join request failed")
		controller.toIdle(result.Err)

	case result.Outcome.Kind == roomclient.JoinAccepted:
		controller.handoff = &Handoff{RoomID: target.RoomID, Username: controller.username}
		controller.phase = PhaseDone
		controller.target = nil
		controller.challenge = nil
		controller.notice = nil

	// A password sent to a protected room and refused without a code
	// or error status is read as a wrong password.
	case result.Outcome.Kind == roomclient.JoinWrongPassword,
		result.sentPassword && target.HasPassword && result.Outcome.Unclassified():
		controller.challenge = &Challenge{
			RoomID:   target.RoomID,
			RoomName: target.RoomName,
			Username: controller.username,
		}
		target.HasPassword = true
		controller.phase = PhaseAwaitingPassword
		controller.notice = &RefusedError{RoomID: target.RoomID, Outcome: result.Outcome}

	default:
		controller.toIdle(&RefusedError{RoomID: target.RoomID, Outcome: result.Outcome})
	}
	return true
}

func (controller *Controller) toIdle(notice error) {
	controller.phase = PhaseIdle
	controller.target = nil
	controller.challenge = nil
	controller.formPassword = ""
	controller.notice = notice
}

// Cancel abandons the current join. An attempt still in flight is
// ignored when it completes.
func (controller *Controller) Cancel() {
	controller.generation++
	controller.phase = PhaseIdle
	controller.target = nil
	controller.challenge = nil
	controller.handoff = nil
	controller.notice = nil
	controller.formPassword = ""
}

// Phase returns the current phase.
func (controller *Controller) Phase() Phase { return controller.phase }

// Busy reports whether a request is being submitted. Hosts disable
// their submit actions while it is true.
func (controller *Controller) Busy() bool { return controller.phase == PhaseSubmitting }

// Username returns the known username, or "".
func (controller *Controller) Username() string { return controller.username }

// Target returns the room being joined.
func (controller *Controller) Target() (Target, bool) {
	if controller.target == nil {
		return Target{}, false
	}
	return *controller.target, true
}

// Challenge returns the pending password challenge.
func (controller *Controller) Challenge() (Challenge, bool) {
	if controller.challenge == nil {
		return Challenge{}, false
	}
	return *controller.challenge, true
}

// Handoff returns the chat target once the join was accepted.
func (controller *Controller) Handoff() (Handoff, bool) {
	if controller.handoff == nil {
		return Handoff{}, false
	}
	return *controller.handoff, true
}

// Notice is the most recent problem to show the user: a validation
// error, a refusal, or a transport failure. Nil when there is none.
func (controller *Controller) Notice() error { return controller.notice }
