// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bureau-foundation/lobby/lib/joinflow"
	"github.com/bureau-foundation/lobby/lib/roomclient"
)

// errPasswordRequired is returned when a protected room is joined
// without --password.
var errPasswordRequired = errors.New("the room is protected; pass --password")

func newJoinCommand(state *app) *cobra.Command {
	var (
		username string
		password string
		open     bool
	)
	command := &cobra.Command{
		Use:   "join ROOM_ID",
		Short: "Join a room by id and print its chat URL",
		Long: `Join a room without browsing. The username defaults to join.username
(or LOBBY_USERNAME). Protected rooms need --password.`,
		Args: cobra.ExactArgs(1),
		RunE: func(command *cobra.Command, args []string) error {
			cfg, err := state.loadConfig()
			if err != nil {
				return err
			}
			logger, err := state.commandLogger(cfg, "join")
			if err != nil {
				return err
			}
			client, err := newClient(cfg, logger)
			if err != nil {
				return err
			}
			if username == "" {
				username = cfg.Join.Username
			}
			address, err := joinRoom(command.Context(), client, logger, args[0], username, password)
			if err != nil {
				return err
			}
			fmt.Fprintln(state.stdout, address)
			if open {
				return openURL(address)
			}
			return nil
		},
	}
	flags := command.Flags()
	flags.StringVar(&username, "username", "", "name to join as (default: join.username)")
	flags.StringVar(&password, "password", "", "password for a protected room")
	flags.BoolVar(&open, "open", false, "open the chat page in a browser")
	return command
}

// joinRoom runs one direct join through the join controller and
// returns the absolute chat URL.
func joinRoom(ctx context.Context, client *roomclient.Client, logger zerolog.Logger, roomID, username, password string) (string, error) {
	controller := joinflow.NewController(client, joinflow.WithLogger(logger))
	attempt, err := controller.SubmitForm(roomID, username, password)
	if err != nil {
		return "", err
	}
	controller.Complete(attempt.Run(ctx))

	switch controller.Phase() {
	case joinflow.PhaseDone:
		handoff, _ := controller.Handoff()
		logger.Info().Str("room_id", handoff.RoomID).Str("username", handoff.Username).Msg("joined room")
		return client.Resolve(handoff.Path())
	case joinflow.PhaseAwaitingPassword:
		if password == "" {
			return "", errPasswordRequired
		}
	}
	if notice := controller.Notice(); notice != nil {
		return "", notice
	}
	return "", fmt.Errorf("joining %s: no answer", roomID)
}
