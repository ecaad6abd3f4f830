// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bureau-foundation/lobby/lib/room"
)

func newCreateCommand(state *app) *cobra.Command {
	var (
		draft room.Draft
		join  bool
		open  bool
	)
	command := &cobra.Command{
		Use:   "create",
		Short: "Create a room",
		Long: fmt.Sprintf(`Create a room and print its id. Names are limited to %d characters and
creator names to %d. A room with a password is protected.

With --join the creator joins the new room straight away and the chat
URL is printed as well.`, room.MaxNameLength, room.MaxCreatorLength),
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			cfg, err := state.loadConfig()
			if err != nil {
				return err
			}
			logger, err := state.commandLogger(cfg, "create")
			if err != nil {
				return err
			}
			if draft.Creator == "" {
				draft.Creator = cfg.Join.Username
			}
			if err := draft.Validate(); err != nil {
				return err
			}
			client, err := newClient(cfg, logger)
			if err != nil {
				return err
			}

			roomID, err := client.CreateRoom(command.Context(), draft)
			if err != nil {
				return fmt.Errorf("creating room: %w", err)
			}
			draft = draft.Normalized()
			logger.Info().Str("room_id", roomID).Str("name", draft.Name).Msg("created room")
			fmt.Fprintf(state.stdout, "Created room %q (id %s)\n", draft.Name, roomID)
			if !join {
				return nil
			}

			address, err := joinRoom(command.Context(), client, logger, roomID, draft.Creator, draft.Password)
			if err != nil {
				return fmt.Errorf("joining the new room: %w", err)
			}
			fmt.Fprintln(state.stdout, address)
			if open {
				return openURL(address)
			}
			return nil
		},
	}
	flags := command.Flags()
	flags.StringVar(&draft.Name, "name", "", "room name")
	flags.StringVar(&draft.Creator, "creator", "", "creator name (default: join.username)")
	flags.StringVar(&draft.Password, "password", "", "password; empty creates a public room")
	flags.BoolVar(&join, "join", false, "join the new room as its creator")
	flags.BoolVar(&open, "open", false, "with --join, open the chat page in a browser")
	return command
}
