// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/bureau-foundation/lobby/lib/directory"
	"github.com/bureau-foundation/lobby/lib/logging"
)

func newWatchCommand(state *app) *cobra.Command {
	var view viewOptions
	command := &cobra.Command{
		Use:   "watch",
		Short: "Re-print the room directory on every poll",
		Long: `Poll the room list every polling.interval and print page 1 after each
change, until interrupted. On a terminal the screen is cleared before
every frame and the layout follows terminal resizes; otherwise frames
are separated by a blank line.`,
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			return state.runWatch(command.Context(), view)
		},
	}
	view.register(command.Flags())
	return command
}

func (state *app) runWatch(ctx context.Context, view viewOptions) error {
	cfg, err := state.loadConfig()
	if err != nil {
		return err
	}
	logger, err := state.commandLogger(cfg, "watch")
	if err != nil {
		return err
	}
	criteria, err := view.criteria()
	if err != nil {
		return err
	}
	renderers, err := view.renderers(state.stdout)
	if err != nil {
		return err
	}
	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	controller := newStaticController(cfg, client, renderers, logger)
	controller.SetFilter(criteria)

	clearScreen := logging.IsTerminal(state.stdout)
	output := termenv.NewOutput(state.stdout)
	session := directory.NewSession(controller, view.columns(state.stdout),
		directory.WithPollInterval(cfg.Polling.Interval),
		directory.WithSessionLogger(logger),
		directory.WithFrames(func(frame string) {
			if clearScreen {
				output.ClearScreen()
			}
			fmt.Fprintln(state.stdout, frame)
			if !clearScreen {
				fmt.Fprintln(state.stdout)
			}
		}),
	)
	if view.width == 0 && clearScreen {
		watchResize(ctx, state.stdout, session.Resize)
	}
	logger.Info().Str("server", cfg.Server.URL).Dur("interval", cfg.Polling.Interval).Msg("watching rooms")
	return session.Run(ctx)
}
