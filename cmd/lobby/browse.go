// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bureau-foundation/lobby/lib/clock"
	"github.com/bureau-foundation/lobby/lib/joinflow"
	"github.com/bureau-foundation/lobby/lib/lobbyui"
	"github.com/bureau-foundation/lobby/lib/logging"
)

func newBrowseCommand(state *app) *cobra.Command {
	var open bool
	command := &cobra.Command{
		Use:   "browse",
		Short: "Browse rooms interactively (default)",
		Long: `Browse rooms in a full-screen terminal UI.

The listing refreshes in the background. Press / to search, s to cycle
between all, public, and protected rooms, Enter to join the selected
room, i to join by id, c to create a room, and ? for every key.

When a join is accepted the browser exits and prints the chat URL.
Stderr belongs to the UI while it runs; set log.file to keep a log.`,
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			return state.runBrowse(command.Context(), open)
		},
	}
	command.Flags().BoolVar(&open, "open", false, "open the chat page in a browser after joining")
	return command
}

func (state *app) runBrowse(ctx context.Context, open bool) error {
	cfg, err := state.loadConfig()
	if err != nil {
		return err
	}
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}

	status := lobbyui.NewStatusWriter(zerolog.WarnLevel)
	writers := []io.Writer{status}
	if cfg.Log.File != "" {
		file, err := logging.OpenFile(cfg.Log.File)
		if err != nil {
			return err
		}
		defer file.Close()
		writers = append(writers, file)
	}
	logger := logging.Tee(level, writers...).With().Str("command", "browse").Logger()

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}

	model := lobbyui.NewModel(client, lobbyui.Options{
		Viewport:     cfg.ViewportPolicy(),
		PollInterval: cfg.Polling.Interval,
		NoticeFade:   cfg.Notices.Fade,
		Username:     cfg.Join.Username,
		Throttle:     joinflow.NewThrottle(cfg.Join.AttemptLimit, cfg.Join.AttemptWindow, clock.Real()),
		Logger:       &logger,
		Context:      ctx,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	status.SetProgram(program)
	defer status.Close()

	final, err := program.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("running room browser: %w", err)
	}

	browser, ok := final.(lobbyui.Model)
	if !ok {
		return nil
	}
	destination, joined := browser.Destination()
	if !joined {
		return nil
	}
	fmt.Fprintf(state.stdout, "Joined %s as %s\n%s\n",
		destination.Handoff.RoomID, destination.Handoff.Username, destination.URL)
	if open {
		return openURL(destination.URL)
	}
	return nil
}
