// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/bureau-foundation/lobby/lib/config"
	"github.com/bureau-foundation/lobby/lib/directory"
	"github.com/bureau-foundation/lobby/lib/room"
	"github.com/bureau-foundation/lobby/lib/roomview"
	"github.com/bureau-foundation/lobby/lib/tui"
	"github.com/bureau-foundation/lobby/lib/viewport"
)

// fallbackWidth is used when output is not a terminal and --width is
// not given. It is wide enough for the table layout.
const fallbackWidth = 120

// viewOptions are the flags shared by list and watch.
type viewOptions struct {
	search string
	status string
	width  int
	color  string
}

func (options *viewOptions) register(flags *pflag.FlagSet) {
	flags.StringVar(&options.search, "search", "", "show rooms whose name or creator contains this text")
	flags.StringVar(&options.status, "status", "all", "show all, public, or protected rooms")
	flags.IntVar(&options.width, "width", 0, "render for this many columns (default: terminal width)")
	flags.StringVar(&options.color, "color", "auto", "color output: auto, always, or never")
}

func (options viewOptions) criteria() (room.Criteria, error) {
	status, err := room.ParseStatusFilter(options.status)
	if err != nil {
		return room.Criteria{}, err
	}
	return room.Criteria{SearchTerm: options.search, Status: status}, nil
}

// renderers builds room renderers writing to out with the requested
// color profile.
func (options viewOptions) renderers(out io.Writer) (directory.Renderers, error) {
	renderer := lipgloss.NewRenderer(out)
	switch options.color {
	case "auto":
	case "always":
		renderer.SetColorProfile(termenv.ANSI256)
	case "never":
		renderer.SetColorProfile(termenv.Ascii)
	default:
		return directory.Renderers{}, fmt.Errorf("unknown --color %q (want auto, always, or never)", options.color)
	}
	return roomview.Renderers(roomview.NewStyles(renderer, tui.DefaultTheme)), nil
}

func (options viewOptions) columns(out io.Writer) int {
	if options.width > 0 {
		return options.width
	}
	return terminalWidth(out, fallbackWidth)
}

func newListCommand(state *app) *cobra.Command {
	var (
		view       viewOptions
		page       int
		jsonOutput bool
	)
	command := &cobra.Command{
		Use:   "list",
		Short: "Print one page of the room directory",
		Long: `Fetch the room list once and print one page of it.

The layout follows the width: up to viewport.threshold columns the rooms
are printed as cards, wider as a table. With --json the rooms of the
page are printed as a JSON array instead.`,
		Args: cobra.NoArgs,
		RunE: func(command *cobra.Command, _ []string) error {
			return state.runList(command.Context(), view, page, jsonOutput)
		},
	}
	view.register(command.Flags())
	command.Flags().IntVar(&page, "page", 1, "page number, starting at 1")
	command.Flags().BoolVar(&jsonOutput, "json", false, "print the page as JSON")
	return command
}

func (state *app) runList(ctx context.Context, view viewOptions, page int, jsonOutput bool) error {
	cfg, err := state.loadConfig()
	if err != nil {
		return err
	}
	logger, err := state.commandLogger(cfg, "list")
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
	width := view.columns(state.stdout)
	controller.ApplyWidth(width)
	controller.SetFilter(criteria)

	result := controller.Mount().Run(ctx)
	controller.Complete(result)
	defer controller.Unmount()
	if result.Err != nil {
		return fmt.Errorf("listing rooms: %w", result.Err)
	}
	if !controller.GoToPage(page) {
		return fmt.Errorf("page %d does not exist (there are %d)", page, controller.View().Page.TotalPages)
	}

	if jsonOutput {
		rooms := controller.View().Page.Rooms
		if rooms == nil {
			rooms = []room.Room{}
		}
		encoder := json.NewEncoder(state.stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(rooms)
	}
	_, err = fmt.Fprintln(state.stdout, controller.Render(directory.Frame{
		Width:    width,
		Selected: -1,
		Now:      time.Now(),
	}))
	return err
}

// newStaticController is a list controller for commands that render
// without a host event loop.
func newStaticController(cfg *config.Config, lister directory.Lister, renderers directory.Renderers, logger zerolog.Logger) *directory.ListController {
	return directory.NewListController(lister, viewport.NewPolicy(cfg.ViewportPolicy()), renderers,
		directory.WithControllerLogger(logger))
}
