// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/bureau-foundation/lobby/lib/config"
	"github.com/bureau-foundation/lobby/lib/logging"
	"github.com/bureau-foundation/lobby/lib/roomclient"
	"github.com/bureau-foundation/lobby/lib/version"
)

// app holds the persistent flags and output streams shared by every
// subcommand.
type app struct {
	configPath string
	serverURL  string
	logLevel   string

	stdout io.Writer
	stderr io.Writer
}

func newRootCommand(stdout, stderr io.Writer) *cobra.Command {
	state := &app{stdout: stdout, stderr: stderr}

	browse := newBrowseCommand(state)
	root := &cobra.Command{
		Use:           "lobby",
		Short:         "Browse, join, and create chat rooms from the terminal",
		Version:       version.Info(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          browse.RunE,
	}
	root.Flags().AddFlagSet(browse.Flags())

	flags := root.PersistentFlags()
	flags.StringVar(&state.configPath, "config", "", "YAML config file (default: $"+config.EnvConfig+")")
	flags.StringVar(&state.serverURL, "server", "", "backend URL, overriding server.url")
	flags.StringVar(&state.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides log.level)")

	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(
		browse,
		newListCommand(state),
		newWatchCommand(state),
		newJoinCommand(state),
		newCreateCommand(state),
		newVersionCommand(state),
	)
	return root
}

// loadConfig layers the config file, the environment, and the
// persistent flags, then validates the result.
func (state *app) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(state.configPath)
	if err != nil {
		return nil, err
	}
	if state.serverURL != "" {
		cfg.Server.URL = state.serverURL
	}
	if state.logLevel != "" {
		cfg.Log.Level = state.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// commandLogger is the stderr logger of a one-shot command.
func (state *app) commandLogger(cfg *config.Config, command string) (zerolog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return zerolog.Nop(), err
	}
	return logging.New(state.stderr, level).With().Str("command", command).Logger(), nil
}

func newClient(cfg *config.Config, logger zerolog.Logger) (*roomclient.Client, error) {
	return roomclient.New(cfg.Server.URL,
		roomclient.WithTimeout(cfg.Server.Timeout),
		roomclient.WithLogger(logger),
	)
}

// terminalWidth is the column count of writer when it is a terminal,
// otherwise fallback.
func terminalWidth(writer io.Writer, fallback int) int {
	file, ok := writer.(*os.File)
	if !ok || !term.IsTerminal(int(file.Fd())) {
		return fallback
	}
	width, _, err := term.GetSize(int(file.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// openURL hands address to the platform's opener without waiting for
// it.
func openURL(address string) error {
	var opener *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		opener = exec.Command("cmd", "/c", "start", address)
	case "darwin":
		opener = exec.Command("open", address)
	default:
		opener = exec.Command("xdg-open", address)
	}
	if err := opener.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", address, err)
	}
	go opener.Wait()
	return nil
}

func newVersionCommand(state *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(*cobra.Command, []string) {
			fmt.Fprintln(state.stdout, "lobby "+version.Full())
		},
	}
}
