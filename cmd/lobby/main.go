// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// lobby is a terminal client for a chat room directory. It lists the
// rooms a backend offers, filters and pages through them, and joins or
// creates rooms, handing the user off to the room's chat page.
//
// With no subcommand it starts the interactive browser:
//
//	lobby                         # browse interactively
//	lobby list --search design    # print one page and exit
//	lobby watch                   # re-print the listing on every poll
//	lobby join A1 --username ana  # join directly, print the chat URL
//	lobby create --name Den --creator cy --join
//
// Configuration comes from --config (or LOBBY_CONFIG), LOBBY_*
// environment variables, and a .env file in the working directory.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return newRootCommand(os.Stdout, os.Stderr).ExecuteContext(ctx)
}
