// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build unix

package main

import (
	"context"
	"io"
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// watchResize reports the width of out to resize whenever the
// terminal is resized, until ctx is done.
func watchResize(ctx context.Context, out io.Writer, resize func(width int)) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, unix.SIGWINCH)
	measure := func() (int, bool) {
		width := terminalWidth(out, 0)
		return width, width > 0
	}
	go func() {
		defer signal.Stop(signals)
		forwardResizes(ctx, signals, measure, resize)
	}()
}
