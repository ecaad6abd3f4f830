// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package logging builds the zerolog loggers lobby's commands and TUI
// use. Output is human-readable when it goes to a terminal and JSON
// otherwise, so piped output (CI, scripts, log files) stays
// machine-parseable.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// ParseLevel accepts zerolog level names ("debug", "info", "warn",
// "error", ...). The empty string means info.
func ParseLevel(text string) (zerolog.Level, error) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return zerolog.InfoLevel, nil
	}
	if text == "warning" {
		text = "warn"
	}
	level, err := zerolog.ParseLevel(text)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("log level %q: %w", text, err)
	}
	return level, nil
}

// IsTerminal reports whether writer is a file attached to a terminal.
func IsTerminal(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

// New returns a logger writing to out at level. Terminals get
// zerolog's console format; anything else gets one JSON object per
// line.
func New(out io.Writer, level zerolog.Level) zerolog.Logger {
	if IsTerminal(out) {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// NewCommandLogger is the logger for one-shot commands: stderr, so
// stdout stays clean for command output.
//
// Callers scope it with command context:
//
//	logger := logging.NewCommandLogger(level).With().Str("command", "join").Logger()
func NewCommandLogger(level zerolog.Level) zerolog.Logger {
	return New(os.Stderr, level)
}

// OpenFile opens path for appending log lines, creating it if needed.
func OpenFile(path string) (*os.File, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	return file, nil
}

// Tee returns a logger that writes every event to each writer. Writers
// implementing zerolog.LevelWriter see the event level, which lets a
// status-bar writer filter without re-parsing.
func Tee(level zerolog.Level, writers ...io.Writer) zerolog.Logger {
	return zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
}
