// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package lobbyui

import (
	"encoding/json"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

// logRecordMsg delivers a log event to the model for display in the
// status line.
type logRecordMsg struct {
	// Summary is the one-line text: message, error, then other fields.
	Summary string
	Level   zerolog.Level
}

// statusQueueSize bounds the events waiting for the program. Events
// logged while the queue is full are dropped from the status line.
const statusQueueSize = 64

// StatusWriter is a zerolog.LevelWriter that routes events at or
// above its level into a bubbletea program as status-line notices.
// Events below the level, and all events before SetProgram is called,
// are dropped.
//
// Most events are logged from inside Update, on the program's own
// goroutine, so WriteLevel never waits on the program: events are
// queued and a forwarding goroutine delivers them in order.
//
// Combine it with a file writer through logging.Tee so the full event
// still lands in the log file.
type StatusWriter struct {
	level   zerolog.Level
	program atomic.Pointer[tea.Program]
	queue   chan logRecordMsg
	done    chan struct{}
	start   sync.Once
	stop    sync.Once
}

// NewStatusWriter returns a writer forwarding events at level and
// above. Call Close once the program has exited.
func NewStatusWriter(level zerolog.Level) *StatusWriter {
	return &StatusWriter{
		level: level,
		queue: make(chan logRecordMsg, statusQueueSize),
		done:  make(chan struct{}),
	}
}

// SetProgram sets the program that receives notices and starts
// forwarding to it. Safe to call from any goroutine; only the first
// program is used.
func (writer *StatusWriter) SetProgram(program *tea.Program) {
	writer.start.Do(func() {
		writer.program.Store(program)
		go writer.forward(program)
	})
}

// Close stops forwarding. Queued events are discarded.
func (writer *StatusWriter) Close() {
	writer.stop.Do(func() { close(writer.done) })
}

func (writer *StatusWriter) forward(program *tea.Program) {
	for {
		select {
		case <-writer.done:
			return
		case record := <-writer.queue:
			program.Send(record)
		}
	}
}

// Write implements io.Writer. zerolog always calls WriteLevel on a
// LevelWriter; events without a level are not status-worthy.
func (writer *StatusWriter) Write(data []byte) (int, error) {
	return len(data), nil
}

// WriteLevel implements zerolog.LevelWriter.
func (writer *StatusWriter) WriteLevel(level zerolog.Level, data []byte) (int, error) {
	if level < writer.level || level == zerolog.NoLevel || level == zerolog.Disabled {
		return len(data), nil
	}
	if writer.program.Load() == nil {
		return len(data), nil
	}
	select {
	case writer.queue <- logRecordMsg{Summary: summarize(data), Level: level}:
	default:
	}
	return len(data), nil
}

// summarize turns one JSON event into "message: error (key=value, ...)".
func summarize(data []byte) string {
	var event map[string]any
	if err := json.Unmarshal(data, &event); err != nil {
		return strings.TrimSpace(string(data))
	}

	summary, _ := event[zerolog.MessageFieldName].(string)
	if errorText, ok := event[zerolog.ErrorFieldName].(string); ok && errorText != "" {
		if summary != "" {
			summary += ": "
		}
		summary += errorText
	}

	var fields []string
	for name, value := range event {
		switch name {
		case zerolog.MessageFieldName, zerolog.ErrorFieldName, zerolog.LevelFieldName, zerolog.TimestampFieldName:
			continue
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			continue
		}
		fields = append(fields, name+"="+strings.Trim(string(encoded), `"`))
	}
	if len(fields) > 0 {
		sort.Strings(fields)
		summary += " (" + strings.Join(fields, ", ") + ")"
	}
	return summary
}
