// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package directory is the room directory state machine.
//
// [Store] owns the master room list, the filter criteria, and the
// pagination, and projects them into a [VisiblePage]. It does no I/O.
//
// [ListController] sits on top: it owns a Store and a viewport
// policy, tracks the fetch lifecycle (Idle, Loading, Ready, Error),
// enforces that at most one listing fetch is outstanding, and hands
// the current [View] to a [Renderer]. Network work is expressed as
// commands rather than performed inline: Mount, Retry, and Tick return
// a [*Fetch] that the host runs off its event loop, and the resulting
// [FetchResult] comes back through Complete. Results from a previous
// mount are recognised by generation and dropped, so a response that
// arrives after the view is torn down changes nothing.
//
// [Session] is a headless host for a ListController. It runs the
// event loop on one goroutine, polls on a clock ticker, debounces
// resizes with clock timers, and emits a rendered frame whenever the
// view changes. The interactive terminal UI hosts the same controller
// inside a bubbletea program instead.
package directory
