// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock is the injectable time source for lobby.
//
// Code that polls, debounces, or formats relative times takes a Clock
// instead of calling the time package. Production wiring passes
// Real(). Tests pass Fake(), whose time moves only when Advance is
// called:
//
//	fake := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	session := directory.NewSession(..., directory.WithClock(fake))
//	go session.Run(ctx)
//	fake.WaitForTimers(1)           // the poll ticker is registered
//	fake.Advance(30 * time.Second)  // deliver exactly one poll tick
//
// AfterFunc callbacks on the fake clock run synchronously inside
// Advance, in deadline order.
package clock
