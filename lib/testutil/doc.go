// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds helpers shared by lobby's tests.
//
// [RequireReceive] and [RequireSend] wrap the select-with-timeout
// pattern so tests that wait on a session's output channel do not
// carry their own time.After calls. They are the only place in the
// test suite that uses a wall-clock timeout.
//
// [NumberedRooms] and [WriteFile] build fixtures.
//
// All helpers call t.Fatalf on failure.
package testutil
