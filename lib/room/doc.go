// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package room defines the chat room record as the backend serves it,
// the search/status criteria the directory filters by, and the draft
// a user fills in to create a room.
//
// Everything here is plain data with no I/O. The directory store,
// the HTTP client, and the renderers all share these types.
package room
