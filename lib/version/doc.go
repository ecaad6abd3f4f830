// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package version reports build information for the lobby binary.
//
// Values are injected with -ldflags, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/lobby/lib/version.GitCommit=$(git rev-parse --short HEAD)" ./cmd/lobby
//
// and default to "unknown" / "0.1.0-dev" in development builds.
package version
