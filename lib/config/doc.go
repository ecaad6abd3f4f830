// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package config loads lobby's YAML configuration.
//
// Values are layered, later layers winning:
//
//   - built-in defaults ([Default])
//   - the YAML file named by --config or LOBBY_CONFIG, when one is given
//   - LOBBY_* environment variables, which may come from a .env file in
//     the working directory
//
// Unlike a server's config, every layer is optional: lobby runs against
// a local backend with no configuration at all. Path fields expand
// ${HOME} and ${VAR:-default} patterns after loading.
//
// Key exports:
//
//   - [Config] -- master struct with Server, Polling, Viewport, Join,
//     Notices, Log
//   - [Default] -- the built-in defaults
//   - [Load] and [LoadFile] -- the two entry points for loading
package config
