// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !unix

package main

import (
	"context"
	"io"
)

// watchResize is a no-op where the platform sends no resize signal.
func watchResize(context.Context, io.Writer, func(int)) {}
