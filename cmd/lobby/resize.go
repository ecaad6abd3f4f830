// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
)

// forwardResizes calls resize with the measured width after every
// signal until ctx is done. Measurements that fail are skipped.
func forwardResizes(ctx context.Context, signals <-chan os.Signal, measure func() (int, bool), resize func(width int)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-signals:
			if width, ok := measure(); ok {
				resize(width)
			}
		}
	}
}
