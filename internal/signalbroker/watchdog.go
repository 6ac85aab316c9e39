// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/vault/internal/ctxlog"
	"github.com/matt-FFFFFF/vault/internal/taskqueue"
)

// Submitter accepts pre-registered queue tokens.
type Submitter interface {
	SubmitToken(tok taskqueue.Token) error
}

// Watch monitors the signal channel until ctx is done or the channel is closed.
// The first signal of a given type submits tok; the second cancels the context and returns.
// Nothing here runs the shutdown itself.
func Watch(ctx context.Context, sigCh <-chan os.Signal, sub Submitter, tok taskqueue.Token, cancel context.CancelFunc) {
	logger := ctxlog.Logger(ctx)
	seen := make(map[os.Signal]struct{})

	for {
		var (
			sig os.Signal
			ok  bool
		)

		select {
		case <-ctx.Done():
			return
		case sig, ok = <-sigCh:
			if !ok {
				return
			}
		}

		if _, again := seen[sig]; again {
			logger.Warn("watchdog", "detail", "received second signal of type, forcefully terminating", "signal", sig.String())
			cancel()

			return
		}

		seen[sig] = struct{}{}

		logger.Info("watchdog", "detail", "received signal, requesting shutdown", "signal", sig.String())

		if err := sub.SubmitToken(tok); err != nil {
			logger.Error("watchdog", "detail", "failed to submit shutdown", "error", err)
		}
	}
}
