// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker relays OS termination signals to a runtime.
// By default it listens for os.Interrupt, syscall.SIGINT, syscall.SIGTERM, and syscall.SIGQUIT signals.
//
// The first signal of a kind submits the shutdown token to the runtime's queue.
// A second signal of the same kind cancels the run context as a forced stop.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/vault/internal/ctxlog"
)

var termSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// New creates a channel that receives the OS signals that should terminate the process.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "signalbroker", "detail", "creating signal broker", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Stop stops relaying signals to ch. The channel is not closed.
func Stop(ch chan os.Signal) {
	signal.Stop(ch)
}
