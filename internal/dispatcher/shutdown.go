// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatcher

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/vault/internal/ctxlog"
	"github.com/matt-FFFFFF/vault/internal/lifecycle"
)

// shutdown is the action bound to ShutdownToken. It only ever runs on the dispatcher goroutine.
// The running flag is cleared before the monitor is joined so the join is bounded by one poll interval.
func (r *Runtime) shutdown(ctx context.Context) {
	logger := ctxlog.Logger(ctx)

	if !r.shuttingDown.CompareAndSwap(false, true) {
		logger.Debug("shutdown already performed, ignoring duplicate request")
		return
	}

	if r.state.CompareAndSwap(int32(lifecycle.StateRunning), int32(lifecycle.StateDraining)) {
		r.opts.Reporter.Report(lifecycle.Event{
			Type:      lifecycle.EventTransition,
			State:     lifecycle.StateDraining,
			Message:   "Shutting down application...",
			Timestamp: time.Now(),
		})
	}

	r.running.Store(false)

	var result *multierror.Error

	if r.provider != nil {
		if err := r.provider.Close(); err != nil {
			result = multierror.Append(result, errors.Join(ErrReleaseProvider, err))
		}

		r.provider = nil

		logger.Debug("entropy provider released")
	}

	if r.monitor != nil {
		_ = r.monitor.Wait()
		r.monitor = nil

		logger.Debug("monitor joined")
	}

	r.shutdownErr = result.ErrorOrNil()

	if r.shutdownErr != nil {
		logger.Error("shutdown completed with errors", "error", r.shutdownErr)
		r.opts.Reporter.Report(lifecycle.Event{
			Type:      lifecycle.EventFailed,
			State:     r.State(),
			Message:   "Shutdown completed with errors",
			Timestamp: time.Now(),
			Err:       r.shutdownErr,
		})
	}
}
