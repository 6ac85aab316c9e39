// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package monitor

import (
	"context"
	"time"

	"github.com/matt-FFFFFF/vault/internal/ctxlog"
)

// DefaultInterval is the polling interval used when none is set.
const DefaultInterval = 100 * time.Millisecond

// Flag is the shared running flag. *atomic.Bool satisfies it.
type Flag interface {
	Load() bool
}

// Monitor polls Trigger every Interval while the running flag is set.
type Monitor struct {
	Interval time.Duration
	Trigger  Trigger
}

// Run polls until the trigger fires, the flag is cleared or ctx is done.
// When the trigger fires submit is called once with the trigger's reason and Run returns that reason.
// An empty reason means the monitor stopped without firing.
func (m *Monitor) Run(ctx context.Context, running Flag, submit func(reason string)) string {
	logger := ctxlog.Logger(ctx).With("component", "monitor")

	if m.Trigger == nil {
		logger.Debug("no trigger configured, monitor not polling")
		return ""
	}

	interval := m.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Debug("monitor polling", "interval", interval.String())

	for running.Load() {
		if reason, fired := m.Trigger.Poll(ctx); fired {
			logger.Info("shutdown trigger fired", "reason", reason)
			submit(reason)

			return reason
		}

		select {
		case <-ctx.Done():
			logger.Debug("monitor context done", "error", ctx.Err())
			return ""
		case <-ticker.C:
		}
	}

	logger.Debug("running flag cleared, monitor exiting")

	return ""
}
