// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/matt-FFFFFF/vault/internal/color"
	"github.com/matt-FFFFFF/vault/internal/lifecycle"
)

// LifecyclePrinter writes the user facing lifecycle messages.
// Only the running and draining transitions are printed; everything else goes to the log.
type LifecyclePrinter struct {
	W      io.Writer
	Colour bool

	mu sync.Mutex
}

// OnEvent implements lifecycle.Listener.
func (lp *LifecyclePrinter) OnEvent(e lifecycle.Event) {
	if e.Type != lifecycle.EventTransition {
		return
	}

	var code color.Code

	switch e.State {
	case lifecycle.StateRunning:
		code = color.FgGreen
	case lifecycle.StateDraining:
		code = color.FgYellow
	default:
		return
	}

	lp.mu.Lock()
	defer lp.mu.Unlock()

	_, _ = fmt.Fprintln(lp.W, color.Wrap(lp.Colour, e.Message, code))
}
