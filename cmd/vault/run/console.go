// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package run

import (
	"bytes"
	"io"
	"os"
	"sync"

	"golang.org/x/term"
)

// console owns the terminal for the duration of a run.
// In raw mode the terminal no longer translates "\n", so the output writers do.
type console struct {
	out     io.Writer
	errOut  io.Writer
	state   *term.State
	fd      int
	rawMode bool
}

func openConsole(in *os.File, out, errOut io.Writer, raw bool) (*console, error) {
	if out == nil {
		out = os.Stdout
	}

	if errOut == nil {
		errOut = os.Stderr
	}

	c := &console{
		out:    &lockedWriter{w: out},
		errOut: &lockedWriter{w: errOut},
	}

	if !raw || in == nil || !term.IsTerminal(int(in.Fd())) {
		return c, nil
	}

	fd := int(in.Fd())

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	c.fd = fd
	c.state = state
	c.rawMode = true
	c.out = &lockedWriter{w: crlfWriter{w: out}}
	c.errOut = &lockedWriter{w: crlfWriter{w: errOut}}

	return c, nil
}

// Restore puts the terminal back into the mode it was in before openConsole.
func (c *console) Restore() error {
	if !c.rawMode {
		return nil
	}

	c.rawMode = false

	return term.Restore(c.fd, c.state)
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) Write(p []byte) (int, error) {
	lw.mu.Lock()
	defer lw.mu.Unlock()

	return lw.w.Write(p)
}

type crlfWriter struct {
	w io.Writer
}

func (cw crlfWriter) Write(p []byte) (int, error) {
	if _, err := cw.w.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n"))); err != nil {
		return 0, err
	}

	return len(p), nil
}
