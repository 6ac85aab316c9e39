// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package entropy

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/matt-FFFFFF/vault/internal/ctxlog"
)

var (
	// ErrOpen is returned when the random source cannot be initialised.
	ErrOpen = errors.New("failed to open entropy provider")
	// ErrFill is returned when the random source fails to fill a buffer.
	ErrFill = errors.New("failed to fill buffer from entropy provider")
	// ErrClosed is returned when a closed handle is used or closed again.
	ErrClosed = errors.New("entropy provider is closed")
)

// Provider is an open random source owned by a single caller.
type Provider interface {
	// Fill fills p completely. On error the contents of p are undefined.
	Fill(p []byte) error
	// Close releases the provider. Only the first call releases anything.
	Close() error
}

var _ Provider = (*Handle)(nil)

// Handle is an open entropy provider.
type Handle struct {
	mu     sync.Mutex
	src    io.Reader
	closed bool
}

// Open opens the platform CSPRNG.
func Open(ctx context.Context) (*Handle, error) {
	return OpenReader(ctx, rand.Reader)
}

// OpenReader opens a provider over src.
// The source is probed with a one byte read so an unusable source fails here rather than on first use.
func OpenReader(ctx context.Context, src io.Reader) (*Handle, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: nil source", ErrOpen)
	}

	var probe [1]byte
	if _, err := io.ReadFull(src, probe[:]); err != nil {
		return nil, errors.Join(ErrOpen, err)
	}

	ctxlog.Debug(ctx, "entropy provider opened", "source", fmt.Sprintf("%T", src))

	return &Handle{src: src}, nil
}

// Fill implements Provider.
func (h *Handle) Fill(p []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}

	n, err := io.ReadFull(h.src, p)
	if err != nil {
		return fmt.Errorf("%w: read %d of %d bytes: %w", ErrFill, n, len(p), err)
	}

	return nil
}

// Close implements Provider. A second call returns ErrClosed.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return ErrClosed
	}

	h.closed = true

	if c, ok := h.src.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("closing entropy source: %w", err)
		}
	}

	h.src = nil

	return nil
}

// Closed reports whether Close has been called.
func (h *Handle) Closed() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.closed
}
