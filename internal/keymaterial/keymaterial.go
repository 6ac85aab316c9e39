// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package keymaterial

import (
	"encoding/hex"
	"errors"
	"fmt"
)

// Sizes in bytes.
const (
	Secret256Size = 32
	Secret512Size = 64
	IVSize        = 16
	NonceSize     = 12
	AuthTagSize   = 16
)

// ErrWeakKeyMaterial is returned when any draw from the entropy provider fails.
var ErrWeakKeyMaterial = errors.New("key material generation failed")

// Filler fills a buffer with random bytes. entropy.Provider satisfies it.
type Filler interface {
	Fill(p []byte) error
}

// Secret256 is a 256-bit secret.
type Secret256 [Secret256Size]byte

// String returns the secret as lowercase hex.
func (s Secret256) String() string {
	return hex.EncodeToString(s[:])
}

// Secret512 is a 512-bit secret.
type Secret512 [Secret512Size]byte

// String returns the secret as lowercase hex.
func (s Secret512) String() string {
	return hex.EncodeToString(s[:])
}

// Material is two independently drawn 256-bit secrets and their concatenation.
type Material struct {
	First    Secret256
	Second   Secret256
	Combined Secret512
}

// Parameters are the per-session values drawn after the keys.
type Parameters struct {
	IV      [IVSize]byte
	Nonce   [NonceSize]byte
	AuthTag [AuthTagSize]byte
}

// GenerateTwo draws two 256-bit secrets with two separate fills.
func GenerateTwo(f Filler) (Secret256, Secret256, error) {
	var a, b Secret256

	if err := fill(f, a[:], "first"); err != nil {
		return Secret256{}, Secret256{}, err
	}

	if err := fill(f, b[:], "second"); err != nil {
		wipe(a[:])
		return Secret256{}, Secret256{}, err
	}

	return a, b, nil
}

// Concatenate returns a followed by b.
func Concatenate(a, b Secret256) Secret512 {
	var out Secret512

	copy(out[:Secret256Size], a[:])
	copy(out[Secret256Size:], b[:])

	return out
}

// Generate draws both halves and assembles the combined secret.
func Generate(f Filler) (*Material, error) {
	a, b, err := GenerateTwo(f)
	if err != nil {
		return nil, err
	}

	return &Material{
		First:    a,
		Second:   b,
		Combined: Concatenate(a, b),
	}, nil
}

// Wipe zeroes every secret held by m.
func (m *Material) Wipe() {
	if m == nil {
		return
	}

	wipe(m.First[:])
	wipe(m.Second[:])
	wipe(m.Combined[:])
}

// GenerateParameters draws the IV, nonce and authentication tag, each with its own fill.
func GenerateParameters(f Filler) (*Parameters, error) {
	p := &Parameters{}

	if err := fill(f, p.IV[:], "iv"); err != nil {
		return nil, err
	}

	if err := fill(f, p.Nonce[:], "nonce"); err != nil {
		p.Wipe()
		return nil, err
	}

	if err := fill(f, p.AuthTag[:], "auth tag"); err != nil {
		p.Wipe()
		return nil, err
	}

	return p, nil
}

// Wipe zeroes every value held by p.
func (p *Parameters) Wipe() {
	if p == nil {
		return
	}

	wipe(p.IV[:])
	wipe(p.Nonce[:])
	wipe(p.AuthTag[:])
}

func fill(f Filler, buf []byte, what string) error {
	if f == nil {
		return fmt.Errorf("%w: %s: no entropy provider", ErrWeakKeyMaterial, what)
	}

	if err := f.Fill(buf); err != nil {
		wipe(buf)
		return fmt.Errorf("%w: %s: %w", ErrWeakKeyMaterial, what, err)
	}

	return nil
}

func wipe(b []byte) {
	clear(b)
}
