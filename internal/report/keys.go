// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/vault/internal/color"
	"github.com/matt-FFFFFF/vault/internal/keymaterial"
)

const fingerprintPrefix = "fp:"

// Printer writes generated key material to W.
// With Reveal false only fingerprints are written, never the secret bytes.
type Printer struct {
	W      io.Writer
	Reveal bool
	Colour bool
}

// NewPrinter returns a Printer on w with colour enabled when the terminal supports it.
func NewPrinter(w io.Writer, reveal bool) *Printer {
	return &Printer{W: w, Reveal: reveal, Colour: color.Enabled()}
}

// ReportKeys writes every secret and parameter, one per line.
func (p *Printer) ReportKeys(_ context.Context, m *keymaterial.Material, params *keymaterial.Parameters) error {
	var result *multierror.Error

	if m != nil {
		result = multierror.Append(result,
			p.line("Generated AES-256 Key 1", m.First[:]),
			p.line("Generated AES-256 Key 2", m.Second[:]),
			p.line("Generated AES-512 Key", m.Combined[:]),
		)
	}

	if params != nil {
		result = multierror.Append(result,
			p.line("IV", params.IV[:]),
			p.line("Nonce", params.Nonce[:]),
			p.line("Authentication Tag", params.AuthTag[:]),
		)
	}

	return result.ErrorOrNil()
}

func (p *Printer) line(label string, secret []byte) error {
	w := p.W
	if w == nil {
		w = os.Stdout
	}

	value := fingerprintPrefix + keymaterial.Fingerprint(secret)
	if p.Reveal {
		value = fmt.Sprintf("%x", secret)
	}

	_, err := fmt.Fprintf(w, "%s %s\n",
		color.Wrap(p.Colour, label+":", color.Bold, color.FgCyan),
		color.Wrap(p.Colour, value, color.FgHiWhite),
	)

	return err
}
