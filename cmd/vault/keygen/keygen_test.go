// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package keygen

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/vault/internal/entropy"
	"github.com/matt-FFFFFF/vault/internal/keymaterial"
	"github.com/prashantv/gostub"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

type failingReader struct{ after int }

func (r *failingReader) Read(p []byte) (int, error) {
	if r.after <= 0 {
		return 0, errors.New("entropy exhausted")
	}

	n := min(len(p), r.after)
	r.after -= n

	return n, nil
}

func runKeygen(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var out, errOut bytes.Buffer

	root := &cli.Command{
		Name:           "vault",
		Commands:       []*cli.Command{NewKeygenCmd()},
		Writer:         &out,
		ErrWriter:      &errOut,
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}

	err := root.Run(context.Background(), append([]string{"vault", "keygen", "--log-format", "json"}, args...))

	return out.String(), errOut.String(), err
}

func TestKeygen_PrintsHex(t *testing.T) {
	out, _, err := runKeygen(t)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 6)

	combined := strings.TrimPrefix(lines[2], "Generated AES-512 Key: ")
	assert.Len(t, combined, 2*keymaterial.Secret512Size)
	assert.Equal(t,
		strings.TrimPrefix(lines[0], "Generated AES-256 Key 1: ")+strings.TrimPrefix(lines[1], "Generated AES-256 Key 2: "),
		combined,
	)
}

func TestKeygen_HideKeys(t *testing.T) {
	out, _, err := runKeygen(t, "--hide-keys")
	require.NoError(t, err)
	assert.Equal(t, 6, strings.Count(out, "fp:"))
}

func TestKeygen_WeakEntropyFails(t *testing.T) {
	var provider *entropy.Handle

	stubs := gostub.Stub(&openProvider, func(ctx context.Context) (entropy.Provider, error) {
		h, err := entropy.OpenReader(ctx, &failingReader{after: 1 + keymaterial.Secret256Size})
		provider = h

		return h, err
	})
	defer stubs.Reset()

	out, errOut, err := runKeygen(t)
	require.Error(t, err)
	assert.Empty(t, out)
	assert.Contains(t, errOut, keymaterial.ErrWeakKeyMaterial.Error())
	require.NotNil(t, provider)
	assert.True(t, provider.Closed(), "provider is released on failure")
}
