// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"

	"github.com/matt-FFFFFF/vault/internal/keymaterial"
	"github.com/matt-FFFFFF/vault/internal/lifecycle"
	"github.com/prashantv/gostub"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMaterial() (*keymaterial.Material, *keymaterial.Parameters) {
	var a, b keymaterial.Secret256
	for i := range a {
		a[i] = 0xAA
		b[i] = 0x01
	}

	m := &keymaterial.Material{First: a, Second: b, Combined: keymaterial.Concatenate(a, b)}
	p := &keymaterial.Parameters{}
	p.IV[0] = 0xFF

	return m, p
}

func TestPrinter_RevealWritesHex(t *testing.T) {
	var buf bytes.Buffer

	m, p := testMaterial()
	pr := &Printer{W: &buf, Reveal: true}

	require.NoError(t, pr.ReportKeys(context.Background(), m, p))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 6)

	assert.Equal(t, "Generated AES-256 Key 1: "+strings.Repeat("aa", 32), lines[0])
	assert.Equal(t, "Generated AES-256 Key 2: "+strings.Repeat("01", 32), lines[1])
	assert.Equal(t, "Generated AES-512 Key: "+strings.Repeat("aa", 32)+strings.Repeat("01", 32), lines[2])
	assert.Equal(t, "IV: ff"+strings.Repeat("00", 15), lines[3])
	assert.True(t, strings.HasPrefix(lines[4], "Nonce: "))
	assert.Len(t, strings.TrimPrefix(lines[4], "Nonce: "), 24)
	assert.True(t, strings.HasPrefix(lines[5], "Authentication Tag: "))
}

func TestPrinter_HiddenWritesFingerprints(t *testing.T) {
	var buf bytes.Buffer

	m, p := testMaterial()
	pr := &Printer{W: &buf}

	require.NoError(t, pr.ReportKeys(context.Background(), m, p))

	out := buf.String()
	assert.NotContains(t, out, strings.Repeat("aa", 32))
	assert.Contains(t, out, "Generated AES-256 Key 1: fp:"+keymaterial.Fingerprint(m.First[:]))
}

func TestPrinter_Colour(t *testing.T) {
	var buf bytes.Buffer

	m, _ := testMaterial()
	pr := &Printer{W: &buf, Reveal: true, Colour: true}

	require.NoError(t, pr.ReportKeys(context.Background(), m, nil))
	assert.Contains(t, buf.String(), "\033[")
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestPrinter_WriteErrorsCollected(t *testing.T) {
	m, p := testMaterial()
	pr := &Printer{W: failWriter{}, Reveal: true}

	err := pr.ReportKeys(context.Background(), m, p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "6 errors occurred")
}

func TestReadFile(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "Tests/example_file.txt", []byte("hello vault"), 0o644))

	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return memFs })
	defer stubs.Reset()

	tests := []struct {
		name    string
		path    string
		want    string
		wantErr error
	}{
		{name: "existing", path: "Tests/example_file.txt", want: "hello vault"},
		{name: "missing", path: "Tests/nope.txt", wantErr: ErrFileNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := ReadFile(tc.path)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Contains(t, err.Error(), tc.path)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, string(data))
		})
	}
}

type deniedFs struct {
	afero.Fs
}

func (deniedFs) Open(name string) (afero.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
}

func TestReadFile_Unreadable(t *testing.T) {
	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return deniedFs{afero.NewMemMapFs()} })
	defer stubs.Reset()

	_, err := ReadFile("Tests/example_file.txt")
	require.ErrorIs(t, err, ErrFileUnreadable)
	require.ErrorIs(t, err, fs.ErrPermission)
}

func TestPrintFile(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, "f.txt", []byte("line one"), 0o644))

	stubs := gostub.Stub(&FsFactory, func() afero.Fs { return memFs })
	defer stubs.Reset()

	var buf bytes.Buffer

	require.NoError(t, PrintFile(&buf, "f.txt", false))
	assert.Equal(t, "File Contents:\nline one\n", buf.String())

	buf.Reset()
	require.ErrorIs(t, PrintFile(&buf, "missing.txt", false), ErrFileNotFound)
	assert.Empty(t, buf.String())
}

func TestLifecyclePrinter(t *testing.T) {
	var buf bytes.Buffer

	lp := &LifecyclePrinter{W: &buf}

	for _, e := range []lifecycle.Event{
		{Type: lifecycle.EventTransition, State: lifecycle.StateStarting, Message: "Starting application"},
		{Type: lifecycle.EventTransition, State: lifecycle.StateRunning, Message: "Application is running..."},
		{Type: lifecycle.EventTrigger, State: lifecycle.StateRunning, Message: "termination key (q) pressed"},
		{Type: lifecycle.EventTransition, State: lifecycle.StateDraining, Message: "Shutting down application..."},
		{Type: lifecycle.EventTransition, State: lifecycle.StateTerminated, Message: "Application terminated"},
	} {
		lp.OnEvent(e)
	}

	assert.Equal(t, "Application is running...\nShutting down application...\n", buf.String())
}
