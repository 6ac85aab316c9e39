// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	custom := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	assert.Same(t, custom, Logger(New(context.Background(), custom)))
	assert.Same(t, DefaultLogger, Logger(New(context.Background(), nil)))
}

func TestLogger(t *testing.T) {
	tests := []struct {
		name string
		ctx  context.Context
	}{
		{name: "no logger", ctx: context.Background()},
		{name: "nil logger value", ctx: context.WithValue(context.Background(), loggerKey{}, nil)},
		{name: "wrong type value", ctx: context.WithValue(context.Background(), loggerKey{}, "not a logger")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Same(t, DefaultLogger, Logger(tt.ctx))
		})
	}
}

func TestLoggingFunctions(t *testing.T) {
	var buf bytes.Buffer

	ctx := New(context.Background(), slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	tests := []struct {
		name    string
		logFunc func(context.Context, string, ...any)
		want    string
	}{
		{name: "debug", logFunc: Debug, want: "DEBUG"},
		{name: "info", logFunc: Info, want: "INFO"},
		{name: "warn", logFunc: Warn, want: "WARN"},
		{name: "error", logFunc: Error, want: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.logFunc(ctx, "shutdown requested", "source", "signal")

			assert.Contains(t, buf.String(), tt.want)
			assert.Contains(t, buf.String(), "shutdown requested")
			assert.Contains(t, buf.String(), "source=signal")
		})
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{in: "DEBUG", want: slog.LevelDebug},
		{in: "info", want: slog.LevelInfo},
		{in: " Warn ", want: slog.LevelWarn},
		{in: "warning", want: slog.LevelWarn},
		{in: "ERROR", want: slog.LevelError},
		{in: "", want: slog.LevelInfo, wantErr: true},
		{in: "verbose", want: slog.LevelInfo, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownLevel)
			} else {
				require.NoError(t, err)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLogLevelFromEnv(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "ERROR")
	assert.Equal(t, slog.LevelError, logLevelFromEnv())

	t.Setenv(LogLevelEnvVar, "nonsense")
	assert.Equal(t, slog.LevelInfo, logLevelFromEnv())
}

func TestNewLogger(t *testing.T) {
	original := LevelVar.Level()
	defer LevelVar.Set(original)

	LevelVar.Set(slog.LevelInfo)

	var buf bytes.Buffer

	jsonLogger, err := NewLogger(FormatJSON, &buf)
	require.NoError(t, err)
	jsonLogger.Info("dispatcher running")
	assert.Contains(t, buf.String(), `"msg":"dispatcher running"`)

	buf.Reset()

	pretty, err := NewLogger("", &buf)
	require.NoError(t, err)
	pretty.Info("dispatcher running")
	assert.Contains(t, buf.String(), "INFO:")

	_, err = NewLogger("xml", &buf)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}
