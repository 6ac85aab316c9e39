// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package ctxlog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevelEnvVar is the environment variable that sets the initial log level.
const LogLevelEnvVar = "VAULT_LOG_LEVEL"

// Log output formats accepted by NewLogger.
const (
	FormatPretty = "pretty"
	FormatJSON   = "json"
)

var (
	// ErrUnknownLevel is returned when a log level name cannot be parsed.
	ErrUnknownLevel = errors.New("unknown log level")
	// ErrUnknownFormat is returned when a log format name is not supported.
	ErrUnknownFormat = errors.New("unknown log format")
)

type loggerKey struct{}

// LevelVar is shared by every logger built by this package so the level can be changed at runtime.
var LevelVar = &slog.LevelVar{}

// DefaultLogger is a pretty console logger on stderr, used if no logger is provided.
var DefaultLogger = slog.New(NewPrettyHandler(&slog.HandlerOptions{
	Level: LevelVar,
},
	WithAutoColour(),
	WithDestinationWriter(os.Stderr),
))

func init() {
	LevelVar.Set(logLevelFromEnv())
}

// New returns a copy of ctx carrying logger.
// If logger is nil, it uses the default logger.
func New(ctx context.Context, logger *slog.Logger) context.Context {
	if logger == nil {
		logger = DefaultLogger
	}

	return context.WithValue(ctx, loggerKey{}, logger)
}

// NewLogger builds a logger writing to w in the given format, sharing LevelVar.
func NewLogger(format string, w io.Writer) (*slog.Logger, error) {
	if w == nil {
		w = os.Stderr
	}

	switch strings.ToLower(format) {
	case "", FormatPretty:
		return slog.New(NewPrettyHandler(&slog.HandlerOptions{Level: LevelVar},
			WithAutoColour(),
			WithDestinationWriter(w),
		)), nil
	case FormatJSON:
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: LevelVar})), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Logger returns the logger from the context, or the default logger if not found.
func Logger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(loggerKey{}).(*slog.Logger)
	if !ok || logger == nil {
		return DefaultLogger
	}

	return logger
}

// Info logs an info message with the given context.
func Info(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Info(msg, args...)
}

// Debug logs a debug message with the given context.
func Debug(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Debug(msg, args...)
}

// Warn logs a warning message with the given context.
func Warn(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Warn(msg, args...)
}

// Error logs an error message with the given context.
func Error(ctx context.Context, msg string, args ...any) {
	Logger(ctx).Error(msg, args...)
}

// ParseLevel converts a level name (DEBUG, INFO, WARN, ERROR, any case) to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}

func logLevelFromEnv() slog.Level {
	level, err := ParseLevel(os.Getenv(LogLevelEnvVar))
	if err != nil {
		return slog.LevelInfo
	}

	return level
}
