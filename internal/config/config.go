// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/vault/internal/ctxlog"
)

// Defaults.
const (
	DefaultRootDir        = "."
	DefaultDiagnosticFile = "Tests/example_file.txt"
	DefaultPollInterval   = 100 * time.Millisecond
)

// ErrInvalidConfig is returned when one or more configuration values are invalid.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the effective runtime configuration.
type Config struct {
	// RootDir is the directory relative paths are resolved against.
	RootDir string
	// DiagnosticFile is printed at startup when set.
	DiagnosticFile string
	// PollInterval is the period of the monitor and the idle dispatcher.
	PollInterval time.Duration
	// RunFor stops the runtime after the given duration. Zero means no limit.
	RunFor time.Duration
	// KeyMonitor enables the termination key monitor on stdin.
	KeyMonitor bool
	// RevealKeys prints key material as hex instead of fingerprints.
	RevealKeys bool
	// LogLevel overrides the level from the environment when set.
	LogLevel string
	// LogFormat is ctxlog.FormatPretty or ctxlog.FormatJSON.
	LogFormat string
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		RootDir:        DefaultRootDir,
		DiagnosticFile: DefaultDiagnosticFile,
		PollInterval:   DefaultPollInterval,
		KeyMonitor:     true,
		RevealKeys:     true,
		LogFormat:      ctxlog.FormatPretty,
	}
}

// Validate reports every invalid value at once.
func (c *Config) Validate() error {
	var result error

	if c.PollInterval <= 0 {
		result = multierror.Append(result, fmt.Errorf("poll_interval must be positive, got %s", c.PollInterval))
	}

	if c.RunFor < 0 {
		result = multierror.Append(result, fmt.Errorf("run_for must not be negative, got %s", c.RunFor))
	}

	if c.LogLevel != "" {
		if _, err := ctxlog.ParseLevel(c.LogLevel); err != nil {
			result = multierror.Append(result, fmt.Errorf("log_level: %w", err))
		}
	}

	switch c.LogFormat {
	case ctxlog.FormatPretty, ctxlog.FormatJSON:
	default:
		result = multierror.Append(result, fmt.Errorf("log_format: %w: %q", ctxlog.ErrUnknownFormat, c.LogFormat))
	}

	if result != nil {
		return errors.Join(ErrInvalidConfig, result)
	}

	return nil
}

// DiagnosticPath returns the diagnostic file resolved against RootDir, or "" when disabled.
func (c *Config) DiagnosticPath() string {
	if c.DiagnosticFile == "" {
		return ""
	}

	if filepath.IsAbs(c.DiagnosticFile) {
		return c.DiagnosticFile
	}

	return filepath.Join(c.RootDir, c.DiagnosticFile)
}
