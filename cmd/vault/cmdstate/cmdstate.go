// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmdstate holds the flags and setup shared by every subcommand:
// loading the configuration, applying flag overrides and building the logger.
package cmdstate

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/matt-FFFFFF/vault/internal/config"
	"github.com/matt-FFFFFF/vault/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

// Flag names.
const (
	ConfigFlag         = "config"
	RootDirFlag        = "root-dir"
	DiagnosticFileFlag = "diagnostic-file"
	PollIntervalFlag   = "poll-interval"
	RunForFlag         = "run-for"
	NoKeyMonitorFlag   = "no-key-monitor"
	HideKeysFlag       = "hide-keys"
	LogLevelFlag       = "log-level"
	LogFormatFlag      = "log-format"
)

// ErrLoadConfig is returned when the configuration cannot be loaded.
var ErrLoadConfig = errors.New("failed to load configuration")

// Flags returns a fresh set of the configuration flags.
func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    ConfigFlag,
			Aliases: []string{"c"},
			Usage: "URL of a YAML or HCL configuration file. " +
				"Supports Hashicorp's go-getter syntax for fetching files from various sources.",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:      RootDirFlag,
			Usage:     "Directory relative paths are resolved against",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.StringFlag{
			Name:      DiagnosticFileFlag,
			Usage:     "File printed at startup. Set to an empty string to disable",
			TakesFile: true,
			OnlyOnce:  true,
		},
		&cli.DurationFlag{
			Name:     PollIntervalFlag,
			Usage:    "Polling period of the monitor and the dispatcher",
			OnlyOnce: true,
		},
		&cli.DurationFlag{
			Name:     RunForFlag,
			Aliases:  []string{"t"},
			Usage:    "Shut down after this long. Zero runs until stopped",
			OnlyOnce: true,
		},
		&cli.BoolFlag{
			Name:        NoKeyMonitorFlag,
			Usage:       "Do not watch stdin for the termination keys",
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.BoolFlag{
			Name:        HideKeysFlag,
			Usage:       "Print key fingerprints instead of the key material",
			DefaultText: "false",
			OnlyOnce:    true,
		},
		&cli.StringFlag{
			Name:     LogLevelFlag,
			Usage:    "Log level: debug, info, warn or error. Overrides " + ctxlog.LogLevelEnvVar,
			OnlyOnce: true,
		},
		&cli.StringFlag{
			Name:     LogFormatFlag,
			Usage:    "Log format: pretty or json",
			OnlyOnce: true,
		},
	}
}

// Load reads the configuration file named by the config flag and applies any flags that were set.
func Load(ctx context.Context, cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(ctx, cmd.String(ConfigFlag))
	if err != nil {
		return nil, errors.Join(ErrLoadConfig, err)
	}

	if cmd.IsSet(RootDirFlag) {
		cfg.RootDir = cmd.String(RootDirFlag)
	}

	if cmd.IsSet(DiagnosticFileFlag) {
		cfg.DiagnosticFile = cmd.String(DiagnosticFileFlag)
	}

	if cmd.IsSet(PollIntervalFlag) {
		cfg.PollInterval = cmd.Duration(PollIntervalFlag)
	}

	if cmd.IsSet(RunForFlag) {
		cfg.RunFor = cmd.Duration(RunForFlag)
	}

	if cmd.IsSet(NoKeyMonitorFlag) {
		cfg.KeyMonitor = !cmd.Bool(NoKeyMonitorFlag)
	}

	if cmd.IsSet(HideKeysFlag) {
		cfg.RevealKeys = !cmd.Bool(HideKeysFlag)
	}

	if cmd.IsSet(LogLevelFlag) {
		cfg.LogLevel = cmd.String(LogLevelFlag)
	}

	if cmd.IsSet(LogFormatFlag) {
		cfg.LogFormat = cmd.String(LogFormatFlag)
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Join(ErrLoadConfig, err)
	}

	return cfg, nil
}

// WithLogger sets the log level from cfg and returns ctx carrying a logger writing to w.
func WithLogger(ctx context.Context, cfg *config.Config, w io.Writer) (context.Context, error) {
	if cfg.LogLevel != "" {
		level, err := ctxlog.ParseLevel(cfg.LogLevel)
		if err != nil {
			return ctx, err
		}

		ctxlog.LevelVar.Set(level)
	}

	logger, err := ctxlog.NewLogger(cfg.LogFormat, w)
	if err != nil {
		return ctx, fmt.Errorf("log_format: %w", err)
	}

	return ctxlog.New(ctx, logger), nil
}
