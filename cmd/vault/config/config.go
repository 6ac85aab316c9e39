// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config contains the config subcommand, which prints the effective configuration.
package config

import (
	"context"
	"fmt"
	"strings"

	"github.com/matt-FFFFFF/vault/cmd/vault/cmdstate"
	"github.com/matt-FFFFFF/vault/internal/config"
	"github.com/matt-FFFFFF/vault/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

const (
	formatFlag = "format"
	formatYAML = "yaml"
	formatHCL  = "hcl"
	cliExitStr = ""
)

// ConfigCmd is the command that prints the effective configuration.
var ConfigCmd = NewConfigCmd()

// NewConfigCmd returns a new config command.
func NewConfigCmd() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Print the effective configuration",
		Description: `Load the configuration file and flags exactly as the run command would
and print the result. The output can be used as a configuration file.`,
		Flags: append(cmdstate.Flags(), &cli.StringFlag{
			Name:     formatFlag,
			Aliases:  []string{"o"},
			Usage:    "Output format: yaml or hcl",
			Value:    formatYAML,
			OnlyOnce: true,
		}),
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	cfg, err := cmdstate.Load(ctx, cmd)
	if err != nil {
		ctxlog.Logger(ctx).Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	var out []byte

	switch f := strings.ToLower(cmd.String(formatFlag)); f {
	case formatYAML:
		if out, err = config.ToYAML(cfg); err != nil {
			ctxlog.Logger(ctx).Error("failed to render configuration", "error", err)
			return cli.Exit(cliExitStr, 1)
		}
	case formatHCL:
		out = config.ToHCL(cfg)
	default:
		return cli.Exit(fmt.Sprintf("unknown format %q, expected yaml or hcl", f), 1)
	}

	if _, err := cmd.Root().Writer.Write(out); err != nil {
		return cli.Exit(err.Error(), 1)
	}

	return nil
}
