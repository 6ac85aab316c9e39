// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main contains the vault command-line interface (CLI).
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/matt-FFFFFF/vault"
	"github.com/matt-FFFFFF/vault/cmd/vault/config"
	"github.com/matt-FFFFFF/vault/cmd/vault/keygen"
	"github.com/matt-FFFFFF/vault/cmd/vault/run"
	"github.com/matt-FFFFFF/vault/internal/ctxlog"
	"github.com/urfave/cli/v3"
)

// rootCmd is the root command for the CLI.
var rootCmd = &cli.Command{
	Commands: []*cli.Command{
		config.ConfigCmd,
		keygen.KeygenCmd,
		run.RunCmd,
	},
	Writer:    os.Stdout,
	ErrWriter: os.Stderr,
	Name:      "vault",
	Description: `Vault is a small runtime that generates AES key material from the system entropy source,
prints a diagnostic report and then runs until a termination key, a signal or a timer stops it.
All work, including shutdown, runs on a single dispatcher goroutine.`,
	Usage:     "vault run",
	Copyright: "Copyright (c) matt-FFFFFF 2025. All rights reserved.",
	Authors: []any{
		"Matt White (matt-FFFFFF)",
	},
	EnableShellCompletion: true,
}

func main() {
	ctx := ctxlog.New(context.Background(), ctxlog.DefaultLogger)

	rootCmd.Version = fmt.Sprintf("%s (commit: %s)", vault.Version, vault.Commit)

	if err := rootCmd.Run(ctx, os.Args); err != nil {
		ctxlog.Logger(ctx).Error("command execution failed", "error", err)
		os.Exit(1)
	}
}
