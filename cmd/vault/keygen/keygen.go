// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package keygen contains the keygen subcommand, which prints one set of key material and exits.
package keygen

import (
	"context"

	"github.com/hashicorp/go-multierror"
	"github.com/matt-FFFFFF/vault/cmd/vault/cmdstate"
	"github.com/matt-FFFFFF/vault/internal/ctxlog"
	"github.com/matt-FFFFFF/vault/internal/entropy"
	"github.com/matt-FFFFFF/vault/internal/keymaterial"
	"github.com/matt-FFFFFF/vault/internal/report"
	"github.com/urfave/cli/v3"
)

const cliExitStr = ""

// openProvider opens the entropy source used by the command.
var openProvider = func(ctx context.Context) (entropy.Provider, error) {
	h, err := entropy.Open(ctx)
	if err != nil {
		return nil, err
	}

	return h, nil
}

// KeygenCmd is the command that prints one set of key material.
var KeygenCmd = NewKeygenCmd()

// NewKeygenCmd returns a new keygen command.
func NewKeygenCmd() *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "Print one set of key material and exit",
		Description: `Generate two AES-256 keys, their 512-bit concatenation and an IV, nonce
and authentication tag from the system entropy source, print them and exit without starting the runtime.`,
		Flags:  cmdstate.Flags(),
		Action: actionFunc,
	}
}

func actionFunc(ctx context.Context, cmd *cli.Command) error {
	cfg, err := cmdstate.Load(ctx, cmd)
	if err != nil {
		ctxlog.Logger(ctx).Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	root := cmd.Root()

	ctx, err = cmdstate.WithLogger(ctx, cfg, root.ErrWriter)
	if err != nil {
		ctxlog.Logger(ctx).Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	if err := generate(ctx, report.NewPrinter(root.Writer, cfg.RevealKeys)); err != nil {
		ctxlog.Logger(ctx).Error("key generation failed", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}

func generate(ctx context.Context, sink *report.Printer) (err error) {
	provider, err := openProvider(ctx)
	if err != nil {
		return err
	}

	defer func() {
		if cerr := provider.Close(); cerr != nil {
			err = multierror.Append(err, cerr).ErrorOrNil()
		}
	}()

	material, err := keymaterial.Generate(provider)
	if err != nil {
		return err
	}
	defer material.Wipe()

	params, err := keymaterial.GenerateParameters(provider)
	if err != nil {
		return err
	}
	defer params.Wipe()

	return sink.ReportKeys(ctx, material, params)
}
