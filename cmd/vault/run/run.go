// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package run contains the run subcommand, which starts the runtime and waits for it to shut down.
package run

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/matt-FFFFFF/vault/cmd/vault/cmdstate"
	"github.com/matt-FFFFFF/vault/internal/color"
	"github.com/matt-FFFFFF/vault/internal/config"
	"github.com/matt-FFFFFF/vault/internal/ctxlog"
	"github.com/matt-FFFFFF/vault/internal/dispatcher"
	"github.com/matt-FFFFFF/vault/internal/lifecycle"
	"github.com/matt-FFFFFF/vault/internal/monitor"
	"github.com/matt-FFFFFF/vault/internal/report"
	"github.com/matt-FFFFFF/vault/internal/signalbroker"
	"github.com/urfave/cli/v3"
)

const (
	eventBufferSize = 16
	cliExitStr      = ""
)

// stdin is the input watched for termination keys.
var stdin = os.Stdin

// RunCmd is the command that starts the runtime.
var RunCmd = NewRunCmd()

// NewRunCmd returns a new run command.
func NewRunCmd() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Generate key material and run until stopped",
		Description: `Start the runtime. It opens the system entropy source, prints two AES-256 keys,
their 512-bit concatenation and an IV, nonce and authentication tag, then prints the diagnostic file.

The runtime stops when q, Q or ctrl-c is pressed, when a termination signal is received,
or when the --run-for duration has elapsed. A second signal of the same kind forces the run context to be cancelled.`,
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

	con, err := openConsole(stdin, root.Writer, root.ErrWriter, cfg.KeyMonitor)
	if err != nil {
		ctxlog.Logger(ctx).Error("failed to configure terminal", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	defer con.Restore() //nolint:errcheck

	ctx, err = cmdstate.WithLogger(ctx, cfg, con.errOut)
	if err != nil {
		ctxlog.Logger(ctx).Error(err.Error())
		return cli.Exit(cliExitStr, 1)
	}

	logger := ctxlog.Logger(ctx).With("command", cmd.Name)
	ctx = ctxlog.New(ctx, logger)

	if err := execute(ctx, cfg, con); err != nil {
		logger.Error("runtime failed", "error", err)
		return cli.Exit(cliExitStr, 1)
	}

	return nil
}

func execute(ctx context.Context, cfg *config.Config, con *console) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	colour := color.Enabled()

	reporter := lifecycle.NewChannelReporter(eventBufferSize)
	reporter.Listen(&report.LifecyclePrinter{W: con.out, Colour: colour})

	printer := report.NewPrinter(con.out, cfg.RevealKeys)
	printer.Colour = colour

	rt := dispatcher.New(dispatcher.Options{
		Trigger:      buildTrigger(cfg),
		PollInterval: cfg.PollInterval,
		Reporter:     reporter,
		KeySink:      printer,
		OnStart: func(ctx context.Context) error {
			path := cfg.DiagnosticPath()
			if path == "" {
				return nil
			}

			if err := report.PrintFile(con.out, path, colour); err != nil {
				return fmt.Errorf("diagnostic file: %w", err)
			}

			return nil
		},
	})

	sigCh := signalbroker.New(runCtx)
	defer signalbroker.Stop(sigCh)

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		signalbroker.Watch(runCtx, sigCh, rt.Queue(), dispatcher.ShutdownToken, cancel)
	}()

	err := rt.Run(runCtx)

	cancel()
	wg.Wait()
	reporter.Close()

	return err
}

func buildTrigger(cfg *config.Config) monitor.Trigger {
	var triggers []monitor.Trigger

	if cfg.KeyMonitor && stdin != nil {
		triggers = append(triggers, monitor.NewKeyTrigger(stdin))
	}

	if cfg.RunFor > 0 {
		triggers = append(triggers, monitor.NewTimerTrigger(cfg.RunFor))
	}

	return monitor.Any(triggers...)
}
