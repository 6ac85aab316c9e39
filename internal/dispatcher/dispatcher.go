// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatcher

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/matt-FFFFFF/vault/internal/ctxlog"
	"github.com/matt-FFFFFF/vault/internal/entropy"
	"github.com/matt-FFFFFF/vault/internal/keymaterial"
	"github.com/matt-FFFFFF/vault/internal/lifecycle"
	"github.com/matt-FFFFFF/vault/internal/monitor"
	"github.com/matt-FFFFFF/vault/internal/taskqueue"
)

// ShutdownToken is the queue token bound to the shutdown action of every Runtime.
const ShutdownToken taskqueue.Token = 1

var (
	// ErrStartup is returned by Run when the runtime could not reach the running state.
	ErrStartup = errors.New("runtime failed to start")
	// ErrAlreadyStarted is returned when Run is called more than once on a Runtime.
	ErrAlreadyStarted = errors.New("runtime has already been started")
	// ErrReleaseProvider is returned when closing the entropy provider fails during shutdown.
	ErrReleaseProvider = errors.New("failed to release entropy provider")
)

// OpenFunc opens the entropy provider.
type OpenFunc func(ctx context.Context) (entropy.Provider, error)

// KeySink receives the key material generated at startup. The values are wiped after it returns.
type KeySink interface {
	ReportKeys(ctx context.Context, m *keymaterial.Material, p *keymaterial.Parameters) error
}

// KeySinkFunc adapts a function to KeySink.
type KeySinkFunc func(ctx context.Context, m *keymaterial.Material, p *keymaterial.Parameters) error

// ReportKeys implements KeySink.
func (f KeySinkFunc) ReportKeys(ctx context.Context, m *keymaterial.Material, p *keymaterial.Parameters) error {
	return f(ctx, m, p)
}

// Options configure a Runtime. The zero value is usable.
type Options struct {
	// Open defaults to the system CSPRNG.
	Open OpenFunc
	// Trigger is polled by the background monitor. Nil means no monitor is spawned.
	Trigger monitor.Trigger
	// PollInterval is used by both the monitor and the idle dispatcher. Defaults to monitor.DefaultInterval.
	PollInterval time.Duration
	// Reporter receives lifecycle events. Defaults to a null reporter.
	Reporter lifecycle.Reporter
	// KeySink receives the startup key material. Optional.
	KeySink KeySink
	// OnStart runs on the dispatcher after key material is reported and before the monitor is spawned.
	// An error is logged and does not stop the runtime.
	OnStart func(ctx context.Context) error
}

// Runtime is one dispatcher with its queue, running flag, provider and monitor.
type Runtime struct {
	opts  Options
	queue *taskqueue.Queue

	running      atomic.Bool
	started      atomic.Bool
	shuttingDown atomic.Bool
	state        atomic.Int32

	// owned by the dispatcher goroutine
	provider    entropy.Provider
	monitor     *Worker
	shutdownErr error
}

// New returns a Runtime ready to Run.
func New(opts Options) *Runtime {
	if opts.Open == nil {
		opts.Open = openSystem
	}

	if opts.PollInterval <= 0 {
		opts.PollInterval = monitor.DefaultInterval
	}

	if opts.Reporter == nil {
		opts.Reporter = lifecycle.NewNullReporter()
	}

	r := &Runtime{
		opts:  opts,
		queue: taskqueue.New(),
	}
	r.state.Store(int32(lifecycle.StateStarting))
	r.queue.Register(ShutdownToken, r.shutdown)

	return r
}

func openSystem(ctx context.Context) (entropy.Provider, error) {
	h, err := entropy.Open(ctx)
	if err != nil {
		return nil, err
	}

	return h, nil
}

// Queue returns the runtime's task queue.
func (r *Runtime) Queue() *taskqueue.Queue {
	return r.queue
}

// Submit queues a to run on the dispatcher.
func (r *Runtime) Submit(a taskqueue.Action) {
	r.queue.Submit(a)
}

// RequestShutdown queues the shutdown action. It is safe to call from any goroutine, any number of times.
func (r *Runtime) RequestShutdown() {
	_ = r.queue.SubmitToken(ShutdownToken) // registered in New
}

// Running reports the running flag.
func (r *Runtime) Running() bool {
	return r.running.Load()
}

// State returns the current lifecycle state.
func (r *Runtime) State() lifecycle.State {
	return lifecycle.State(r.state.Load())
}

// Start runs Run on a new goroutine and returns its handle.
func (r *Runtime) Start(ctx context.Context) *Worker {
	return spawn(func() error { return r.Run(ctx) })
}

// Run drives the runtime on the calling goroutine until shutdown completes.
// It returns an error wrapping ErrStartup if the runtime never reached the running state,
// otherwise any error from releasing resources during shutdown.
func (r *Runtime) Run(ctx context.Context) error {
	if !r.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	logger := ctxlog.Logger(ctx).With("component", "dispatcher")
	ctx = ctxlog.New(ctx, logger)

	r.running.Store(true)
	r.transition(lifecycle.StateStarting, "Starting application")

	if err := r.startup(ctx); err != nil {
		logger.Error("startup failed", "error", err)
		r.opts.Reporter.Report(lifecycle.Event{
			Type:      lifecycle.EventFailed,
			State:     r.State(),
			Message:   "Startup failed",
			Timestamp: time.Now(),
			Err:       err,
		})
		r.shutdown(ctx)
		r.transition(lifecycle.StateTerminated, "Application terminated")

		return errors.Join(ErrStartup, err)
	}

	r.transition(lifecycle.StateRunning, "Application is running...")
	r.loop(ctx)

	if n := r.queue.Len(); n > 0 {
		logger.Debug("discarding actions submitted after shutdown", "pending", n)
	}

	r.transition(lifecycle.StateTerminated, "Application terminated")

	return r.shutdownErr
}

func (r *Runtime) startup(ctx context.Context) error {
	logger := ctxlog.Logger(ctx)

	provider, err := r.opts.Open(ctx)
	if err != nil {
		return err
	}

	r.provider = provider

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

	logger.Debug("key material generated",
		"first", keymaterial.Fingerprint(material.First[:]),
		"second", keymaterial.Fingerprint(material.Second[:]),
	)

	if r.opts.KeySink != nil {
		if err := r.opts.KeySink.ReportKeys(ctx, material, params); err != nil {
			logger.Warn("failed to report key material", "error", err)
		}
	}

	if r.opts.OnStart != nil {
		if err := r.opts.OnStart(ctx); err != nil {
			logger.Warn("startup hook failed", "error", err)
		}
	}

	if r.opts.Trigger != nil {
		m := &monitor.Monitor{Interval: r.opts.PollInterval, Trigger: r.opts.Trigger}
		r.monitor = spawn(func() error {
			m.Run(ctx, &r.running, r.onTrigger)
			return nil
		})
	}

	return nil
}

func (r *Runtime) onTrigger(reason string) {
	r.opts.Reporter.Report(lifecycle.Event{
		Type:      lifecycle.EventTrigger,
		State:     r.State(),
		Message:   reason,
		Timestamp: time.Now(),
	})
	r.RequestShutdown()
}

func (r *Runtime) loop(ctx context.Context) {
	logger := ctxlog.Logger(ctx)

	ticker := time.NewTicker(r.opts.PollInterval)
	defer ticker.Stop()

	done := ctx.Done()

	for r.running.Load() {
		select {
		case <-r.queue.Ready():
		case <-ticker.C:
		case <-done:
			logger.Warn("run context cancelled, requesting shutdown", "error", ctx.Err())

			done = nil

			r.RequestShutdown()
		}

		if n := r.queue.DrainAndExecute(ctx); n > 0 {
			logger.Debug("executed deferred actions", "count", n)
		}
	}
}

func (r *Runtime) transition(to lifecycle.State, msg string) {
	r.state.Store(int32(to))
	r.opts.Reporter.Report(lifecycle.Event{
		Type:      lifecycle.EventTransition,
		State:     to,
		Message:   msg,
		Timestamp: time.Now(),
	})
}
