// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/matt-FFFFFF/vault/internal/ctxlog"
	"github.com/matt-FFFFFF/vault/internal/taskqueue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const testToken taskqueue.Token = 7

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newQueue(hits *int32, mu *sync.Mutex) *taskqueue.Queue {
	q := taskqueue.New()
	q.Register(testToken, func(context.Context) {
		mu.Lock()
		*hits++
		mu.Unlock()
	})

	return q
}

func startWatch(ctx context.Context, ch <-chan os.Signal, sub Submitter, cancel context.CancelFunc) *sync.WaitGroup {
	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()
		Watch(ctx, ch, sub, testToken, cancel)
	}()

	return &wg
}

func TestWatch_FirstSignalSubmitsToken(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	var (
		hits int32
		mu   sync.Mutex
	)

	q := newQueue(&hits, &mu)
	sigCh := make(chan os.Signal, 1)
	wg := startWatch(ctx, sigCh, q, cancel)

	sigCh <- os.Interrupt

	require.Eventually(t, func() bool { return q.Len() == 1 }, time.Second, time.Millisecond)
	assert.NoError(t, ctx.Err(), "first signal must not cancel the context")

	q.DrainAndExecute(ctx)
	assert.Equal(t, int32(1), hits)

	close(sigCh)
	wg.Wait()
}

func TestWatch_SecondSignalCancels(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	var (
		hits int32
		mu   sync.Mutex
	)

	q := newQueue(&hits, &mu)
	sigCh := make(chan os.Signal, 2)
	sigCh <- os.Interrupt
	sigCh <- os.Interrupt

	startWatch(ctx, sigCh, q, cancel).Wait()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
	assert.Equal(t, 1, q.Len(), "only the first signal submits")
}

func TestWatch_DifferentSignalsNoCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx = ctxlog.New(ctx, ctxlog.DefaultLogger)

	var (
		hits int32
		mu   sync.Mutex
	)

	q := newQueue(&hits, &mu)
	sigCh := make(chan os.Signal, 2)
	sigCh <- syscall.SIGINT
	sigCh <- syscall.SIGTERM
	close(sigCh)

	startWatch(ctx, sigCh, q, cancel).Wait()

	assert.NoError(t, ctx.Err())
	assert.Equal(t, 2, q.Len())

	q.DrainAndExecute(ctx)
	assert.Equal(t, int32(2), hits)
}

func TestWatch_ReturnsOnContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal)

	wg := startWatch(ctx, sigCh, taskqueue.New(), cancel)
	cancel()
	wg.Wait()
}

func TestWatch_UnknownTokenLogged(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	sigCh <- os.Interrupt
	close(sigCh)

	// an unregistered token is reported and the watcher keeps going
	startWatch(ctx, sigCh, taskqueue.New(), cancel).Wait()
	assert.NoError(t, ctx.Err())
}

func TestNew_DefaultSignals(t *testing.T) {
	ch := New(context.Background())
	defer Stop(ch)

	assert.Equal(t, 1, cap(ch))
}
