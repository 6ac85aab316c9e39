// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package taskqueue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/matt-FFFFFF/vault/internal/ctxlog"
)

// ErrUnknownToken is returned by SubmitToken for a token with no registered action.
var ErrUnknownToken = errors.New("no action registered for token")

// Action is a deferred unit of work run on the consumer's goroutine.
type Action func(ctx context.Context)

// Token identifies a pre-registered action.
type Token uint8

// ErrActionPanic wraps the value recovered from a panicking action.
type ErrActionPanic struct {
	v any
}

// Error implements the error interface for ErrActionPanic.
func (e *ErrActionPanic) Error() string {
	return fmt.Sprintf("deferred action panic: %v", e.v)
}

// Queue is safe for concurrent Submit and SubmitToken. DrainAndExecute is meant for a single consumer.
type Queue struct {
	mu         sync.Mutex
	pending    []Action
	registered map[Token]Action
	ready      chan struct{}
}

// New returns an empty queue.
func New() *Queue {
	return &Queue{
		registered: make(map[Token]Action),
		ready:      make(chan struct{}, 1),
	}
}

// Submit appends a to the queue. A nil action is ignored.
func (q *Queue) Submit(a Action) {
	if a == nil {
		return
	}

	q.mu.Lock()
	q.pending = append(q.pending, a)
	q.mu.Unlock()

	q.notify()
}

// Register binds a to tok, replacing any previous binding.
func (q *Queue) Register(tok Token, a Action) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if a == nil {
		delete(q.registered, tok)
		return
	}

	q.registered[tok] = a
}

// SubmitToken enqueues the action registered for tok.
func (q *Queue) SubmitToken(tok Token) error {
	q.mu.Lock()

	a, ok := q.registered[tok]
	if !ok {
		q.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrUnknownToken, tok)
	}

	q.pending = append(q.pending, a)
	q.mu.Unlock()

	q.notify()

	return nil
}

// Ready returns a channel that receives after a submission.
// A single notification may cover several submissions.
func (q *Queue) Ready() <-chan struct{} {
	return q.ready
}

// Len returns the number of pending actions.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}

// DrainAndExecute runs every action pending at the time of the call, in submission order,
// on the calling goroutine, and returns how many ran. The lock is held only for the swap.
func (q *Queue) DrainAndExecute(ctx context.Context) int {
	q.mu.Lock()
	batch := q.pending
	q.pending = nil
	q.mu.Unlock()

	for _, a := range batch {
		q.execute(ctx, a)
	}

	return len(batch)
}

func (q *Queue) execute(ctx context.Context, a Action) {
	defer func() {
		if r := recover(); r != nil {
			ctxlog.Error(ctx, "deferred action panicked", "error", &ErrActionPanic{v: r})
		}
	}()

	a(ctx)
}

func (q *Queue) notify() {
	select {
	case q.ready <- struct{}{}:
	default:
	}
}
