// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package lifecycle

import (
	"sync"
)

// ChannelReporter forwards events over a buffered channel.
// Report never blocks: when the buffer is full the event is dropped.
// Events reported before Close are still delivered to a listener.
type ChannelReporter struct {
	ch     chan Event
	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
	once   sync.Once
}

// NewChannelReporter creates a ChannelReporter with the given buffer size.
func NewChannelReporter(bufferSize int) *ChannelReporter {
	return &ChannelReporter{
		ch: make(chan Event, bufferSize),
	}
}

// Report implements Reporter.
func (cr *ChannelReporter) Report(event Event) {
	cr.mu.RLock()
	defer cr.mu.RUnlock()

	if cr.closed {
		return
	}

	select {
	case cr.ch <- event:
	default:
	}
}

// Close implements Reporter. It closes the channel and waits for the listener to drain it.
func (cr *ChannelReporter) Close() {
	cr.once.Do(func() {
		cr.mu.Lock()
		cr.closed = true
		close(cr.ch)
		cr.mu.Unlock()

		cr.wg.Wait()
	})
}

// Listen starts a goroutine feeding every event to listener until the reporter is closed.
func (cr *ChannelReporter) Listen(listener Listener) {
	cr.wg.Add(1)

	go func() {
		defer cr.wg.Done()

		for event := range cr.ch {
			listener.OnEvent(event)
		}
	}()
}

// Events returns the underlying channel for callers that want to consume events directly.
func (cr *ChannelReporter) Events() <-chan Event {
	return cr.ch
}
