// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package lifecycle

import (
	"sync"
	"time"
)

// State is a dispatcher state. The only transitions are
// Starting -> Running -> Draining -> Terminated and Starting -> Terminated.
type State int32

const (
	// StateStarting covers provider acquisition, key generation and spawning the monitor.
	StateStarting State = iota
	// StateRunning is the drain loop.
	StateRunning
	// StateDraining is entered when the shutdown action begins.
	StateDraining
	// StateTerminated is final.
	StateTerminated
)

// String implements the Stringer interface for State.
func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateDraining:
		return "draining"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// EventType is the kind of lifecycle event.
type EventType int

const (
	// EventTransition is emitted on every state change.
	EventTransition EventType = iota
	// EventTrigger is emitted when a shutdown source fires.
	EventTrigger
	// EventFailed is emitted when startup or shutdown reports an error.
	EventFailed
)

// String implements the Stringer interface for EventType.
func (et EventType) String() string {
	switch et {
	case EventTransition:
		return "transition"
	case EventTrigger:
		return "trigger"
	case EventFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is a single lifecycle notification.
type Event struct {
	Type      EventType
	State     State     // state after the event
	Message   string    // human readable
	Timestamp time.Time
	Err       error // set for EventFailed
}

// Reporter receives lifecycle events. Report must not block the caller.
type Reporter interface {
	Report(event Event)
	Close()
}

// Listener is fed events by a ChannelReporter.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(Event)

// OnEvent implements Listener.
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// NullReporter discards events.
type NullReporter struct{}

// Report implements Reporter.
func (NullReporter) Report(Event) {}

// Close implements Reporter.
func (NullReporter) Close() {}

// NewNullReporter returns a Reporter that discards everything.
func NewNullReporter() Reporter {
	return NullReporter{}
}

// Recorder keeps every event in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Report implements Reporter.
func (r *Recorder) Report(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
}

// Close implements Reporter.
func (r *Recorder) Close() {}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Event, len(r.events))
	copy(out, r.events)

	return out
}

// States returns the state of every transition event, in order.
func (r *Recorder) States() []State {
	var states []State

	for _, e := range r.Events() {
		if e.Type == EventTransition {
			states = append(states, e.State)
		}
	}

	return states
}
