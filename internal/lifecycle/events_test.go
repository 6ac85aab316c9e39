// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package lifecycle

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestState_String(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateStarting, "starting"},
		{StateRunning, "running"},
		{StateDraining, "draining"},
		{StateTerminated, "terminated"},
		{State(42), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.state.String())
		})
	}
}

func TestEventType_String(t *testing.T) {
	assert.Equal(t, "transition", EventTransition.String())
	assert.Equal(t, "trigger", EventTrigger.String())
	assert.Equal(t, "failed", EventFailed.String())
	assert.Equal(t, "unknown", EventType(99).String())
}

func TestNullReporter(t *testing.T) {
	r := NewNullReporter()
	require.NotNil(t, r)

	r.Report(Event{Type: EventTransition, State: StateRunning})
	r.Close()
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	r.Report(Event{Type: EventTransition, State: StateStarting})
	r.Report(Event{Type: EventTrigger, State: StateRunning, Message: "q pressed"})
	r.Report(Event{Type: EventTransition, State: StateRunning})

	assert.Len(t, r.Events(), 3)
	assert.Equal(t, []State{StateStarting, StateRunning}, r.States())
}

func TestChannelReporter_ListenDeliversAllBeforeClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	cr := NewChannelReporter(16)

	var (
		mu  sync.Mutex
		got []string
	)

	cr.Listen(ListenerFunc(func(e Event) {
		mu.Lock()
		got = append(got, e.Message)
		mu.Unlock()
	}))

	for _, m := range []string{"starting", "running", "shutting down"} {
		cr.Report(Event{Message: m, Timestamp: time.Now()})
	}

	cr.Close()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"starting", "running", "shutting down"}, got)
}

func TestChannelReporter_DropsWhenFullOrClosed(t *testing.T) {
	cr := NewChannelReporter(1)

	cr.Report(Event{Message: "kept"})
	cr.Report(Event{Message: "dropped"})

	cr.Close()
	cr.Close()
	cr.Report(Event{Message: "after close"})

	var msgs []string
	for e := range cr.Events() {
		msgs = append(msgs, e.Message)
	}

	assert.Equal(t, []string{"kept"}, msgs)
}
