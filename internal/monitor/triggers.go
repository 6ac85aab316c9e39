// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package monitor

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// Ctrl-C as delivered by a terminal in raw mode.
const keyInterrupt byte = 0x03

// DefaultStopKeys are the keys that stop the runtime from the keyboard.
var DefaultStopKeys = []byte{'q', 'Q', keyInterrupt}

// Trigger is an external stop condition. Poll must not block.
type Trigger interface {
	Poll(ctx context.Context) (reason string, fired bool)
}

// TriggerFunc adapts a function to Trigger.
type TriggerFunc func(ctx context.Context) (string, bool)

// Poll implements Trigger.
func (f TriggerFunc) Poll(ctx context.Context) (string, bool) {
	return f(ctx)
}

// KeyTrigger fires when one of its keys is read from the input.
type KeyTrigger struct {
	keys    map[byte]struct{}
	pressed chan byte
}

// NewKeyTrigger starts reading r on its own goroutine. With no keys given DefaultStopKeys are used.
// The reader goroutine exits at EOF or on the first read error; neither fires the trigger.
func NewKeyTrigger(r io.Reader, keys ...byte) *KeyTrigger {
	if len(keys) == 0 {
		keys = DefaultStopKeys
	}

	kt := &KeyTrigger{
		keys:    make(map[byte]struct{}, len(keys)),
		pressed: make(chan byte, 1),
	}

	for _, k := range keys {
		kt.keys[k] = struct{}{}
	}

	go kt.read(r)

	return kt
}

func (kt *KeyTrigger) read(r io.Reader) {
	buf := make([]byte, 64)

	for {
		n, err := r.Read(buf)
		for _, b := range buf[:n] {
			if _, ok := kt.keys[b]; ok {
				kt.pressed <- b
				return
			}
		}

		if err != nil {
			return
		}
	}
}

// Poll implements Trigger.
func (kt *KeyTrigger) Poll(context.Context) (string, bool) {
	select {
	case k := <-kt.pressed:
		if k == keyInterrupt {
			return "termination key (ctrl-c) pressed", true
		}

		return fmt.Sprintf("termination key (%c) pressed", k), true
	default:
		return "", false
	}
}

// TimerTrigger fires once its duration has elapsed since the first poll.
type TimerTrigger struct {
	d     time.Duration
	now   func() time.Time
	once  sync.Once
	start time.Time
}

// NewTimerTrigger returns a trigger that fires d after it is first polled.
func NewTimerTrigger(d time.Duration) *TimerTrigger {
	return &TimerTrigger{d: d, now: time.Now}
}

// Poll implements Trigger.
func (tt *TimerTrigger) Poll(context.Context) (string, bool) {
	tt.once.Do(func() { tt.start = tt.now() })

	if tt.now().Sub(tt.start) >= tt.d {
		return fmt.Sprintf("run time of %s elapsed", tt.d), true
	}

	return "", false
}

type anyTrigger []Trigger

// Any returns a trigger that fires with the reason of the first of triggers to fire.
// Nil triggers are skipped. With no usable triggers it returns nil.
func Any(triggers ...Trigger) Trigger {
	var ts anyTrigger

	for _, t := range triggers {
		if t != nil {
			ts = append(ts, t)
		}
	}

	switch len(ts) {
	case 0:
		return nil
	case 1:
		return ts[0]
	default:
		return ts
	}
}

// Poll implements Trigger.
func (a anyTrigger) Poll(ctx context.Context) (string, bool) {
	for _, t := range a {
		if reason, fired := t.Poll(ctx); fired {
			return reason, true
		}
	}

	return "", false
}
