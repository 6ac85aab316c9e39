// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package dispatcher

// Worker is a joinable handle on a goroutine.
type Worker struct {
	done chan struct{}
	err  error
}

func spawn(fn func() error) *Worker {
	w := &Worker{done: make(chan struct{})}

	go func() {
		defer close(w.done)
		w.err = fn()
	}()

	return w
}

// Wait blocks until the goroutine returns and yields its error.
// Waiting again returns the same error immediately. Waiting on a nil Worker is a no-op.
func (w *Worker) Wait() error {
	if w == nil {
		return nil
	}

	<-w.done

	return w.err
}

// Done is closed when the goroutine has returned.
func (w *Worker) Done() <-chan struct{} {
	return w.done
}
