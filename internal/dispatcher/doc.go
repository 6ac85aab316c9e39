// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package dispatcher runs the single goroutine that owns the entropy provider
// and executes every deferred action, including shutdown.
//
// The lifecycle is Starting -> Running -> Draining -> Terminated. During
// Starting the runtime opens the provider, generates and reports key material
// and spawns the background monitor. In Running it drains the task queue until
// the running flag is cleared. Shutdown is itself a queued action (see
// ShutdownToken), so the signal watcher and the monitor only ever submit it and
// it always executes on the dispatcher goroutine. It is guarded so duplicate
// submissions run the body once.
//
// All state lives on a Runtime value; there are no package globals, so tests
// can run several runtimes side by side.
package dispatcher
