// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package taskqueue is a mutex-guarded FIFO of deferred actions drained by a single consumer.
//
// Producers on any goroutine call Submit or SubmitToken. The consumer calls
// DrainAndExecute, which swaps the pending actions out under the lock and then
// runs them with the lock released, so an action may itself submit more
// actions without deadlocking. Those run on the next drain.
//
// Tokens name actions registered up front. Producers that must not build
// closures at the point of submission, such as a signal watcher, submit the
// token instead.
package taskqueue
