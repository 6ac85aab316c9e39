// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package monitor polls a trigger in the background and asks for shutdown when it fires.
//
// A monitor never performs shutdown itself. When its trigger fires it calls
// the submit function it was given, which queues the shutdown action for the
// dispatcher, and returns straight away. The dispatcher's shutdown path joins
// the monitor, so a monitor that waited for shutdown to finish would deadlock.
// Every asynchronous shutdown source follows the same submit-then-return rule.
package monitor
