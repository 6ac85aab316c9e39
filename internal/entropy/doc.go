// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package entropy wraps a cryptographically secure random source in a handle
// with an explicit open/close lifetime.
//
// A Handle is opened once, filled any number of times and closed once.
// The handle tracks its own closed state, so a use after close or a second
// close is reported as ErrClosed instead of touching the released source.
package entropy
