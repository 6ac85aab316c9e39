// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package lifecycle describes the runtime's state machine and carries its
// transitions to listeners such as the console printer.
package lifecycle
