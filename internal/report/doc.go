// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package report writes the human readable diagnostic output of the runtime:
// the generated key material, the contents of the diagnostic file and the
// lifecycle messages.
package report
