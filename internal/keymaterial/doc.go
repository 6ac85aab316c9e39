// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package keymaterial assembles key material from an entropy provider.
//
// A 512-bit secret is always built from two independent 256-bit draws
// concatenated first-then-second, never from a single 64 byte draw, because
// the two halves are reported separately. Any failed draw fails the whole
// generation with ErrWeakKeyMaterial; partially filled buffers are wiped and
// never returned.
package keymaterial
