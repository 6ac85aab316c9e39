// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package keymaterial

import (
	"crypto/sha256"
	"encoding/hex"
	"io"

	"golang.org/x/crypto/hkdf"
)

const (
	fingerprintSize = 8
	fingerprintInfo = "vault key fingerprint v1"
)

// Fingerprint returns a short identifier for secret that does not disclose it.
// It is the first 8 bytes of HKDF-SHA256(secret) with a fixed info string, hex encoded.
func Fingerprint(secret []byte) string {
	r := hkdf.New(sha256.New, secret, nil, []byte(fingerprintInfo))

	var out [fingerprintSize]byte
	if _, err := io.ReadFull(r, out[:]); err != nil {
		// hkdf only fails past 255*32 bytes of output
		panic(err)
	}

	return hex.EncodeToString(out[:])
}
