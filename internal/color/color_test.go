// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsColorCapable(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.False(t, isColorCapable(), "Expected color output to be disabled")

	t.Setenv("FORCE_COLOR", "1")
	assert.False(t, isColorCapable(), "Expected color output to be disabled as NO_COLOR is still set")

	t.Setenv("NO_COLOR", "")
	assert.True(t, isColorCapable(), "Expected color output to be enabled as FORCE_COLOR is set and NO_COLOR is unset")
}

func TestWrap(t *testing.T) {
	tests := []struct {
		name  string
		on    bool
		codes []Code
		want  string
	}{
		{name: "disabled", on: false, codes: []Code{FgRed}, want: "key"},
		{name: "no codes", on: true, codes: nil, want: "key"},
		{name: "single code", on: true, codes: []Code{FgRed}, want: "\033[31mkey\033[0m"},
		{name: "multiple codes", on: true, codes: []Code{Bold, FgHiCyan}, want: "\033[1;96mkey\033[0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Wrap(tt.on, "key", tt.codes...))
		})
	}
}
