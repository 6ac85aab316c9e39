// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package color

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

const (
	sbPadding = 16 // padding for the strings.Builder
)

// Code represents an ANSI control code for text formatting.
type Code int

const (
	// NoColor is the environment variable that disables color output.
	NoColor = "NO_COLOR"
	// ForceColor is the environment variable that forces color output.
	ForceColor = "FORCE_COLOR"
	reset      = "\033[0m"
	prefix     = "\033["
	suffix     = "m"
)

// Control codes for text formatting.
const (
	Reset Code = iota
	Bold
	Faint
)

// Foreground text colors.
const (
	FgBlack Code = iota + 30
	FgRed
	FgGreen
	FgYellow
	FgBlue
	FgMagenta
	FgCyan
	FgWhite
)

// Foreground Hi-Intensity text colors.
const (
	FgHiBlack Code = iota + 90
	FgHiRed
	FgHiGreen
	FgHiYellow
	FgHiBlue
	FgHiMagenta
	FgHiCyan
	FgHiWhite
)

var enabled bool

func init() {
	enabled = isColorCapable()
}

// Colorize returns str wrapped in the given codes when color output is enabled for the process.
func Colorize(str string, colorCodes ...Code) string {
	return Wrap(enabled, str, colorCodes...)
}

// Wrap returns str wrapped in the given codes followed by a reset, or str unchanged when on is false.
// Callers that decide about color per writer (log handlers, report printers) use this directly.
func Wrap(on bool, str string, colorCodes ...Code) string {
	if !on || len(colorCodes) == 0 {
		return str
	}

	sb := strings.Builder{}
	sb.Grow(len(str) + len(prefix) + len(suffix) + len(reset) + sbPadding)
	sb.WriteString(prefix)

	for i, code := range colorCodes {
		if i > 0 {
			sb.WriteString(";")
		}

		sb.WriteString(strconv.Itoa(int(code)))
	}

	sb.WriteString(suffix)
	sb.WriteString(str)
	sb.WriteString(reset)

	return sb.String()
}

// Enabled reports whether color output is enabled for the process.
// It is initialized in package init().
//
// NO_COLOR always wins. Otherwise FORCE_COLOR enables color, and failing that
// color is enabled only when stdout is a terminal.
func Enabled() bool {
	return enabled
}

func isColorCapable() bool {
	if nc := os.Getenv(NoColor); nc != "" {
		return false
	}

	if fc := os.Getenv(ForceColor); fc != "" {
		return true
	}

	return term.IsTerminal(int(os.Stdout.Fd()))
}
