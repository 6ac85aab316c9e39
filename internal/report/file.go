// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package report

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/matt-FFFFFF/vault/internal/color"
	"github.com/spf13/afero"
)

var (
	// ErrFileNotFound is returned when the diagnostic file does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrFileUnreadable is returned when the diagnostic file exists but cannot be read.
	ErrFileUnreadable = errors.New("file could not be read")
)

// ReadFile returns the contents of path using the filesystem from FsFactory.
func ReadFile(path string) ([]byte, error) {
	data, err := afero.ReadFile(FsFactory(), path)

	switch {
	case err == nil:
		return data, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	default:
		return nil, fmt.Errorf("%w: %s: %w", ErrFileUnreadable, path, err)
	}
}

// PrintFile writes the contents of path to w under a heading.
func PrintFile(w io.Writer, path string, colour bool) error {
	data, err := ReadFile(path)
	if err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "%s\n%s", color.Wrap(colour, "File Contents:", color.Bold), data); err != nil {
		return fmt.Errorf("%w: %w", ErrFileUnreadable, err)
	}

	if len(data) > 0 && data[len(data)-1] != '\n' {
		_, _ = io.WriteString(w, "\n")
	}

	return nil
}
