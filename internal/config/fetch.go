// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/vault/internal/ctxlog"
)

// ErrGetConfigFile is returned when the configuration source cannot be fetched.
var ErrGetConfigFile = errors.New("failed to get config file")

// Load fetches url and parses it. An empty url returns Default.
func Load(ctx context.Context, url string) (*Config, error) {
	if url == "" {
		return Default(), nil
	}

	data, err := Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	name := url
	if _, file := splitFileNameFromGetterURL(url); file != "" {
		name = file
	} else if i := strings.Index(name, goGetterRefSeparator); i >= 0 {
		name = name[:i]
	}

	return Parse(name, data)
}

// Fetch retrieves the content of url using go-getter syntax.
// The download goes to a temporary directory that is removed before returning.
func Fetch(ctx context.Context, url string) ([]byte, error) {
	if url == "" {
		return nil, ErrGetConfigFile
	}

	tmpDir, err := os.MkdirTemp("", "vault-getter-*")
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     url,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	var fileName string

	// remote sources are fetched as a directory, then the file is read from it
	// https://github.com/hashicorp/go-getter/issues/98
	if ok, err := getter.Detect(req, &getter.FileGetter{}); !ok || err != nil {
		if err != nil {
			return nil, errors.Join(ErrGetConfigFile, err)
		}

		var newURL string

		newURL, fileName = splitFileNameFromGetterURL(url)
		if newURL == "" || fileName == "" {
			return nil, fmt.Errorf("%w: invalid URL format: %s", ErrGetConfigFile, url)
		}

		req.Src = newURL
	}

	if fileName == "" {
		req.Src = filepath.Dir(url)
		fileName = filepath.Base(url)
	}

	ctxlog.Debug(ctx, "fetching configuration", "src", req.Src, "file", fileName)

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	data, err := os.ReadFile(filepath.Join(res.Dst, fileName))
	if err != nil {
		return nil, errors.Join(ErrGetConfigFile, err)
	}

	return data, nil
}

const (
	goGetterPathSeparator = "//"
	goGetterRefSeparator  = "?"
	minimumGetterParts    = 3 // scheme, host and path
)

// splitFileNameFromGetterURL returns the getter URL of the containing directory and the file name.
// Any query string is carried over to the new URL.
func splitFileNameFromGetterURL(url string) (string, string) {
	var ref string

	parts := strings.Split(url, goGetterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]

	if path, query, ok := strings.Cut(last, goGetterRefSeparator); ok {
		ref = query
		last = path
	}

	if filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName := filepath.Base(last)

	if dir := filepath.Dir(last); dir == "." {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = dir
	}

	newURL := strings.Join(parts, goGetterPathSeparator)

	if ref != "" {
		newURL += goGetterRefSeparator + ref
	}

	return newURL, fileName
}
