// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package config loads the runtime configuration.
//
// Configuration files are YAML (`.yaml`, `.yml`) or HCL (`.hcl`). HCL files can
// refer to the process environment through the `env` object, for example
// `root_dir = env.HOME`. Sources are fetched with go-getter so a file can live
// on disk, in a git repository or behind an HTTP URL.
//
// Every option is optional; values not set keep their defaults from Default.
package config
