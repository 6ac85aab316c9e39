// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/hashicorp/go-multierror"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
)

var (
	// ErrUnsupportedFormat is returned when the file extension is not a known configuration format.
	ErrUnsupportedFormat = errors.New("unsupported configuration format")
	// ErrParseConfig is returned when a configuration file cannot be parsed.
	ErrParseConfig = errors.New("failed to parse configuration file")
)

// File is the on-disk representation. Unset fields are nil.
type File struct {
	RootDir        *string `yaml:"root_dir" hcl:"root_dir,optional"`
	DiagnosticFile *string `yaml:"diagnostic_file" hcl:"diagnostic_file,optional"`
	PollInterval   *string `yaml:"poll_interval" hcl:"poll_interval,optional"`
	RunFor         *string `yaml:"run_for" hcl:"run_for,optional"`
	KeyMonitor     *bool   `yaml:"key_monitor" hcl:"key_monitor,optional"`
	RevealKeys     *bool   `yaml:"reveal_keys" hcl:"reveal_keys,optional"`
	LogLevel       *string `yaml:"log_level" hcl:"log_level,optional"`
	LogFormat      *string `yaml:"log_format" hcl:"log_format,optional"`
}

// Parse decodes data according to the extension of name and applies it over Default.
func Parse(name string, data []byte) (*Config, error) {
	var (
		f   *File
		err error
	)

	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		f, err = parseYAML(data)
	case ".hcl":
		f, err = parseHCL(name, data)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
	}

	if err != nil {
		return nil, errors.Join(ErrParseConfig, err)
	}

	cfg := Default()
	if err := f.ApplyTo(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func parseYAML(data []byte) (*File, error) {
	f := &File{}

	if err := yaml.UnmarshalWithOptions(data, f, yaml.DisallowUnknownField()); err != nil {
		return nil, err
	}

	return f, nil
}

func parseHCL(name string, data []byte) (*File, error) {
	file, diags := hclsyntax.ParseConfig(data, name, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, multierror.Append(nil, diags.Errs()...)
	}

	f := &File{}
	if diags := gohcl.DecodeBody(file.Body, evalContext(), f); diags.HasErrors() {
		return nil, multierror.Append(nil, diags.Errs()...)
	}

	return f, nil
}

// evalContext exposes the process environment to HCL as the `env` object.
func evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value)

	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if !ok || k == "" {
			continue
		}

		vars[k] = cty.StringVal(v)
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

// ApplyTo overwrites the fields of cfg that are set in f.
// Duration parse failures are collected and returned together.
func (f *File) ApplyTo(cfg *Config) error {
	var result error

	setString(&cfg.RootDir, f.RootDir)
	setString(&cfg.DiagnosticFile, f.DiagnosticFile)
	setString(&cfg.LogLevel, f.LogLevel)
	setString(&cfg.LogFormat, f.LogFormat)

	if f.KeyMonitor != nil {
		cfg.KeyMonitor = *f.KeyMonitor
	}

	if f.RevealKeys != nil {
		cfg.RevealKeys = *f.RevealKeys
	}

	if err := setDuration(&cfg.PollInterval, f.PollInterval); err != nil {
		result = multierror.Append(result, fmt.Errorf("poll_interval: %w", err))
	}

	if err := setDuration(&cfg.RunFor, f.RunFor); err != nil {
		result = multierror.Append(result, fmt.Errorf("run_for: %w", err))
	}

	if result != nil {
		return errors.Join(ErrInvalidConfig, result)
	}

	return nil
}

// FileFrom returns a File with every field of cfg set.
func FileFrom(cfg *Config) *File {
	poll := cfg.PollInterval.String()
	runFor := cfg.RunFor.String()
	keyMonitor := cfg.KeyMonitor
	reveal := cfg.RevealKeys
	rootDir := cfg.RootDir
	diag := cfg.DiagnosticFile
	level := cfg.LogLevel
	format := cfg.LogFormat

	return &File{
		RootDir:        &rootDir,
		DiagnosticFile: &diag,
		PollInterval:   &poll,
		RunFor:         &runFor,
		KeyMonitor:     &keyMonitor,
		RevealKeys:     &reveal,
		LogLevel:       &level,
		LogFormat:      &format,
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string) error {
	if v == nil {
		return nil
	}

	d, err := time.ParseDuration(*v)
	if err != nil {
		return err
	}

	*dst = d

	return nil
}
