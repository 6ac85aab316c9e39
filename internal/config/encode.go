// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package config

import (
	"github.com/goccy/go-yaml"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// ToYAML renders cfg in the YAML file format.
func ToYAML(cfg *Config) ([]byte, error) {
	return yaml.Marshal(FileFrom(cfg))
}

// ToHCL renders cfg in the HCL file format.
func ToHCL(cfg *Config) []byte {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.SetAttributeValue("root_dir", cty.StringVal(cfg.RootDir))
	body.SetAttributeValue("diagnostic_file", cty.StringVal(cfg.DiagnosticFile))
	body.SetAttributeValue("poll_interval", cty.StringVal(cfg.PollInterval.String()))
	body.SetAttributeValue("run_for", cty.StringVal(cfg.RunFor.String()))
	body.SetAttributeValue("key_monitor", cty.BoolVal(cfg.KeyMonitor))
	body.SetAttributeValue("reveal_keys", cty.BoolVal(cfg.RevealKeys))
	body.SetAttributeValue("log_level", cty.StringVal(cfg.LogLevel))
	body.SetAttributeValue("log_format", cty.StringVal(cfg.LogFormat))

	return f.Bytes()
}
