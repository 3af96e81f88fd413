// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"context"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"gitlab.com/tozd/go/errors"
)

func init() {
	Register(&HCLParser{})
}

// 🔧 HCLParser implements the Parser interface for HCL files.
//
// The built-in values are exposed as the `defaults` object, so a file can
// extend them instead of repeating them:
//
//	markers = concat(defaults.markers, ["Quiz"])
type HCLParser struct{}

// 🔍 CanParse checks if this parser can handle the given file
func (p *HCLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".hcl")
}

// 📝 Parse parses the config from HCL
func (p *HCLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, "retheme.hcl")
	if diags.HasErrors() {
		return nil, errors.Errorf("parsing HCL: %s", diags.Error())
	}

	// Define HCL schema
	type hclRule struct {
		Old string `hcl:"old"`
		New string `hcl:"new"`
	}
	type hclConfig struct {
		Root      string    `hcl:"root,optional"`
		Extension string    `hcl:"extension,optional"`
		Markers   []string  `hcl:"markers,optional"`
		Ignore    []string  `hcl:"ignore,optional"`
		Rules     []hclRule `hcl:"rule,block"`
	}

	var hclCfg hclConfig
	diags = gohcl.DecodeBody(hclFile.Body, evalContext(), &hclCfg)
	if diags.HasErrors() {
		return nil, errors.Errorf("decoding HCL: %s", diags.Error())
	}

	cfg := &Config{
		Root:      hclCfg.Root,
		Extension: hclCfg.Extension,
		Markers:   hclCfg.Markers,
		Ignore:    hclCfg.Ignore,
	}
	for _, r := range hclCfg.Rules {
		cfg.Rules = append(cfg.Rules, Rule{Old: r.Old, New: r.New})
	}

	return cfg, nil
}

func evalContext() *hcl.EvalContext {
	def := Default()

	markers := make([]cty.Value, 0, len(def.Markers))
	for _, m := range def.Markers {
		markers = append(markers, cty.StringVal(m))
	}

	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"defaults": cty.ObjectVal(map[string]cty.Value{
				"root":      cty.StringVal(def.Root),
				"extension": cty.StringVal(def.Extension),
				"markers":   cty.ListVal(markers),
			}),
		},
		Functions: map[string]function.Function{
			"concat": stdlib.ConcatFunc,
			"upper":  stdlib.UpperFunc,
			"lower":  stdlib.LowerFunc,
		},
	}
}
