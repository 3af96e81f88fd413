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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/retheme/pkg/discover"
	"github.com/walteh/retheme/pkg/text"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// 🔌 Parser is the interface for config parsers
type Parser interface {
	// 📝 Parse parses the config from bytes. Missing fields are left empty.
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// 📝 Register registers a parser
func Register(p Parser) {
	parsers = append(parsers, p)
}

// 🎯 GetParser returns a parser that can handle the given file
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// 🔄 Rule is a literal replacement applied to every candidate file
type Rule struct {
	Old string `json:"old" yaml:"old"`
	New string `json:"new" yaml:"new"`
}

// 📚 Config is everything a run needs
type Config struct {
	Root      string   `json:"root,omitempty" yaml:"root,omitempty"`
	Extension string   `json:"extension,omitempty" yaml:"extension,omitempty"`
	Markers   []string `json:"markers,omitempty" yaml:"markers,omitempty"`
	Ignore    []string `json:"ignore,omitempty" yaml:"ignore,omitempty"`
	Rules     []Rule   `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Default returns the built-in configuration: the exercise pages of the
// learning app, moved from the dark theme to the light one.
func Default() *Config {
	return &Config{
		Root:      filepath.Join("src", "pages", "learning", "exercises"),
		Extension: ".jsx",
		Markers:   []string{"Beginner", "Intermediate", "Advanced", "Exercise"},
		Rules: []Rule{
			{Old: "bg-gray-100 rounded-lg shadow-lg", New: "bg-white rounded-lg shadow-lg"},
			{Old: "bg-slate-800/50 rounded p-4 mb-4 border border-slate-700/50", New: "bg-white rounded p-4 mb-4 border border-gray-300"},
			{Old: "text-emerald-400 hover:text-emerald-300", New: "text-emerald-600 hover:text-emerald-700"},
			{Old: "bg-slate-800/50 rounded-lg border border-slate-700/50", New: "bg-white rounded-lg border border-gray-300"},
			{Old: "text-slate-300", New: "text-gray-700"},
			{Old: "bg-red-900/30 border border-red-700/50 text-red-200", New: "bg-red-100 border border-red-400 text-red-800"},
		},
	}
}

// 🎯 Load reads a config file and layers it over Default. A rule list in the
// file replaces the default table rather than extending it.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	p := GetParser(path)
	if p == nil {
		return nil, errors.Errorf("no parser found for file: %s", path)
	}

	parsed, err := p.Parse(ctx, data)
	if err != nil {
		return nil, errors.Errorf("parsing config: %w", err)
	}

	cfg := Default().Merge(parsed)

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Merge returns a copy of cfg with every non-empty field of other applied
func (cfg *Config) Merge(other *Config) *Config {
	out := *cfg
	if other == nil {
		return &out
	}
	if other.Root != "" {
		out.Root = other.Root
	}
	if other.Extension != "" {
		out.Extension = other.Extension
	}
	if len(other.Markers) > 0 {
		out.Markers = other.Markers
	}
	if len(other.Ignore) > 0 {
		out.Ignore = other.Ignore
	}
	if len(other.Rules) > 0 {
		out.Rules = other.Rules
	}
	return &out
}

// 🔍 Validate checks if the configuration is valid
func (cfg *Config) Validate() error {
	if cfg.Root == "" {
		return errors.Errorf("root is required")
	}
	if cfg.Extension == "" {
		return errors.Errorf("extension is required")
	}
	if len(cfg.Markers) == 0 {
		return errors.Errorf("at least one marker is required")
	}
	for i, m := range cfg.Markers {
		if m == "" {
			return errors.Errorf("marker %d is empty", i)
		}
	}
	if err := text.ValidateRules(cfg.TextRules()); err != nil {
		return errors.Errorf("rules: %w", err)
	}
	if err := cfg.Filter().Validate(); err != nil {
		return err
	}

	cfg.Root = filepath.Clean(cfg.Root)

	return nil
}

// TextRules converts the rule table for pkg/text
func (cfg *Config) TextRules() []text.ReplacementRule {
	rules := make([]text.ReplacementRule, 0, len(cfg.Rules))
	for _, r := range cfg.Rules {
		rules = append(rules, text.ReplacementRule{FromText: r.Old, ToText: r.New})
	}
	return rules
}

// Filter returns the discovery filter for this config
func (cfg *Config) Filter() discover.Filter {
	return discover.Filter{
		Extension: cfg.Extension,
		Markers:   cfg.Markers,
		Ignore:    cfg.Ignore,
	}
}

// 📝 String returns a string representation of the config
func (cfg *Config) String() string {
	return fmt.Sprintf("%s/**/*{%s}*%s (%d rules)", cfg.Root, strings.Join(cfg.Markers, ","), cfg.Extension, len(cfg.Rules))
}

// 🔧 YAMLParser implements the Parser interface for YAML files
type YAMLParser struct{}

func init() {
	Register(&YAMLParser{})
}

func (p *YAMLParser) CanParse(filename string) bool {
	return strings.HasSuffix(filename, ".yaml") || strings.HasSuffix(filename, ".yml")
}

func (p *YAMLParser) Parse(ctx context.Context, data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(strings.NewReader(string(data)))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, errors.Errorf("parsing YAML: %w", err)
	}
	return &cfg, nil
}
