package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/dgallion1/docfmt/internal/parser"
	"github.com/dgallion1/docfmt/internal/rewrite"
	"github.com/dgallion1/docfmt/internal/textfmt"
	"github.com/goccy/go-yaml"
)

// MaxRulesSize limits the rules file to 1 MiB.
const MaxRulesSize = 1 << 20

var ErrRulesTooLarge = errors.New("rules file exceeds maximum size")

// Rules customizes formatting. A nil *Rules means built-in defaults.
//
//	properNouns: [Kubernetes, gRPC]
//	replaceProperNouns: false
//	styleMap:
//	  - "p[style-name='Quote'] => blockquote"
//	options:
//	  addCaptionPrefix: false
type Rules struct {
	// ProperNouns are added to the built-in table, or replace it when
	// ReplaceProperNouns is set.
	ProperNouns        []string `yaml:"properNouns"`
	ReplaceProperNouns bool     `yaml:"replaceProperNouns"`

	// StyleMap directives are applied after the default mappings and win
	// on conflict.
	StyleMap []string `yaml:"styleMap"`

	// Options override individual defaults by name.
	Options map[string]bool `yaml:"options"`
}

// LoadRules reads and parses a rules file.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	return ParseRules(data)
}

// ParseRules parses YAML rules, rejecting unknown fields, bad style
// directives and unknown option names.
func ParseRules(data []byte) (*Rules, error) {
	if len(data) > MaxRulesSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrRulesTooLarge, len(data), MaxRulesSize)
	}
	var r Rules
	if len(data) > 0 {
		if err := yaml.UnmarshalWithOptions(data, &r, yaml.Strict()); err != nil {
			return nil, fmt.Errorf("parse rules: %w", err)
		}
	}
	if _, err := parser.ParseStyleMappings(r.StyleMap); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	probe := rewrite.DefaultOptions()
	for name := range r.Options {
		if !probe.Set(name, true) {
			return nil, fmt.Errorf("parse rules: unknown option %q", name)
		}
	}
	return &r, nil
}

// Normalizer builds the sentence-case normalizer for these rules.
func (r *Rules) Normalizer() *textfmt.Normalizer {
	if r == nil || (len(r.ProperNouns) == 0 && !r.ReplaceProperNouns) {
		return textfmt.NewNormalizer(nil)
	}
	nouns := textfmt.DefaultProperNouns()
	if r.ReplaceProperNouns {
		nouns = textfmt.NewProperNouns()
	}
	nouns.Add(r.ProperNouns...)
	return textfmt.NewNormalizer(nouns)
}

// StyleMappings returns the default mappings followed by the custom ones.
func (r *Rules) StyleMappings() []parser.StyleMapping {
	out := parser.DefaultStyleMap()
	if r == nil {
		return out
	}
	extra, err := parser.ParseStyleMappings(r.StyleMap)
	if err != nil {
		// ParseRules already rejected invalid directives.
		return out
	}
	return append(out, extra...)
}

// DefaultOptions returns rewrite.DefaultOptions with the overrides applied.
func (r *Rules) DefaultOptions() rewrite.Options {
	opts := rewrite.DefaultOptions()
	if r == nil {
		return opts
	}
	for name, enabled := range r.Options {
		opts.Set(name, enabled)
	}
	return opts
}
