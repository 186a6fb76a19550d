// Package config loads effect settings from YAML or JSON files.
//
//	effect: walkie
//	seed: 42
//	style_params:
//	  bit_depth: 4
//	  static_level: 0.05
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-radiofx/radiofx"
)

// File is the on-disk layout.
type File struct {
	Effect      string         `yaml:"effect"`
	Seed        *uint64        `yaml:"seed,omitempty"`
	StyleParams map[string]any `yaml:"style_params,omitempty"`
}

// Settings are validated settings ready for a pipeline run.
type Settings struct {
	Style     radiofx.Style
	Seed      uint64
	HasSeed   bool
	Overrides radiofx.Overrides
	Config    radiofx.ResolvedConfig
}

// Load reads and validates the settings file at path.
func Load(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return s, nil
}

// Parse decodes and validates a settings document. JSON is accepted as a
// subset of YAML. A missing effect selects radio. Unknown top-level fields
// and parameters the effect does not recognise are rejected.
func Parse(data []byte) (*Settings, error) {
	var f File

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode: %w", err)
	}

	style := radiofx.StyleRadio
	if f.Effect != "" {
		st, err := radiofx.ParseStyle(f.Effect)
		if err != nil {
			return nil, err
		}
		style = st
	}

	overrides, err := radiofx.ParseOverrides(f.StyleParams)
	if err != nil {
		return nil, err
	}

	cfg, err := radiofx.Resolve(style, overrides)
	if err != nil {
		return nil, err
	}

	s := &Settings{
		Style:     style,
		Overrides: overrides,
		Config:    cfg,
	}
	if f.Seed != nil {
		s.Seed = *f.Seed
		s.HasSeed = true
	}

	return s, nil
}

// Marshal renders a resolved configuration in the file layout.
func Marshal(cfg radiofx.ResolvedConfig, seed *uint64) ([]byte, error) {
	out, err := yaml.Marshal(File{
		Effect:      cfg.Style().String(),
		Seed:        seed,
		StyleParams: cfg.Map(),
	})
	if err != nil {
		return nil, fmt.Errorf("config: encode: %w", err)
	}

	return out, nil
}
