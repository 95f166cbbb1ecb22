// Package config implements the ambient host-configuration layer
// (SPEC_FULL.md §11.2): a YAML document tuning the engine limits and
// import search paths spec.md §4.4/§6 leave up to the host. Grounded on
// funvibe-funxy's internal/ext.Config (its own yaml.v3-based, validate-
// then-default-fill document for an embedding language's host config),
// adapted from its Go-FFI-binding concerns to gosimpl's much smaller
// engine-limits concern.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gosimpl-lang/gosimpl/internal/machine"
)

// Config is the top-level document a host may load to tune one engine
// instance before construction (SPEC_FULL §11.2). Every field is
// optional; an omitted field keeps the engine's own default.
type Config struct {
	// Limits tunes the machine's stack capacities (spec.md §4.4 "Hosts
	// may tune engine limits").
	Limits Limits `yaml:"limits"`

	// WorkDir is the directory `@import NAME` searches for NAME.sl
	// (spec.md §6 "Module resolution"), overriding the process's
	// current directory.
	WorkDir string `yaml:"work_dir,omitempty"`

	// SearchPaths lists additional directories for NAME.sl lookup. It is
	// parsed and kept on the Config only: neither the engine façade
	// (pkg/gosimpl.WithConfig) nor internal/evaluator reads it, so
	// `@import` searches WorkDir alone and reports *ModuleNotFound*
	// without consulting these directories.
	SearchPaths []string `yaml:"search_paths,omitempty"`
}

// Limits mirrors internal/machine's two tunable capacities.
type Limits struct {
	ValueStackCapacity int `yaml:"value_stack_capacity,omitempty"`
	FrameStackCapacity int `yaml:"frame_stack_capacity,omitempty"`
}

// Load reads and parses a YAML config file at path, then fills in any
// omitted field with the engine's own default.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse parses YAML config content from bytes, validates it, and fills
// in defaults. Exposed separately from Load so hosts that already have
// the document in memory (e.g. embedded in another config file) don't
// need to round-trip it through a file.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Limits.ValueStackCapacity < 0 {
		return fmt.Errorf("limits.value_stack_capacity must not be negative, got %d", c.Limits.ValueStackCapacity)
	}
	if c.Limits.FrameStackCapacity < 0 {
		return fmt.Errorf("limits.frame_stack_capacity must not be negative, got %d", c.Limits.FrameStackCapacity)
	}
	return nil
}

func (c *Config) setDefaults() {
	if c.Limits.ValueStackCapacity == 0 {
		c.Limits.ValueStackCapacity = machine.DefaultValueStackCapacity
	}
	if c.Limits.FrameStackCapacity == 0 {
		c.Limits.FrameStackCapacity = machine.DefaultFrameStackCapacity
	}
	if c.WorkDir == "" {
		c.WorkDir = "."
	}
}
