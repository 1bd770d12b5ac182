// Package config loads porekit.yaml and layers environment overrides on top
// of it. Command-line flags are applied last by the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/porekit/pkg/porekit"
)

const ConfigFileName = "porekit.yaml"

// Environment variables overriding the project file.
const (
	EnvWorkers = "POREKIT_WORKERS"
	EnvStrict  = "POREKIT_STRICT"
)

type OutputConfig struct {
	Table  string `yaml:"table,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// ProjectConfig mirrors porekit.yaml. Pointer fields distinguish an absent
// key from an explicit zero.
type ProjectConfig struct {
	Workers    *int         `yaml:"workers,omitempty"`
	Strict     *bool        `yaml:"strict,omitempty"`
	Extension  string       `yaml:"extension,omitempty"`
	Extractors []string     `yaml:"extractors,omitempty"`
	Output     OutputConfig `yaml:"output,omitempty"`
}

// Load reads porekit.yaml from dir.
func Load(dir string) (*ProjectConfig, error) {
	return LoadFile(filepath.Join(dir, ConfigFileName))
}

// LoadFile reads a project config from an explicit path.
func LoadFile(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", path, porekit.ErrConfigNotFound)
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v: %w", path, err, porekit.ErrInvalidConfig)
	}
	return &cfg, nil
}

// Settings are the resolved run parameters.
type Settings struct {
	Workers   int
	Strict    bool
	Extension string

	// Extractors is nil to select the whole catalog.
	Extractors []string

	Table  string
	Format string
}

func Defaults() Settings {
	return Settings{
		Workers:   porekit.DefaultWorkers,
		Extension: porekit.FileExtension,
		Table:     porekit.DefaultTable,
	}
}

// ApplyTo overlays the values present in the file onto s.
func (c *ProjectConfig) ApplyTo(s *Settings) {
	if c == nil {
		return
	}
	if c.Workers != nil {
		s.Workers = *c.Workers
	}
	if c.Strict != nil {
		s.Strict = *c.Strict
	}
	if c.Extension != "" {
		s.Extension = c.Extension
	}
	if c.Extractors != nil {
		s.Extractors = make([]string, len(c.Extractors))
		copy(s.Extractors, c.Extractors)
	}
	if c.Output.Table != "" {
		s.Table = c.Output.Table
	}
	if c.Output.Format != "" {
		s.Format = c.Output.Format
	}
}

// ApplyEnv overlays POREKIT_WORKERS and POREKIT_STRICT from lookup, which is
// usually os.LookupEnv.
func ApplyEnv(s *Settings, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvWorkers); ok && strings.TrimSpace(v) != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s=%q is not an integer: %w", EnvWorkers, v, porekit.ErrInvalidConfig)
		}
		s.Workers = n
	}
	if v, ok := lookup(EnvStrict); ok && strings.TrimSpace(v) != "" {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s=%q is not a boolean: %w", EnvStrict, v, porekit.ErrInvalidConfig)
		}
		s.Strict = b
	}
	return nil
}

// Validate rejects settings no run can use. Extractor names are checked
// against the catalog by the aggregator.
func (s Settings) Validate() error {
	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d: %w", s.Workers, porekit.ErrInvalidConfig)
	}
	if !strings.HasPrefix(s.Extension, ".") || len(s.Extension) < 2 {
		return fmt.Errorf("extension must look like \".fast5\", got %q: %w", s.Extension, porekit.ErrInvalidConfig)
	}
	if s.Table == "" {
		return fmt.Errorf("output table name is empty: %w", porekit.ErrInvalidConfig)
	}
	return nil
}
