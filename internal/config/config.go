// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config loads .kt2uml.yaml.
//
// Example:
//
//	output:
//	  wrap: true
//	  format: plantuml
//	limits:
//	  max_depth: 512
//	  max_source_bytes: 4194304
//	render:
//	  jobs: 4
//	watch:
//	  debounce: 200ms
//	log:
//	  level: warn
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".kt2uml.yaml"

// Output formats.
const (
	FormatPlantUML = "plantuml"
	FormatJSON     = "json"
)

// Config is the full kt2uml configuration.
type Config struct {
	Output OutputConfig `yaml:"output"`
	Limits LimitsConfig `yaml:"limits"`
	Render RenderConfig `yaml:"render"`
	Watch  WatchConfig  `yaml:"watch"`
	Log    LogConfig    `yaml:"log"`
}

// OutputConfig controls what render writes.
type OutputConfig struct {
	// Wrap surrounds PlantUML output with @startuml/@enduml.
	Wrap   bool   `yaml:"wrap"`
	Format string `yaml:"format"`
}

// LimitsConfig bounds the work done for one document.
type LimitsConfig struct {
	MaxDepth       int `yaml:"max_depth"`
	MaxSourceBytes int `yaml:"max_source_bytes"`
}

type RenderConfig struct {
	// Jobs is the number of files rendered in parallel.
	Jobs int `yaml:"jobs"`
}

type WatchConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and validates the file at path. Unknown keys are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates YAML configuration. Empty input yields the
// defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode: %w", err)
	}

	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Resolve picks the configuration for a run. An explicit path must exist.
// Otherwise FileName is read from dir when present, and the defaults are
// used when it is not. The returned path is empty for defaults.
func Resolve(explicit, dir string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}

	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), "", nil
		}
		return nil, "", err
	}
	cfg, err := Load(path)
	return cfg, path, err
}

func applyDefaults(cfg *Config) {
	cfg.Output.Format = strings.ToLower(strings.TrimSpace(cfg.Output.Format))
	if cfg.Output.Format == "" {
		cfg.Output.Format = FormatPlantUML
	}
	if cfg.Limits.MaxDepth == 0 {
		cfg.Limits.MaxDepth = 512
	}
	if cfg.Limits.MaxSourceBytes == 0 {
		cfg.Limits.MaxSourceBytes = 4 << 20
	}
	if cfg.Render.Jobs == 0 {
		cfg.Render.Jobs = runtime.NumCPU()
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 200 * time.Millisecond
	}
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatPlantUML, FormatJSON:
	default:
		return fmt.Errorf("output.format: unknown format %q (want %s or %s)", c.Output.Format, FormatPlantUML, FormatJSON)
	}
	if c.Limits.MaxDepth < 0 {
		return fmt.Errorf("limits.max_depth: must not be negative, got %d", c.Limits.MaxDepth)
	}
	if c.Limits.MaxSourceBytes < 0 {
		return fmt.Errorf("limits.max_source_bytes: must not be negative, got %d", c.Limits.MaxSourceBytes)
	}
	if c.Render.Jobs < 1 {
		return fmt.Errorf("render.jobs: must be at least 1, got %d", c.Render.Jobs)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce: must not be negative, got %s", c.Watch.Debounce)
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level: unknown level %q", c.Log.Level)
	}
	return nil
}
