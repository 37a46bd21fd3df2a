// SPDX-License-Identifier: Apache-2.0

// Package config loads tender-mcp settings from a YAML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/tenderscope/tender-mcp/internal/response"
)

// Environment variables that override file settings.
const (
	EnvMaxInputBytes = "TENDER_MCP_MAX_INPUT_BYTES"
	EnvLogLevel      = "TENDER_MCP_LOG_LEVEL"
	EnvSchema        = "TENDER_MCP_SCHEMA"
)

// Config holds all tender-mcp configuration.
type Config struct {
	// MaxInputBytes bounds a single generation-service response. Zero disables the bound.
	MaxInputBytes int `yaml:"max_input_bytes"`

	Log    LogConfig    `yaml:"log"`
	Schema SchemaConfig `yaml:"schema"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// SchemaConfig selects the CUE schema used by the check command and tool.
type SchemaConfig struct {
	// Path to a .cue file. Empty selects the embedded evaluation schema.
	Path string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MaxInputBytes: response.DefaultMaxBytes,
		Log:           LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(os.Getenv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv(EnvMaxInputBytes); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvMaxInputBytes, v, err)
		}
		c.MaxInputBytes = n
	}
	if v := getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
	if v := getenv(EnvSchema); v != "" {
		c.Schema.Path = v
	}
	return nil
}

// Validate checks that settings are within acceptable ranges.
func (c *Config) Validate() error {
	if c.MaxInputBytes < 0 {
		return fmt.Errorf("max_input_bytes must be >= 0")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}
