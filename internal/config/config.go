// Package config loads the optional socorro-cli settings file.
//
// Settings resolve with precedence flag > environment > file > default.
// This package only reads the file; the command layer applies precedence.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables read by the command layer.
const (
	EnvToken   = "SOCORRO_API_TOKEN"
	EnvBaseURL = "SOCORRO_API_URL"
	EnvConfig  = "SOCORRO_CLI_CONFIG"
)

// Config is the on-disk settings file. Zero values mean "not set".
type Config struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
	Token   string `yaml:"token" json:"token"`
	Format  string `yaml:"format" json:"format"`
	Timeout string `yaml:"timeout" json:"timeout"`
	Depth   *int   `yaml:"depth" json:"depth"`
	Product string `yaml:"product" json:"product"`
}

// DefaultPath returns $XDG_CONFIG_HOME/socorro-cli/config.yaml, falling
// back to the user config directory.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		var err error
		dir, err = os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("config dir: %w", err)
		}
	}
	return filepath.Join(dir, "socorro-cli", "config.yaml"), nil
}

// LoadFromPath reads a config file (YAML or JSON).
// Format is detected by extension (.yaml/.yml → YAML, .json → JSON) or by content.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Load(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if cfg.Token != "" {
		warnIfShared(path)
	}
	return cfg, nil
}

// LoadDefault reads the file at DefaultPath. A missing file yields an empty
// Config.
func LoadDefault() (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return &Config{}, nil
	}
	cfg, err := LoadFromPath(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Config{}, nil
	}
	return cfg, err
}

// Load parses config from bytes. ext is the file extension (e.g. ".json",
// ".yaml") for format hint; empty = detect from content.
func Load(data []byte, ext string) (*Config, error) {
	ext = strings.ToLower(ext)
	if ext == ".yml" {
		ext = ".yaml"
	}
	if ext == "" && strings.HasPrefix(strings.TrimSpace(string(data)), "{") {
		ext = ".json"
	}

	var c Config
	if ext == ".json" {
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, fmt.Errorf("parse config json: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) validate() error {
	if c.Depth != nil && *c.Depth < 0 {
		return fmt.Errorf("config: depth must be non-negative, got %d", *c.Depth)
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}
	return nil
}

// TimeoutDuration parses Timeout. An unset timeout is zero.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("config: timeout: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config: timeout must be non-negative, got %s", c.Timeout)
	}
	return d, nil
}

// warnIfShared warns when a file holding a token is readable by others.
func warnIfShared(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if perm := info.Mode().Perm(); perm&0044 != 0 {
		fmt.Fprintf(os.Stderr, "WARNING: %s holds an API token and is readable by group/others (mode %04o). Run: chmod 600 %s\n", path, perm, path)
	}
}
