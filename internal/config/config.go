// Package config provides configuration management for netimpact.
//
// Config file locations (priority order):
//  1. $NETIMPACT_CONFIG
//  2. ./netimpact.yaml
//  3. ~/.config/netimpact/config.yaml
//  4. /etc/netimpact/config.yaml
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load finds and loads the config file, or returns defaults if none found.
// The second return value is the path the config was loaded from.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, path, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, path, nil
}

// Save writes config to the specified path.
func (c *Config) Save(path string) error {
	if err := EnsureConfigDir(path); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}

// DefaultConfig returns sensible defaults for a new installation.
func DefaultConfig() *Config {
	cfg := &Config{Version: 1}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	if c.Version == 0 {
		c.Version = 1
	}
	if c.Database.Path == "" {
		c.Database.Path = "./netimpact.db"
	}
	if c.Schema.Dir == "" {
		c.Schema.Dir = "./schemas"
	}
	if c.Schema.Model == "" {
		c.Schema.Model = "openconfig"
	}
	if c.Collector.Port == 0 {
		c.Collector.Port = 22
	}
	if c.Collector.Command == "" {
		c.Collector.Command = "show running-config"
	}
	if len(c.Analysis.MetadataSections) == 0 {
		c.Analysis.MetadataSections = []string{"device"}
	}
}
