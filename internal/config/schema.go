package config

import (
	"fmt"
	"time"
)

// Config is the root configuration structure.
type Config struct {
	Version   int             `yaml:"version"`
	Database  DatabaseConfig  `yaml:"database"`
	Schema    SchemaConfig    `yaml:"schema"`
	Collector CollectorConfig `yaml:"collector"`
	Analysis  AnalysisConfig  `yaml:"analysis"`
}

// DatabaseConfig locates the snapshot database.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// SchemaConfig locates the schema models used for reference extraction.
type SchemaConfig struct {
	Dir   string `yaml:"dir"`
	Model string `yaml:"model"`
}

// CollectorConfig holds device access settings.
type CollectorConfig struct {
	Username       string    `yaml:"username,omitempty"`
	Password       string    `yaml:"password,omitempty"`
	KeyFile        string    `yaml:"key_file,omitempty"`
	KeyPassphrase  string    `yaml:"key_passphrase,omitempty"`
	Port           int       `yaml:"port,omitempty"`
	Command        string    `yaml:"command,omitempty"`
	ConnectTimeout *Duration `yaml:"connect_timeout,omitempty"`
	CommandTimeout *Duration `yaml:"command_timeout,omitempty"`
	Targets        []string  `yaml:"targets,omitempty"`
}

// AnalysisConfig tunes the diff engine.
type AnalysisConfig struct {
	// MetadataSections are top-level keys skipped by the differ.
	MetadataSections []string `yaml:"metadata_sections,omitempty"`
	// FullReplace treats proposals as full configuration replacements.
	FullReplace bool `yaml:"full_replace,omitempty"`
}

// Duration wraps time.Duration for YAML unmarshaling.
type Duration time.Duration

// UnmarshalYAML parses duration strings like "30s".
func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// MarshalYAML writes durations in string form.
func (d Duration) MarshalYAML() (interface{}, error) {
	return time.Duration(d).String(), nil
}

// Duration returns the wrapped value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
