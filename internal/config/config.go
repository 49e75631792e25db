package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPattern is searched when no pattern argument is given. The fallback
// suggestion pass only runs for this pattern.
const DefaultPattern = "HTB{"

// DefaultConfigFile is the config file looked up in the working directory
// when --config is not given.
const DefaultConfigFile = ".strfind.yaml"

// Config holds the options for one scan run. It is built once from the
// config file and command line and passed by value; nothing mutates it
// after the run starts.
type Config struct {
	// RootDirectory is the directory to scan. Set from the command line,
	// never from the config file.
	RootDirectory string `yaml:"-"`

	// Pattern is the literal text being searched for.
	Pattern string `yaml:"pattern"`

	// CaseSensitive disables the default case-insensitive matching.
	CaseSensitive bool `yaml:"case_sensitive"`

	// Recursive enables scanning of subdirectories.
	Recursive bool `yaml:"recursive"`

	// Verbose enables progress output and per-file diagnostics.
	Verbose bool `yaml:"verbose"`

	// ExcludeDirs lists directory names skipped during the walk.
	ExcludeDirs []string `yaml:"exclude_dirs"`
}

// DefaultConfig returns a Config with the tool's default values.
func DefaultConfig() *Config {
	return &Config{
		RootDirectory: ".",
		Pattern:       DefaultPattern,
		CaseSensitive: false,
		Recursive:     true,
		Verbose:       true,
		ExcludeDirs:   nil,
	}
}

// LoadConfig loads configuration from the specified file path.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		// File doesn't exist, return defaults (not an error)
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}

	return cfg, nil
}
