package app

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the optional per-user configuration loaded from
// ~/.symq/config.yaml. Every field has a usable zero value, so a missing
// file is not an error.
type Config struct {
	// Exclude globs are appended to every scan's exclude list.
	Exclude []string `yaml:"exclude,omitempty"`
	// GrammarPaths are extra directories searched for grammar libraries,
	// ahead of the built-in search locations.
	GrammarPaths []string `yaml:"grammar_paths,omitempty"`
	// Jobs is the default worker count for scans. Zero means one per CPU.
	Jobs int `yaml:"jobs,omitempty"`
	// ChunkSize is the default chunking threshold in bytes for symbol
	// content. Zero keeps symbols whole.
	ChunkSize int `yaml:"chunk_size,omitempty"`
}

// DefaultConfigPath returns ~/.symq/config.yaml, or empty when the home
// directory cannot be resolved.
func DefaultConfigPath() string {
	dir := GlobalDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// LoadConfig reads a YAML config file. A missing or empty path yields the
// zero config; a file that exists but does not parse is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
