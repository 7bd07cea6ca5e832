// Package config loads the small set of settings a buffer-pool demo needs:
// where the database and log files live, and how many frames to allocate.
// This is scaffolding for cmd/bufctl, not part of the buffer-pool core's
// functional surface (spec.md §1 places configuration loading out of
// scope) — it exists because the teacher's CLI tools always load their
// settings from a small config file, and the ambient concern is carried
// even when the feature itself is out of scope.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PoolConfig is the on-disk configuration for a single buffer-pool instance.
type PoolConfig struct {
	DBPath   string `yaml:"db_path"`
	PoolSize int    `yaml:"pool_size"`
}

// DefaultPoolConfig returns sensible defaults matching spec.md's worked
// scenario (pool_size = 10).
func DefaultPoolConfig() PoolConfig {
	return PoolConfig{DBPath: "bufkit.db", PoolSize: 10}
}

// Load reads a YAML config file. Missing fields fall back to
// DefaultPoolConfig's values.
func Load(path string) (PoolConfig, error) {
	cfg := DefaultPoolConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		return PoolConfig{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return PoolConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if cfg.PoolSize <= 0 {
		return PoolConfig{}, fmt.Errorf("config: pool_size must be positive, got %d", cfg.PoolSize)
	}
	if cfg.DBPath == "" {
		return PoolConfig{}, fmt.Errorf("config: db_path must not be empty")
	}
	return cfg, nil
}
