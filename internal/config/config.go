package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// EnvNamelist names the namelist used when --namelist is not given.
const EnvNamelist = "ESMDIAG_NAMELIST"

// CurrentVersion is written by SaveConfig when a config has no version.
const CurrentVersion = "1"

// Config represents the flat esmdiag configuration
type Config struct {
	Version         string `json:"version"`
	DBPath          string `json:"db_path,omitempty"`          // overrides ~/.esmdiag/esmdiag.db
	DefaultNamelist string `json:"default_namelist,omitempty"` // used when no --namelist is given
	Workers         int    `json:"workers,omitempty"`          // concurrent existence checks
}

// LoadConfig reads .esmdiag/config.json from the specified directory.
// Resolution order: cwd only (no home fallback).
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".esmdiag", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// LoadConfigOrDefault is LoadConfig that falls back to an empty config when
// the directory has none.
func LoadConfigOrDefault(dir string) (*Config, error) {
	cfg, err := LoadConfig(dir)
	if err == nil {
		return cfg, nil
	}
	if _, statErr := os.Stat(filepath.Join(dir, ".esmdiag", "config.json")); os.IsNotExist(statErr) {
		return &Config{Version: CurrentVersion}, nil
	}
	return nil, err
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, ".esmdiag")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create .esmdiag dir: %w", err)
	}

	if cfg.Version == "" {
		cfg.Version = CurrentVersion
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfgDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// NamelistPath picks the namelist to load: the flag value, then
// $ESMDIAG_NAMELIST, then the config's default.
func (c *Config) NamelistPath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env := os.Getenv(EnvNamelist); env != "" {
		return env, nil
	}
	if c != nil && c.DefaultNamelist != "" {
		return c.DefaultNamelist, nil
	}
	return "", fmt.Errorf("no namelist given: pass --namelist, set %s, or set default_namelist in .esmdiag/config.json", EnvNamelist)
}

// WorkerCount returns the flag value when set, else the configured count, else 1.
func (c *Config) WorkerCount(flag int) int {
	if flag > 0 {
		return flag
	}
	if c != nil && c.Workers > 0 {
		return c.Workers
	}
	return 1
}
