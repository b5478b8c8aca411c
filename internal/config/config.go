// Package config loads CLI defaults from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// AppName names the XDG config directory.
const AppName = "eparse"

// DefaultConfigFile is the file looked up in the working and home directories.
const DefaultConfigFile = ".eparse.yaml"

// XDGConfigFile is the file looked up in the XDG config directory.
const XDGConfigFile = "config.yaml"

// ErrConfigNotFound is returned when an explicitly requested file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Configuration validation errors.
var (
	ErrInvalidMode        = errors.New("invalid mode: must be light, standard, or verbose")
	ErrInvalidFormat      = errors.New("invalid format: must be json, markdown, or digest")
	ErrNegativeTolerance  = errors.New("invalid tolerance: must be non-negative")
	ErrInvalidConcurrency = errors.New("invalid concurrency: must be non-negative")
	// ErrStorageRequiresTables rejects light mode with a database: light
	// mode extracts no tables, so there would be nothing to persist.
	ErrStorageRequiresTables = errors.New("invalid storage: light mode extracts no tables to persist")
)

// Config holds CLI defaults.
type Config struct {
	Debug       bool            `yaml:"debug"`
	Mode        string          `yaml:"mode"`
	Format      string          `yaml:"format"`
	Pretty      bool            `yaml:"pretty"`
	Concurrency int             `yaml:"concurrency"`
	Discovery   DiscoveryConfig `yaml:"discovery"`
	Storage     StorageConfig   `yaml:"storage"`
}

// DiscoveryConfig holds table discovery and extraction settings.
type DiscoveryConfig struct {
	// ExcludeNested drops nested tables; defaults to true when unset.
	ExcludeNested *bool `yaml:"exclude_nested"`
	NaToleranceR  int   `yaml:"na_tolerance_r"`
	NaToleranceC  int   `yaml:"na_tolerance_c"`
	NaStrip       bool  `yaml:"na_strip"`
	PrintAreas    bool  `yaml:"print_areas_only"`
}

// ExcludeNestedOrDefault returns whether nested tables are excluded.
func (d *DiscoveryConfig) ExcludeNestedOrDefault() bool {
	if d.ExcludeNested != nil {
		return *d.ExcludeNested
	}
	return true
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	// DatabasePath enables SQLite persistence when non-empty.
	DatabasePath string `yaml:"database_path"`
}

// Load reads and parses the config file at path, applies defaults and
// resolves relative paths against the config file's directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.Storage.DatabasePath = expandPath(cfg.Storage.DatabasePath, filepath.Dir(path))
	return &cfg, nil
}

// Default returns a Config with defaults applied.
func Default() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Mode == "" {
		cfg.Mode = "standard"
	}
	if cfg.Format == "" {
		cfg.Format = "json"
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	switch c.Mode {
	case "light", "standard", "verbose":
	default:
		return ErrInvalidMode
	}
	switch c.Format {
	case "json", "markdown", "digest":
	default:
		return ErrInvalidFormat
	}
	if c.Discovery.NaToleranceR < 0 || c.Discovery.NaToleranceC < 0 {
		return ErrNegativeTolerance
	}
	if c.Concurrency < 0 {
		return ErrInvalidConcurrency
	}
	if c.Mode == "light" && c.Storage.DatabasePath != "" {
		return ErrStorageRequiresTables
	}
	return nil
}

// Find returns the config file to load: configPath when given, otherwise
// DefaultConfigFile in the working directory, then XDGConfigFile in
// XDGConfigDir, then DefaultConfigFile in the home directory.
// It returns "" when none exists.
func Find(configPath string) string {
	if configPath != "" {
		return configPath
	}
	if cwd, err := os.Getwd(); err == nil {
		if p := filepath.Join(cwd, DefaultConfigFile); fileExists(p) {
			return p
		}
	}
	if p := filepath.Join(XDGConfigDir(), XDGConfigFile); fileExists(p) {
		return p
	}
	if home, err := os.UserHomeDir(); err == nil {
		if p := filepath.Join(home, DefaultConfigFile); fileExists(p) {
			return p
		}
	}
	return ""
}

// XDGConfigDir returns the XDG config directory for eparse,
// e.g. ~/.config/eparse on Linux.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandPath resolves "./" paths against configDir. Empty and absolute paths
// are returned unchanged.
func expandPath(path, configDir string) string {
	if path == "" || path == ":memory:" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || strings.HasPrefix(path, "../") {
		return filepath.Join(configDir, path)
	}
	return path
}
