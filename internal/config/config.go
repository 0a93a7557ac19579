package config

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "JELLYPARSE_CONFIG"

// Config holds all jellyparse configuration
type Config struct {
	Parser    ParserConfig  `toml:"parser"`
	Batch     BatchConfig   `toml:"batch"`
	Output    OutputConfig  `toml:"output"`
	Log       LogConfig     `toml:"log"`
	Libraries LibraryConfig `toml:"libraries"`
}

// ParserConfig tunes title parsing
type ParserConfig struct {
	CurrentYear int  `toml:"current_year"` // 0 means use the system clock
	Folders     bool `toml:"folders"`      // treat inputs as folder names by default
}

// BatchConfig sizes the batch worker pool
type BatchConfig struct {
	Workers int `toml:"workers"`
}

// OutputConfig selects how results are printed
type OutputConfig struct {
	Format  string `toml:"format"`  // auto, text, json, yaml, jsonl
	Quality bool   `toml:"quality"` // include quality tags
}

// LogConfig controls diagnostic logging
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	File  string `toml:"file"`  // optional rotating log file
}

// LibraryConfig lists folders the batch command reads when given no input
type LibraryConfig struct {
	Paths []string `toml:"paths"`
}

var (
	validFormats = map[string]bool{"auto": true, "text": true, "json": true, "yaml": true, "jsonl": true}
	validLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Batch:  BatchConfig{Workers: runtime.NumCPU()},
		Output: OutputConfig{Format: "auto"},
		Log:    LogConfig{Level: "warn"},
		Libraries: LibraryConfig{
			Paths: []string{},
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get config directory")
	}

	return filepath.Join(configDir, "jellyparse", "config.toml"), nil
}

// EnsureConfigDir creates the config directory if it doesn't exist
func EnsureConfigDir() error {
	configFile, err := ConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configFile), 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	return nil
}

// Load reads the config file, creating it with defaults if it doesn't exist
func Load() (*Config, error) {
	configFile, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := Save(cfg); err != nil {
			return nil, errors.Wrap(err, "failed to create default config")
		}
		return cfg, nil
	}

	return LoadFrom(configFile)
}

// LoadFrom reads the config at path. Keys missing from the file keep their
// default values.
func LoadFrom(path string) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to load config %s", path)
	}
	return cfg, nil
}

// Save writes the config to disk
func Save(cfg *Config) error {
	if err := EnsureConfigDir(); err != nil {
		return err
	}

	configFile, err := ConfigPath()
	if err != nil {
		return err
	}

	return SaveTo(cfg, configFile)
}

// SaveTo writes the config to path
func SaveTo(cfg *Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create config file")
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return errors.Wrap(err, "failed to write config")
	}

	return nil
}

// Validate checks if the config is valid
func (c *Config) Validate() error {
	if !validFormats[c.Output.Format] {
		return errors.Errorf("invalid output format: %s (must be auto, text, json, yaml, or jsonl)", c.Output.Format)
	}

	if !validLevels[c.Log.Level] {
		return errors.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Log.Level)
	}

	if c.Batch.Workers < 0 {
		return errors.Errorf("invalid worker count: %d", c.Batch.Workers)
	}

	if c.Parser.CurrentYear != 0 && (c.Parser.CurrentYear < 1870 || c.Parser.CurrentYear > 9999) {
		return errors.Errorf("invalid current year: %d", c.Parser.CurrentYear)
	}

	for _, path := range c.Libraries.Paths {
		info, err := os.Stat(path)
		if err != nil {
			return errors.Wrapf(err, "library path %s", path)
		}
		if !info.IsDir() {
			return errors.Errorf("library path %s is not a directory", path)
		}
	}

	return nil
}

// AddPath adds a library path
func (c *Config) AddPath(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrap(err, "path does not exist")
	}
	if !info.IsDir() {
		return errors.Errorf("path is not a directory: %s", path)
	}

	for _, existing := range c.Libraries.Paths {
		if existing == path {
			return errors.Errorf("path already configured: %s", path)
		}
	}

	c.Libraries.Paths = append(c.Libraries.Paths, path)
	return nil
}

// RemovePath removes a library path
func (c *Config) RemovePath(path string) error {
	for i, existing := range c.Libraries.Paths {
		if existing == path {
			c.Libraries.Paths = append(c.Libraries.Paths[:i], c.Libraries.Paths[i+1:]...)
			return nil
		}
	}
	return errors.Errorf("path not found: %s", path)
}
