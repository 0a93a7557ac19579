package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output.Format != "auto" {
		t.Errorf("expected output format 'auto', got '%s'", cfg.Output.Format)
	}

	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level 'warn', got '%s'", cfg.Log.Level)
	}

	if cfg.Batch.Workers <= 0 {
		t.Errorf("expected positive worker count, got %d", cfg.Batch.Workers)
	}

	if len(cfg.Libraries.Paths) != 0 {
		t.Errorf("expected empty library paths, got %d", len(cfg.Libraries.Paths))
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestAddPath(t *testing.T) {
	cfg := DefaultConfig()
	tmpDir := t.TempDir()

	if err := cfg.AddPath(tmpDir); err != nil {
		t.Fatalf("failed to add path: %v", err)
	}

	if len(cfg.Libraries.Paths) != 1 || cfg.Libraries.Paths[0] != tmpDir {
		t.Errorf("expected paths [%s], got %v", tmpDir, cfg.Libraries.Paths)
	}

	// Try to add duplicate
	if err := cfg.AddPath(tmpDir); err == nil {
		t.Error("expected error when adding duplicate path")
	}

	// Try to add non-existent path
	if err := cfg.AddPath("/nonexistent/path"); err == nil {
		t.Error("expected error when adding non-existent path")
	}

	// Try to add a file
	file := filepath.Join(tmpDir, "movie.mkv")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := cfg.AddPath(file); err == nil {
		t.Error("expected error when adding a file")
	}
}

func TestRemovePath(t *testing.T) {
	cfg := DefaultConfig()
	tmpDir := t.TempDir()

	if err := cfg.AddPath(tmpDir); err != nil {
		t.Fatalf("failed to add path: %v", err)
	}

	if err := cfg.RemovePath(tmpDir); err != nil {
		t.Errorf("failed to remove path: %v", err)
	}

	if len(cfg.Libraries.Paths) != 0 {
		t.Errorf("expected no paths, got %d", len(cfg.Libraries.Paths))
	}

	if err := cfg.RemovePath(tmpDir); err == nil {
		t.Error("expected error when removing missing path")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"json output", func(c *Config) { c.Output.Format = "json" }, false},
		{"bad format", func(c *Config) { c.Output.Format = "xml" }, true},
		{"bad level", func(c *Config) { c.Log.Level = "verbose" }, true},
		{"negative workers", func(c *Config) { c.Batch.Workers = -1 }, true},
		{"pinned year", func(c *Config) { c.Parser.CurrentYear = 2024 }, false},
		{"bad year", func(c *Config) { c.Parser.CurrentYear = 12 }, true},
		{"missing library", func(c *Config) { c.Libraries.Paths = []string{"/nonexistent/path"} }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	t.Setenv(EnvConfigPath, path)

	// First load creates the file with defaults
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be created: %v", err)
	}

	cfg.Parser.CurrentYear = 2024
	cfg.Parser.Folders = true
	cfg.Output.Format = "yaml"
	cfg.Log.Level = "debug"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Parser.CurrentYear != 2024 || !loaded.Parser.Folders {
		t.Errorf("parser section not persisted: %+v", loaded.Parser)
	}
	if loaded.Output.Format != "yaml" || loaded.Log.Level != "debug" {
		t.Errorf("output/log not persisted: %+v %+v", loaded.Output, loaded.Log)
	}
}

func TestLoadFromPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[output]\nformat = \"json\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom failed: %v", err)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected json format, got %s", cfg.Output.Format)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected default log level to survive, got %s", cfg.Log.Level)
	}
}

func TestLoadFromInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[output\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for malformed TOML")
	}
}
