package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Window.Width != DefaultWidth || cfg.Window.Height != DefaultHeight {
		t.Errorf("window %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Render.MaxIterations > HardIterationLimit {
		t.Error("default max iterations above hard limit")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Window.Width = 1024
	cfg.Render.MaxIterations = 2000
	cfg.Render.Workers = 8

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Window.Width != 1024 {
		t.Errorf("width %d, want 1024", loaded.Window.Width)
	}
	if loaded.Render.MaxIterations != 2000 {
		t.Errorf("max iterations %d, want 2000", loaded.Render.MaxIterations)
	}
	if loaded.Render.Workers != 8 {
		t.Errorf("workers %d, want 8", loaded.Render.Workers)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("render:\n  max_iterations: 300\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Render.MaxIterations != 300 {
		t.Errorf("max iterations %d, want 300", cfg.Render.MaxIterations)
	}
	if cfg.Window.Width != DefaultWidth {
		t.Errorf("width %d, want default %d", cfg.Window.Width, DefaultWidth)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"zero initial iterations", func(c *Config) { c.Render.InitialIterations = 0 }},
		{"negative increment", func(c *Config) { c.Render.IterationIncrement = -1 }},
		{"max above hard limit", func(c *Config) { c.Render.MaxIterations = HardIterationLimit + 1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
