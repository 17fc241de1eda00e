package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 1600
	DefaultHeight = 900

	// Iteration policy: the per-frame budget grows linearly with zoom
	// depth and is capped by the user-settable maximum, which in turn
	// never exceeds the hard limit.
	DefaultInitialIterations  = 96
	DefaultIterationIncrement = 40
	DefaultMaxIterations      = 5000
	HardIterationLimit        = 10000

	DefaultImageDir = "saved_images"
)

type Config struct {
	Window WindowConfig `yaml:"window"`
	Render RenderConfig `yaml:"render"`
	// ImageDir is where exported PNGs are written.
	ImageDir string `yaml:"image_dir"`
}

type WindowConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type RenderConfig struct {
	InitialIterations  int `yaml:"initial_iterations"`
	IterationIncrement int `yaml:"iteration_increment"`
	MaxIterations      int `yaml:"max_iterations"`
	// Workers overrides the render pool size; 0 selects the hardware
	// parallelism.
	Workers int `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Window: WindowConfig{
			Width:  DefaultWidth,
			Height: DefaultHeight,
		},
		Render: RenderConfig{
			InitialIterations:  DefaultInitialIterations,
			IterationIncrement: DefaultIterationIncrement,
			MaxIterations:      DefaultMaxIterations,
		},
		ImageDir: DefaultImageDir,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Window.Width < 1 || c.Window.Height < 1 {
		return fmt.Errorf("config: window size %dx%d invalid", c.Window.Width, c.Window.Height)
	}
	if c.Render.InitialIterations < 1 {
		return fmt.Errorf("config: initial iterations %d must be positive", c.Render.InitialIterations)
	}
	if c.Render.IterationIncrement < 0 {
		return fmt.Errorf("config: iteration increment %d must not be negative", c.Render.IterationIncrement)
	}
	if c.Render.MaxIterations < 1 || c.Render.MaxIterations > HardIterationLimit {
		return fmt.Errorf("config: max iterations %d outside [1, %d]", c.Render.MaxIterations, HardIterationLimit)
	}
	return nil
}
