package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fluidsim/internal/fluid"
	"github.com/san-kum/fluidsim/internal/palette"
	"github.com/san-kum/fluidsim/internal/pointer"
)

const (
	DefaultFrames      = 120
	DefaultFPS         = 30
	DefaultPath        = "circle"
	DefaultPathRadius  = 120.0
	DefaultPathSpeed   = 0.05
	DefaultCompression = "speed"
)

type Config struct {
	Width         int           `yaml:"width"`
	Height        int           `yaml:"height"`
	Viscosity     float64       `yaml:"viscosity"`
	ForceStrength float64       `yaml:"force_strength"`
	Palette       []string      `yaml:"palette"`
	Frames        int           `yaml:"frames"`
	FPS           int           `yaml:"fps"`
	Compression   string        `yaml:"compression"`
	Pointer       PointerConfig `yaml:"pointer"`
}

type PointerConfig struct {
	Path   string  `yaml:"path"`
	CX     float64 `yaml:"cx"`
	CY     float64 `yaml:"cy"`
	Radius float64 `yaml:"radius"`
	Speed  float64 `yaml:"speed"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:         fluid.DefaultWidth,
		Height:        fluid.DefaultHeight,
		Viscosity:     fluid.DefaultViscosity,
		ForceStrength: fluid.DefaultForceStrength,
		Palette:       palette.Default().Hexes(),
		Frames:        DefaultFrames,
		FPS:           DefaultFPS,
		Compression:   DefaultCompression,
		Pointer: PointerConfig{
			Path:   DefaultPath,
			CX:     fluid.DefaultWidth / 2,
			CY:     fluid.DefaultHeight / 2,
			Radius: DefaultPathRadius,
			Speed:  DefaultPathSpeed,
		},
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
		return nil, fmt.Errorf("%s: %w", path, err)
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
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("width and height must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Viscosity < 0 {
		return fmt.Errorf("viscosity must be non-negative, got %f", c.Viscosity)
	}
	if c.Frames < 0 {
		return fmt.Errorf("frames must be non-negative, got %d", c.Frames)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	if _, err := c.GetPalette(); err != nil {
		return err
	}
	if _, err := c.GetPath(); err != nil {
		return err
	}
	if _, err := c.GetCompression(); err != nil {
		return err
	}
	return nil
}

func (c *Config) GetParams() fluid.Params {
	return fluid.Params{
		Width:         c.Width,
		Height:        c.Height,
		Viscosity:     c.Viscosity,
		ForceStrength: c.ForceStrength,
	}
}

func (c *Config) GetPalette() (palette.Palette, error) {
	return palette.Parse(c.Palette)
}

func (c *Config) GetPath() (pointer.Path, error) {
	p := c.Pointer
	return pointer.New(p.Path, p.CX, p.CY, p.Radius, p.Speed)
}
