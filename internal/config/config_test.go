package config

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/fluidsim/internal/palette"
	"github.com/san-kum/fluidsim/internal/pointer"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != 512 || cfg.Height != 512 {
		t.Errorf("expected 512x512, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Viscosity != 0.1 || cfg.ForceStrength != 50 {
		t.Errorf("unexpected physics defaults: %f %f", cfg.Viscosity, cfg.ForceStrength)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}

	p := cfg.GetParams()
	if p.Width != cfg.Width || p.ForceStrength != cfg.ForceStrength {
		t.Errorf("params mismatch: %+v", p)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative height", func(c *Config) { c.Height = -3 }},
		{"negative viscosity", func(c *Config) { c.Viscosity = -1 }},
		{"zero fps", func(c *Config) { c.FPS = 0 }},
		{"short palette", func(c *Config) { c.Palette = c.Palette[:2] }},
		{"unknown path", func(c *Config) { c.Pointer.Path = "spiral" }},
		{"unknown compression", func(c *Config) { c.Compression = "max" }},
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

func TestValidateWrapsCauses(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Palette = []string{"#000000"}
	if err := cfg.Validate(); !errors.Is(err, palette.ErrSize) {
		t.Errorf("expected palette.ErrSize, got %v", err)
	}
	cfg = DefaultConfig()
	cfg.Pointer.Path = "zigzag"
	if err := cfg.Validate(); !errors.Is(err, pointer.ErrUnknownPath) {
		t.Errorf("expected pointer.ErrUnknownPath, got %v", err)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fluid.yaml")

	cfg := DefaultConfig()
	cfg.Width = 64
	cfg.Pointer.Path = "lissajous"
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.Width != 64 || loaded.Pointer.Path != "lissajous" {
		t.Errorf("round trip lost values: %+v", loaded)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("width: 32\nheight: 16\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Width != 32 || cfg.Height != 16 {
		t.Errorf("expected 32x16, got %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.Viscosity != 0.1 || len(cfg.Palette) != 3 {
		t.Errorf("defaults not kept: %+v", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("width: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected validation error")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestPresets(t *testing.T) {
	names := ListPresets()
	if len(names) != len(Presets) {
		t.Fatalf("expected %d presets, got %d", len(Presets), len(names))
	}
	for _, name := range names {
		cfg := GetPreset(name)
		if cfg == nil {
			t.Fatalf("preset %s missing", name)
		}
		if err := cfg.Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
	if GetPreset("nonexistent") != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestGetPresetCopies(t *testing.T) {
	a := GetPreset("small")
	a.Width = 1
	a.Palette[0] = "#123456"
	b := GetPreset("small")
	if b.Width != 128 || b.Palette[0] != "#ff0000" {
		t.Error("preset mutated through returned copy")
	}
}

func TestGetCompression(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Compression = ""
	level, err := cfg.GetCompression()
	if err != nil || level != png.BestSpeed {
		t.Errorf("expected BestSpeed, got %v %v", level, err)
	}
	cfg.Compression = "best"
	if level, _ := cfg.GetCompression(); level != png.BestCompression {
		t.Errorf("expected BestCompression, got %v", level)
	}
}
