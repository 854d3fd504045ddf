package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"small": {
		Width: 128, Height: 128, Viscosity: 0.1, ForceStrength: 50, Frames: 90, FPS: 30,
		Palette: []string{"#ff0000", "#00ff00", "#0000ff"},
		Pointer: PointerConfig{Path: "circle", CX: 64, CY: 64, Radius: 32, Speed: 0.08},
	},
	"syrup": {
		Width: 256, Height: 256, Viscosity: 4.0, ForceStrength: 30, Frames: 180, FPS: 30,
		Palette: []string{"#ffd700", "#ffa500", "#ff4500"},
		Pointer: PointerConfig{Path: "line", CX: 128, CY: 128, Radius: 90, Speed: 2},
	},
	"storm": {
		Width: 256, Height: 256, Viscosity: 0.02, ForceStrength: 180, Frames: 240, FPS: 60,
		Palette: []string{"#ff00ff", "#00ffff", "#ffff00"},
		Pointer: PointerConfig{Path: "lissajous", CX: 128, CY: 128, Radius: 90, Speed: 0.04},
	},
	"still": {
		Width: 128, Height: 128, Viscosity: 0.1, ForceStrength: 50, Frames: 60, FPS: 30,
		Palette: []string{"#ff0000", "#00ff00", "#0000ff"},
		Pointer: PointerConfig{Path: "fixed", CX: 64, CY: 64},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	c.Palette = append([]string(nil), cfg.Palette...)
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
