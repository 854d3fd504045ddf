package config

import (
	"fmt"
	"image/png"
)

var compressionLevels = map[string]png.CompressionLevel{
	"default": png.DefaultCompression,
	"none":    png.NoCompression,
	"speed":   png.BestSpeed,
	"best":    png.BestCompression,
}

// GetCompression maps the configured name to a PNG compression level.
func (c *Config) GetCompression() (png.CompressionLevel, error) {
	name := c.Compression
	if name == "" {
		name = DefaultCompression
	}
	level, ok := compressionLevels[name]
	if !ok {
		return 0, fmt.Errorf("unknown compression %q (use default, none, speed or best)", c.Compression)
	}
	return level, nil
}
