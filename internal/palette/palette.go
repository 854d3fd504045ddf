// Package palette provides the colour inputs of the fluid renderer: the
// per-channel tints applied at rasterization and the reference colours
// blended into density by the pointer.
package palette

import (
	"errors"
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/fluidsim/internal/field"
)

// Size is the number of tints a palette must hold.
const Size = 3

var ErrSize = errors.New("palette: exactly 3 colours required")

// Tint is a colour on the 0-255 scale, indexed like [field.RGB].
type Tint [3]float64

// Palette is an ordered tint list. Rendering reads channel i of tint i.
type Palette []Tint

var (
	Red   = Tint{255, 0, 0}
	Green = Tint{0, 255, 0}
	Blue  = Tint{0, 0, 255}
)

// Reference colours blended in around the pointer.
var (
	Pink   = mustNormalized("#ff69b4")
	Purple = mustNormalized("#9370db")
)

// Default returns the identity palette: pure red, green and blue.
func Default() Palette {
	return Palette{Red, Green, Blue}
}

// FromColor converts a colorful colour into a 0-255 tint.
func FromColor(c colorful.Color) Tint {
	return Tint{c.R * 255, c.G * 255, c.B * 255}
}

// Color converts the tint back into a colorful colour, clamped to gamut.
func (t Tint) Color() colorful.Color {
	return colorful.Color{R: t[0] / 255, G: t[1] / 255, B: t[2] / 255}.Clamped()
}

func (t Tint) Hex() string { return t.Color().Hex() }

// Parse builds a palette from hex strings such as "#ff0000".
func Parse(hexes []string) (Palette, error) {
	if len(hexes) != Size {
		return nil, fmt.Errorf("%w, got %d", ErrSize, len(hexes))
	}
	p := make(Palette, 0, Size)
	for _, h := range hexes {
		c, err := colorful.Hex(strings.TrimSpace(h))
		if err != nil {
			return nil, fmt.Errorf("palette: parse %q: %w", h, err)
		}
		p = append(p, FromColor(c))
	}
	return p, nil
}

// Validate reports ErrSize when p has fewer than three tints.
func (p Palette) Validate() error {
	if len(p) < Size {
		return fmt.Errorf("%w, got %d", ErrSize, len(p))
	}
	return nil
}

// Hexes is the inverse of Parse.
func (p Palette) Hexes() []string {
	out := make([]string, len(p))
	for i, t := range p {
		out[i] = t.Hex()
	}
	return out
}

// Diagonal returns the per-channel gains the renderer applies:
// channel 0 of tint 0, channel 1 of tint 1, channel 2 of tint 2.
func (p Palette) Diagonal() [3]float64 {
	return [3]float64{p[0][0], p[1][1], p[2][2]}
}

func mustNormalized(hex string) field.RGB {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(err)
	}
	return field.RGB{c.R, c.G, c.B}
}
