package viz

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const upperHalf = "▀"

// HalfBlock draws img into cols x rows terminal cells. Each cell shows two
// vertically stacked pixels: the top one as foreground, the bottom one as
// background. Pixels are sampled nearest-neighbour.
func HalfBlock(img image.Image, cols, rows int) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	b := img.Bounds()
	if b.Empty() {
		return ""
	}

	var sb strings.Builder
	for row := 0; row < rows; row++ {
		yTop := b.Min.Y + (2*row)*b.Dy()/(2*rows)
		yBot := b.Min.Y + (2*row+1)*b.Dy()/(2*rows)
		for col := 0; col < cols; col++ {
			x := b.Min.X + col*b.Dx()/cols
			style := lipgloss.NewStyle().
				Foreground(hexColor(img.At(x, yTop))).
				Background(hexColor(img.At(x, yBot)))
			sb.WriteString(style.Render(upperHalf))
		}
		if row < rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

// CellToGrid maps a terminal cell to grid coordinates for a view of
// cols x rows cells showing a w x h grid.
func CellToGrid(cx, cy, cols, rows, w, h int) (int, int) {
	if cols <= 0 || rows <= 0 {
		return cx, cy
	}
	gx := (2*cx + 1) * w / (2 * cols)
	gy := (2*cy + 1) * h / (2 * rows)
	return gx, gy
}
