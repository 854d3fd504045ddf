package field

// Canvas is the rasterized 8-bit image. Pixels are packed three bytes per
// cell in blue, green, red order, the reverse of [RGB].
type Canvas struct {
	w, h int
	Pix  []uint8
}

func NewCanvas(w, h int) *Canvas {
	return &Canvas{w: w, h: h, Pix: make([]uint8, 3*w*h)}
}

func (c *Canvas) Width() int  { return c.w }
func (c *Canvas) Height() int { return c.h }

// Stride is the number of bytes per row.
func (c *Canvas) Stride() int { return 3 * c.w }

// SetBGR stores a pixel in canvas byte order.
func (c *Canvas) SetBGR(x, y int, b, g, r uint8) {
	i := y*c.Stride() + 3*x
	c.Pix[i], c.Pix[i+1], c.Pix[i+2] = b, g, r
}

// RGBAt returns the pixel at (x, y) as red, green, blue.
func (c *Canvas) RGBAt(x, y int) (r, g, b uint8) {
	i := y*c.Stride() + 3*x
	return c.Pix[i+2], c.Pix[i+1], c.Pix[i]
}

func (c *Canvas) Clone() *Canvas {
	n := &Canvas{w: c.w, h: c.h, Pix: make([]uint8, len(c.Pix))}
	copy(n.Pix, c.Pix)
	return n
}
