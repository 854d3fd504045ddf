package field

// RGB is a density sample. Channel 0 is red, 1 green, 2 blue; values are
// nominally in [0, 1] but never clamped.
type RGB [3]float64

// Scale returns c multiplied by k.
func (c RGB) Scale(k float64) RGB {
	return RGB{c[0] * k, c[1] * k, c[2] * k}
}

// Add returns the component-wise sum.
func (c RGB) Add(o RGB) RGB {
	return RGB{c[0] + o[0], c[1] + o[1], c[2] + o[2]}
}

// Lerp returns (1-t)*c + t*o.
func (c RGB) Lerp(o RGB, t float64) RGB {
	return c.Scale(1 - t).Add(o.Scale(t))
}

// Neutral is the density every cell starts with.
var Neutral = RGB{1, 1, 1}

// Density is a width x height grid of RGB samples.
type Density struct {
	w, h int
	data []RGB
}

func NewDensity(w, h int) *Density {
	return &Density{w: w, h: h, data: make([]RGB, w*h)}
}

func (d *Density) Width() int  { return d.w }
func (d *Density) Height() int { return d.h }

// Data exposes the backing slice in row-major order.
func (d *Density) Data() []RGB { return d.data }

func (d *Density) At(x, y int) RGB     { return d.data[y*d.w+x] }
func (d *Density) Set(x, y int, c RGB) { d.data[y*d.w+x] = c }

func (d *Density) Fill(c RGB) {
	for i := range d.data {
		d.data[i] = c
	}
}

// Shaped reports whether the grid is non-empty and its storage matches
// its declared dimensions.
func (d *Density) Shaped() bool {
	return d != nil && d.w > 0 && d.h > 0 && len(d.data) == d.w*d.h
}

// CopyFrom overwrites d with src. Both grids must share dimensions.
func (d *Density) CopyFrom(src *Density) {
	copy(d.data, src.data)
}

func (d *Density) Clone() *Density {
	c := &Density{w: d.w, h: d.h, data: make([]RGB, len(d.data))}
	copy(c.data, d.data)
	return c
}
