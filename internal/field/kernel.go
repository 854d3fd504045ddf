package field

import "math"

// GaussianKernel returns a normalized 1D Gaussian of odd size centred on
// size/2 with standard deviation sigma.
func GaussianKernel(size int, sigma float64) []float64 {
	k := make([]float64, size)
	c := size / 2
	sum := 0.0
	for i := range k {
		d := float64(i - c)
		k[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// reflect101 maps an out-of-range index back into [0, n) by mirroring
// around the edge cell without repeating it (dcb|abcd|cba).
func reflect101(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		} else {
			i = 2*n - 2 - i
		}
	}
	return i
}

// Blur is a separable convolution over [Density] grids. It keeps its
// scratch row buffer between calls.
type Blur struct {
	kernel  []float64
	scratch []RGB
}

func NewBlur(size int, sigma float64) *Blur {
	return &Blur{kernel: GaussianKernel(size, sigma)}
}

// Kernel returns the 1D weights.
func (b *Blur) Kernel() []float64 { return b.kernel }

// Interior convolves src and writes the result into the interior cells of
// dst. The one-cell border of dst is not written. Samples past the edge of
// src are mirrored.
func (b *Blur) Interior(dst, src *Density) {
	w, h := src.w, src.h
	if w < 3 || h < 3 {
		return
	}
	if len(b.scratch) != w*h {
		b.scratch = make([]RGB, w*h)
	}

	r := len(b.kernel) / 2

	// horizontal pass over every row the vertical pass will read
	for y := 0; y < h; y++ {
		row := y * w
		for x := 0; x < w; x++ {
			var acc RGB
			for k, wt := range b.kernel {
				c := src.data[row+reflect101(x+k-r, w)]
				acc[0] += wt * c[0]
				acc[1] += wt * c[1]
				acc[2] += wt * c[2]
			}
			b.scratch[row+x] = acc
		}
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			var acc RGB
			for k, wt := range b.kernel {
				c := b.scratch[reflect101(y+k-r, h)*w+x]
				acc[0] += wt * c[0]
				acc[1] += wt * c[1]
				acc[2] += wt * c[2]
			}
			dst.data[y*w+x] = acc
		}
	}
}
