package field

import (
	"math"
	"testing"
)

func TestNewStateDimensions(t *testing.T) {
	tests := []struct {
		w, h int
	}{
		{1, 1},
		{4, 4},
		{7, 3},
		{64, 32},
	}

	for _, tt := range tests {
		s := NewState(tt.w, tt.h)
		if s.Width() != tt.w || s.Height() != tt.h {
			t.Errorf("state %dx%d: got %dx%d", tt.w, tt.h, s.Width(), s.Height())
		}
		for name, g := range map[string]*Scalar{"vx": s.VelocityX, "vy": s.VelocityY, "p": s.Pressure} {
			if g.Width() != tt.w || g.Height() != tt.h || len(g.Data()) != tt.w*tt.h {
				t.Errorf("%s: wrong shape %dx%d len %d", name, g.Width(), g.Height(), len(g.Data()))
			}
		}
		if len(s.Canvas.Pix) != 3*tt.w*tt.h {
			t.Errorf("canvas: expected %d bytes, got %d", 3*tt.w*tt.h, len(s.Canvas.Pix))
		}
	}
}

func TestNewStateNeutral(t *testing.T) {
	s := NewState(5, 6)
	for i, c := range s.Density.Data() {
		if c != Neutral {
			t.Fatalf("density cell %d: expected %v, got %v", i, Neutral, c)
		}
	}
	for i := range s.VelocityX.Data() {
		if s.VelocityX.Data()[i] != 0 || s.VelocityY.Data()[i] != 0 || s.Pressure.Data()[i] != 0 {
			t.Fatalf("cell %d not zero", i)
		}
	}
}

func TestScalarIndexing(t *testing.T) {
	s := NewScalar(3, 2)
	s.Set(2, 1, 4)
	s.Add(2, 1, 1)
	if s.Data()[1*3+2] != 5 {
		t.Errorf("expected row-major storage, got %v", s.Data())
	}
	s.Scale(0.5)
	if s.At(2, 1) != 2.5 {
		t.Errorf("expected 2.5, got %f", s.At(2, 1))
	}
}

func TestCanvasByteOrder(t *testing.T) {
	c := NewCanvas(2, 1)
	c.SetBGR(1, 0, 10, 20, 30)
	if c.Pix[3] != 10 || c.Pix[4] != 20 || c.Pix[5] != 30 {
		t.Errorf("expected BGR bytes, got %v", c.Pix[3:])
	}
	r, g, b := c.RGBAt(1, 0)
	if r != 30 || g != 20 || b != 10 {
		t.Errorf("expected rgb (30,20,10), got (%d,%d,%d)", r, g, b)
	}
}

func TestGaussianKernel(t *testing.T) {
	k := GaussianKernel(5, 1.5)
	sum := 0.0
	for _, v := range k {
		sum += v
	}
	if math.Abs(sum-1) > 1e-12 {
		t.Errorf("kernel not normalized: %f", sum)
	}
	if k[0] != k[4] || k[1] != k[3] {
		t.Errorf("kernel not symmetric: %v", k)
	}
	if !(k[2] > k[1] && k[1] > k[0]) {
		t.Errorf("kernel not peaked: %v", k)
	}
}

func TestReflect101(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{-1, 5, 1},
		{-2, 5, 2},
		{5, 5, 3},
		{6, 5, 2},
		{2, 5, 2},
		{-2, 2, 0},
		{3, 2, 1},
		{-3, 1, 0},
	}
	for _, tt := range tests {
		if got := reflect101(tt.i, tt.n); got != tt.want {
			t.Errorf("reflect101(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.want)
		}
	}
}

func TestBlurInteriorKeepsBorder(t *testing.T) {
	src := NewDensity(6, 5)
	for i := range src.Data() {
		src.Data()[i] = RGB{float64(i), 0, 1}
	}
	dst := NewDensity(6, 5)
	dst.Fill(RGB{-1, -1, -1})

	NewBlur(5, 1.5).Interior(dst, src)

	for y := 0; y < 5; y++ {
		for x := 0; x < 6; x++ {
			border := x == 0 || y == 0 || x == 5 || y == 4
			got := dst.At(x, y)
			if border && got != (RGB{-1, -1, -1}) {
				t.Errorf("border cell (%d,%d) written: %v", x, y, got)
			}
			if !border && math.Abs(got[2]-1) > 1e-9 {
				t.Errorf("uniform channel changed at (%d,%d): %f", x, y, got[2])
			}
		}
	}
}

func TestBlurSmallGridNoop(t *testing.T) {
	src := NewDensity(2, 2)
	dst := NewDensity(2, 2)
	dst.Fill(Neutral)
	NewBlur(5, 1.5).Interior(dst, src)
	for _, c := range dst.Data() {
		if c != Neutral {
			t.Fatalf("expected untouched grid, got %v", c)
		}
	}
}

func TestDensityShaped(t *testing.T) {
	var d *Density
	if d.Shaped() {
		t.Error("nil density should not be shaped")
	}
	d = NewDensity(3, 3)
	if !d.Shaped() {
		t.Error("fresh density should be shaped")
	}
	d.data = d.data[:4]
	if d.Shaped() {
		t.Error("truncated density should not be shaped")
	}
}
