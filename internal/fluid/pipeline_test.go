package fluid_test

import (
	"bytes"
	"testing"

	"github.com/san-kum/fluidsim/internal/codec"
	"github.com/san-kum/fluidsim/internal/fluid"
	"github.com/san-kum/fluidsim/internal/frame"
	"github.com/san-kum/fluidsim/internal/palette"
)

func TestPipelineSmallGrid(t *testing.T) {
	s, err := fluid.New(fluid.Params{Width: 4, Height: 4, Viscosity: 0.1, ForceStrength: 50.0})
	if err != nil {
		t.Fatalf("new failed: %v", err)
	}

	if err := s.Step(2, 2, palette.Palette{palette.Red, palette.Green, palette.Blue}); err != nil {
		t.Fatalf("step failed: %v", err)
	}

	c := s.Canvas()
	uniform := true
	for y := 0; y < 4 && uniform; y++ {
		for x := 0; x < 3; x++ {
			r0, g0, b0 := c.RGBAt(x, y)
			r1, g1, b1 := c.RGBAt(x+1, y)
			if r0 != r1 || g0 != g1 || b0 != b1 {
				uniform = false
				break
			}
		}
	}
	if uniform {
		t.Error("expected a non-uniform canvas")
	}

	exp := frame.NewExporter()
	data, err := exp.Export(c)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	token := codec.Encode(data)
	if len(token) == 0 || len(token)%4 != 0 {
		t.Fatalf("bad token length %d", len(token))
	}

	decoded, err := codec.Decode(token)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !bytes.Equal(decoded, data) {
		t.Error("decoded bytes differ from exported bytes")
	}

	img, err := frame.DecodeToken(token)
	if err != nil {
		t.Fatalf("collaborator decode failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Errorf("expected 4x4 image, got %dx%d", b.Dx(), b.Dy())
	}
}
