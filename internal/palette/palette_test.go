package palette

import (
	"errors"
	"math"
	"testing"
)

func TestDefaultDiagonal(t *testing.T) {
	d := Default().Diagonal()
	if d != [3]float64{255, 255, 255} {
		t.Errorf("expected unit gains, got %v", d)
	}
}

func TestParse(t *testing.T) {
	p, err := Parse([]string{"#ff0000", "#00ff00", " #0000ff "})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	for i, want := range Default() {
		for c := 0; c < 3; c++ {
			if math.Abs(p[i][c]-want[c]) > 1e-9 {
				t.Errorf("tint %d channel %d: expected %f, got %f", i, c, want[c], p[i][c])
			}
		}
	}
	if got := p.Hexes(); got[0] != "#ff0000" || got[2] != "#0000ff" {
		t.Errorf("unexpected hexes %v", got)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		hexes []string
		size  bool
	}{
		{"too few", []string{"#ff0000"}, true},
		{"too many", []string{"#000000", "#000000", "#000000", "#000000"}, true},
		{"bad hex", []string{"#ff0000", "green", "#0000ff"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.hexes)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if errors.Is(err, ErrSize) != tt.size {
				t.Errorf("errors.Is(ErrSize) = %v, want %v", !tt.size, tt.size)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	if err := (Palette{Red, Green}).Validate(); !errors.Is(err, ErrSize) {
		t.Errorf("expected ErrSize, got %v", err)
	}
	if err := Default().Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestReferenceColours(t *testing.T) {
	if math.Abs(Pink[0]-1) > 1e-9 || math.Abs(Pink[1]-105.0/255) > 1e-9 || math.Abs(Pink[2]-180.0/255) > 1e-9 {
		t.Errorf("unexpected pink %v", Pink)
	}
	if math.Abs(Purple[0]-147.0/255) > 1e-9 || math.Abs(Purple[1]-112.0/255) > 1e-9 || math.Abs(Purple[2]-219.0/255) > 1e-9 {
		t.Errorf("unexpected purple %v", Purple)
	}
}
