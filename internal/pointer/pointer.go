// Package pointer produces per-frame pointer positions for runs that have
// no live input device.
package pointer

import (
	"errors"
	"fmt"
	"math"
)

var ErrUnknownPath = errors.New("pointer: unknown path")

// Far is a coordinate no grid cell lies within the force radius of.
const Far = -1 << 20

// Path maps a frame index to a pointer position in pixel space.
type Path interface {
	At(frame int) (x, y int)
}

// Fixed holds the pointer still.
type Fixed struct {
	X, Y int
}

func (f Fixed) At(int) (int, int) { return f.X, f.Y }

// Off parks the pointer far outside any grid.
type Off struct{}

func (Off) At(int) (int, int) { return Far, Far }

// Circle orbits (CX, CY) at Radius, advancing Speed radians per frame.
type Circle struct {
	CX, CY, Radius, Speed float64
}

func (c Circle) At(frame int) (int, int) {
	a := c.Speed * float64(frame)
	return round(c.CX + c.Radius*math.Cos(a)), round(c.CY + c.Radius*math.Sin(a))
}

// Lissajous traces a 3:2 figure inside a box of half-size Radius.
type Lissajous struct {
	CX, CY, Radius, Speed float64
}

func (l Lissajous) At(frame int) (int, int) {
	a := l.Speed * float64(frame)
	return round(l.CX + l.Radius*math.Sin(3*a+math.Pi/2)), round(l.CY + l.Radius*math.Sin(2*a))
}

// Line sweeps back and forth horizontally through (CX, CY), covering
// 2*Radius pixels. Speed is in pixels per frame.
type Line struct {
	CX, CY, Radius, Speed float64
}

func (l Line) At(frame int) (int, int) {
	span := 2 * l.Radius
	if span <= 0 || l.Speed == 0 {
		return round(l.CX), round(l.CY)
	}
	d := math.Mod(math.Abs(l.Speed)*float64(frame), 2*span)
	if d > span {
		d = 2*span - d
	}
	return round(l.CX - l.Radius + d), round(l.CY)
}

// Kinds lists the names accepted by New.
var Kinds = []string{"fixed", "circle", "lissajous", "line", "off"}

// New builds a path by name.
func New(kind string, cx, cy, radius, speed float64) (Path, error) {
	switch kind {
	case "fixed":
		return Fixed{X: round(cx), Y: round(cy)}, nil
	case "circle", "":
		return Circle{CX: cx, CY: cy, Radius: radius, Speed: speed}, nil
	case "lissajous":
		return Lissajous{CX: cx, CY: cy, Radius: radius, Speed: speed}, nil
	case "line":
		return Line{CX: cx, CY: cy, Radius: radius, Speed: speed}, nil
	case "off":
		return Off{}, nil
	}
	return nil, fmt.Errorf("%w: %q (available: %v)", ErrUnknownPath, kind, Kinds)
}

func round(v float64) int { return int(math.Round(v)) }
