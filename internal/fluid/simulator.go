package fluid

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/san-kum/fluidsim/internal/field"
	"github.com/san-kum/fluidsim/internal/palette"
)

type Simulator struct {
	params Params
	state  *field.State
	next   *field.Density
	blur   *field.Blur
	logger *slog.Logger
	frame  int
}

type Option func(*Simulator)

// WithLogger routes simulator diagnostics to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulator) {
		if l != nil {
			s.logger = l
		}
	}
}

// New allocates the field state for p. Velocity and pressure start at zero
// and every density cell at field.Neutral.
func New(p Params, opts ...Option) (*Simulator, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrConstruction, p.Width, p.Height)
	}

	s := &Simulator{
		params: p,
		state:  field.NewState(p.Width, p.Height),
		next:   field.NewDensity(p.Width, p.Height),
		blur:   field.NewBlur(BlurSize, BlurSigma),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Simulator) Params() Params        { return s.params }
func (s *Simulator) State() *field.State   { return s.state }
func (s *Simulator) Canvas() *field.Canvas { return s.state.Canvas }

// Frame returns the number of completed steps.
func (s *Simulator) Frame() int { return s.frame }

// Step advances the field by Dt with the pointer at (px, py) and rasterizes
// it with pal. A palette with fewer than three tints is rejected before
// any state changes. A render failure is logged and returned; the field has
// still advanced and the previous canvas is kept.
func (s *Simulator) Step(px, py int, pal palette.Palette) error {
	if err := pal.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrPalette, err)
	}

	s.ApplyForce(px, py)
	s.Diffuse(Dt)
	s.Advect(Dt)
	s.frame++

	return s.Render(pal)
}

// ApplyForce pushes fluid radially away from the pointer and blends the
// pink/purple reference colours into density, both weighted by a Gaussian
// falloff that vanishes at ForceRadius.
func (s *Simulator) ApplyForce(px, py int) {
	const r = ForceRadius
	const r2 = float64(r * r)

	st := s.state
	w, h := st.Width(), st.Height()
	x0, x1 := max(px-r, 0), min(px+r, w)
	y0, y1 := max(py-r, 0), min(py+r, h)

	for y := y0; y < y1; y++ {
		dy := float64(y - py)
		for x := x0; x < x1; x++ {
			dx := float64(x - px)
			d2 := dx*dx + dy*dy
			if d2 >= r2 {
				continue
			}

			f := math.Exp(-d2/r2) * SpeedFactor

			st.VelocityX.Add(x, y, s.params.ForceStrength*f*dx/r)
			st.VelocityY.Add(x, y, s.params.ForceStrength*f*dy/r)

			mix := (dx + r) / (2 * r)
			target := palette.Pink.Lerp(palette.Purple, mix)
			st.Density.Set(x, y, st.Density.At(x, y).Lerp(target, f))
		}
	}
}

// Diffuse damps both velocity components by (1 - viscosity*dt).
func (s *Simulator) Diffuse(dt float64) {
	k := 1 - s.params.Viscosity*dt
	s.state.VelocityX.Scale(k)
	s.state.VelocityY.Scale(k)
}

// Advect moves density along the velocity field. Each interior cell copies
// the density of the nearest cell to its backward-traced position, clamped
// into the grid before rounding; the result is then smoothed. Border cells
// keep their density.
func (s *Simulator) Advect(dt float64) {
	st := s.state
	w, h := st.Width(), st.Height()

	s.next.CopyFrom(st.Density)

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			sx := sourceIndex(float64(x)-st.VelocityX.At(x, y)*dt, w, x)
			sy := sourceIndex(float64(y)-st.VelocityY.At(x, y)*dt, h, y)
			s.next.Set(x, y, st.Density.At(sx, sy))
		}
	}

	s.blur.Interior(st.Density, s.next)
}

// sourceIndex clamps pos into [0, n-1] and rounds half to even. A NaN
// position falls back to the destination cell.
func sourceIndex(pos float64, n, fallback int) int {
	if math.IsNaN(pos) {
		return fallback
	}
	pos = math.Max(0, math.Min(float64(n-1), pos))
	return int(math.RoundToEven(pos))
}

// Render writes density into the canvas through the palette's diagonal
// gains, saturating to 8 bits and storing pixels in BGR order.
func (s *Simulator) Render(pal palette.Palette) error {
	if err := pal.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrPalette, err)
	}

	d, c := s.state.Density, s.state.Canvas
	if !d.Shaped() || d.Width() != c.Width() || d.Height() != c.Height() {
		err := &RasterError{Width: c.Width(), Height: c.Height()}
		if d != nil {
			err.Cells = len(d.Data())
		}
		s.logger.Error("render skipped", "err", err, "frame", s.frame)
		return err
	}

	gain := pal.Diagonal()
	w := d.Width()
	for i, v := range d.Data() {
		r := toByte(v[0] * gain[0])
		g := toByte(v[1] * gain[1])
		b := toByte(v[2] * gain[2])
		c.SetBGR(i%w, i/w, b, g, r)
	}
	return nil
}

// toByte saturates v into [0, 255] and truncates the fraction.
func toByte(v float64) uint8 {
	if !(v > 0) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
