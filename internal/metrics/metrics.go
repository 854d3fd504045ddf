// Package metrics samples summary statistics from a field state each frame.
package metrics

import (
	"fmt"
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/fluidsim/internal/field"
)

// FrameStats is one row of per-frame telemetry.
type FrameStats struct {
	Frame         int     `csv:"frame"`
	PointerX      int     `csv:"pointer_x"`
	PointerY      int     `csv:"pointer_y"`
	MeanR         float64 `csv:"mean_r"`
	MeanG         float64 `csv:"mean_g"`
	MeanB         float64 `csv:"mean_b"`
	LumaStd       float64 `csv:"luma_std"`
	KineticEnergy float64 `csv:"kinetic_energy"`
	MaxSpeed      float64 `csv:"max_speed"`
	TokenBytes    int     `csv:"token_bytes"`
}

// LogValue implements slog.LogValuer.
func (s FrameStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("frame", s.Frame),
		slog.Int("pointer_x", s.PointerX),
		slog.Int("pointer_y", s.PointerY),
		slog.Float64("mean_r", s.MeanR),
		slog.Float64("mean_g", s.MeanG),
		slog.Float64("mean_b", s.MeanB),
		slog.Float64("luma_std", s.LumaStd),
		slog.Float64("kinetic_energy", s.KineticEnergy),
		slog.Float64("max_speed", s.MaxSpeed),
		slog.Int("token_bytes", s.TokenBytes),
	)
}

// Sampler computes FrameStats, reusing its scratch slices between frames.
type Sampler struct {
	r, g, b, luma, speed2 []float64
}

func NewSampler() *Sampler { return &Sampler{} }

// Sample reads st without modifying it.
func (s *Sampler) Sample(st *field.State) FrameStats {
	d := st.Density.Data()
	n := len(d)
	s.grow(n)

	for i, c := range d {
		s.r[i], s.g[i], s.b[i] = c[0], c[1], c[2]
		s.luma[i] = 0.2126*c[0] + 0.7152*c[1] + 0.0722*c[2]
	}

	vx, vy := st.VelocityX.Data(), st.VelocityY.Data()
	for i := range vx {
		s.speed2[i] = vx[i]*vx[i] + vy[i]*vy[i]
	}

	var out FrameStats
	if n == 0 {
		return out
	}
	out.MeanR = stat.Mean(s.r, nil)
	out.MeanG = stat.Mean(s.g, nil)
	out.MeanB = stat.Mean(s.b, nil)
	if n > 1 {
		out.LumaStd = stat.StdDev(s.luma, nil)
	}
	out.KineticEnergy = 0.5 * floats.Sum(s.speed2)
	out.MaxSpeed = math.Sqrt(floats.Max(s.speed2))
	return out
}

func (s *Sampler) grow(n int) {
	if len(s.r) == n {
		return
	}
	s.r = make([]float64, n)
	s.g = make([]float64, n)
	s.b = make([]float64, n)
	s.luma = make([]float64, n)
	s.speed2 = make([]float64, n)
}

// Columns lists the numeric series exposed by Series.Column.
var Columns = []string{"mean_r", "mean_g", "mean_b", "luma_std", "kinetic_energy", "max_speed", "token_bytes"}

// Series accumulates FrameStats over a run.
type Series struct {
	Frames []FrameStats
}

func (s *Series) Observe(fs FrameStats) { s.Frames = append(s.Frames, fs) }

func (s *Series) Reset() { s.Frames = s.Frames[:0] }

// Column extracts one named series.
func (s *Series) Column(name string) ([]float64, error) {
	var get func(FrameStats) float64
	switch name {
	case "mean_r":
		get = func(f FrameStats) float64 { return f.MeanR }
	case "mean_g":
		get = func(f FrameStats) float64 { return f.MeanG }
	case "mean_b":
		get = func(f FrameStats) float64 { return f.MeanB }
	case "luma_std":
		get = func(f FrameStats) float64 { return f.LumaStd }
	case "kinetic_energy":
		get = func(f FrameStats) float64 { return f.KineticEnergy }
	case "max_speed":
		get = func(f FrameStats) float64 { return f.MaxSpeed }
	case "token_bytes":
		get = func(f FrameStats) float64 { return float64(f.TokenBytes) }
	default:
		return nil, fmt.Errorf("metrics: unknown column %q (available: %v)", name, Columns)
	}

	out := make([]float64, len(s.Frames))
	for i, f := range s.Frames {
		out[i] = get(f)
	}
	return out, nil
}

// Summary reduces the series to run-level values: the mean of every column
// plus the peak kinetic energy and speed.
func (s *Series) Summary() map[string]float64 {
	out := make(map[string]float64)
	if len(s.Frames) == 0 {
		return out
	}
	for _, name := range Columns {
		col, _ := s.Column(name)
		out[name] = stat.Mean(col, nil)
	}
	ke, _ := s.Column("kinetic_energy")
	sp, _ := s.Column("max_speed")
	out["peak_kinetic_energy"] = floats.Max(ke)
	out["peak_speed"] = floats.Max(sp)
	return out
}

// SummaryKeys returns the keys of m in sorted order.
func SummaryKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
