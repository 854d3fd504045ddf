package field

// Scalar is a width x height grid of float64 values.
type Scalar struct {
	w, h int
	data []float64
}

func NewScalar(w, h int) *Scalar {
	return &Scalar{w: w, h: h, data: make([]float64, w*h)}
}

func (s *Scalar) Width() int  { return s.w }
func (s *Scalar) Height() int { return s.h }

// Data exposes the backing slice in row-major order.
func (s *Scalar) Data() []float64 { return s.data }

func (s *Scalar) At(x, y int) float64     { return s.data[y*s.w+x] }
func (s *Scalar) Set(x, y int, v float64) { s.data[y*s.w+x] = v }
func (s *Scalar) Add(x, y int, v float64) { s.data[y*s.w+x] += v }

// Scale multiplies every cell by k.
func (s *Scalar) Scale(k float64) {
	for i := range s.data {
		s.data[i] *= k
	}
}

func (s *Scalar) Fill(v float64) {
	for i := range s.data {
		s.data[i] = v
	}
}

func (s *Scalar) Clone() *Scalar {
	c := &Scalar{w: s.w, h: s.h, data: make([]float64, len(s.data))}
	copy(c.data, s.data)
	return c
}
