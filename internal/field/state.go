package field

// State bundles every grid of one simulation instance.
//
// Pressure is carried for layout completeness; no update rule reads it.
type State struct {
	VelocityX *Scalar
	VelocityY *Scalar
	Pressure  *Scalar
	Density   *Density
	Canvas    *Canvas
}

// NewState allocates grids of the given size with zero velocity and
// pressure and [Neutral] density. Callers validate the dimensions.
func NewState(w, h int) *State {
	s := &State{
		VelocityX: NewScalar(w, h),
		VelocityY: NewScalar(w, h),
		Pressure:  NewScalar(w, h),
		Density:   NewDensity(w, h),
		Canvas:    NewCanvas(w, h),
	}
	s.Density.Fill(Neutral)
	return s
}

func (s *State) Width() int  { return s.Density.Width() }
func (s *State) Height() int { return s.Density.Height() }

// InBounds reports whether (x, y) addresses a cell.
func (s *State) InBounds(x, y int) bool {
	return x >= 0 && x < s.Width() && y >= 0 && y < s.Height()
}
