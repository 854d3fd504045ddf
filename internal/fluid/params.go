package fluid

const (
	DefaultWidth         = 512
	DefaultHeight        = 512
	DefaultViscosity     = 0.1
	DefaultForceStrength = 50.0

	// Dt is the fixed step, independent of how often Step is called.
	Dt = 1.0 / 60.0

	// ForceRadius bounds the pointer's area of influence.
	ForceRadius = 50
	// SpeedFactor amplifies the Gaussian falloff.
	SpeedFactor = 2.5

	// Smoothing kernel applied after advection.
	BlurSize  = 5
	BlurSigma = 1.5
)

type Params struct {
	Width         int
	Height        int
	Viscosity     float64
	ForceStrength float64
}

func DefaultParams() Params {
	return Params{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		Viscosity:     DefaultViscosity,
		ForceStrength: DefaultForceStrength,
	}
}
