// Package fluid advances a pointer-driven 2D density/velocity field.
//
// Each [Simulator.Step] runs four stages in fixed order:
//
//   - force: Gaussian radial push and colour blend around the pointer
//   - diffuse: uniform exponential velocity damping
//   - advect: semi-Lagrangian nearest-cell transport of density, then a
//     5x5 Gaussian smoothing of the interior
//   - render: diagonal palette transform into the BGR canvas
//
// This is not an incompressible solver: there is no pressure projection.
//
// # Example
//
//	s, err := fluid.New(fluid.DefaultParams())
//	if err != nil {
//	    return err
//	}
//	for f := 0; f < frames; f++ {
//	    if err := s.Step(x, y, palette.Default()); err != nil {
//	        log.Warn("frame skipped", "err", err)
//	    }
//	}
//
// # Thread Safety
//
// A Simulator owns its [field.State] exclusively and is NOT safe for
// concurrent use. Use [Ensemble] to run independent simulators in parallel.
package fluid
