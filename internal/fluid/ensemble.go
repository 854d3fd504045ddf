package fluid

import (
	"context"
	"sync"

	"github.com/san-kum/fluidsim/internal/palette"
	"github.com/san-kum/fluidsim/internal/pointer"
)

// Member is one independent scenario of an Ensemble.
type Member struct {
	Name    string
	Sim     *Simulator
	Path    pointer.Path
	Palette palette.Palette
}

// FrameFunc observes a member after each step. It runs on the member's
// goroutine and must be safe for concurrent use across members. Returning
// an error stops that member.
type FrameFunc func(idx int, m *Member) error

type Ensemble struct {
	members []*Member
}

func NewEnsemble(members ...*Member) *Ensemble {
	return &Ensemble{members: members}
}

func (e *Ensemble) Members() []*Member { return e.members }

// Run steps every member for frames steps, one goroutine per member. It
// returns the first member error, or ctx.Err() if the context ends first.
func (e *Ensemble) Run(ctx context.Context, frames int, observe FrameFunc) error {
	errs := make([]error, len(e.members))

	var wg sync.WaitGroup
	for i, m := range e.members {
		wg.Add(1)
		go func(idx int, m *Member) {
			defer wg.Done()
			errs[idx] = m.run(ctx, idx, frames, observe)
		}(i, m)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (m *Member) run(ctx context.Context, idx, frames int, observe FrameFunc) error {
	for f := 0; f < frames; f++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		x, y := m.Path.At(f)
		if err := m.Sim.Step(x, y, m.Palette); err != nil {
			return err
		}
		if observe != nil {
			if err := observe(idx, m); err != nil {
				return err
			}
		}
	}
	return nil
}
