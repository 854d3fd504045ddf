package fluid

import (
	"errors"
	"fmt"
)

var (
	// ErrConstruction indicates non-positive grid dimensions.
	ErrConstruction = errors.New("fluid: invalid dimensions")

	// ErrPalette indicates fewer than three palette tints.
	ErrPalette = errors.New("fluid: palette needs 3 colours")

	// ErrRasterPrecondition indicates density was missing or misshapen at
	// render time; the canvas is left unchanged.
	ErrRasterPrecondition = errors.New("fluid: density not renderable")
)

// RasterError wraps ErrRasterPrecondition with the shape that failed.
type RasterError struct {
	Width, Height int
	Cells         int
}

func (e *RasterError) Error() string {
	return fmt.Sprintf("%v: %dx%d grid with %d cells", ErrRasterPrecondition, e.Width, e.Height, e.Cells)
}

func (e *RasterError) Unwrap() error { return ErrRasterPrecondition }
