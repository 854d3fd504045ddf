// Package viz is the terminal consumer of the frame pipeline.
//
// It never reads simulator grids directly: every frame it receives the
// base64 PNG token, decodes it back into an image and draws that image with
// half-block characters, two pixel rows per terminal row.
//
//   - [Live]: interactive bubbletea session driven by the mouse
//   - [HalfBlock]: render any image to a fixed character grid
package viz
