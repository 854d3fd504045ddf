// Package field holds the grids a fluid simulation mutates every frame.
//
// All grids of a [State] share one width and height fixed at construction.
// Storage is row-major: cell (x, y) lives at index y*width + x.
//
//   - [Scalar]: one float per cell (velocity components, pressure)
//   - [Density]: an RGB triple per cell, carrying both mass and colour
//   - [Canvas]: 8-bit BGR pixels produced by rasterization
package field
