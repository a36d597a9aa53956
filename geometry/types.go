package geometry

import "errors"

// Sentinel errors for geometry operations.
var (
	// ErrDegenerate indicates a line with a zero direction or a
	// parallelogram whose edges are collinear.
	ErrDegenerate = errors.New("geometry: degenerate figure")
	// ErrParallel indicates two lines that do not meet in a single point.
	ErrParallel = errors.New("geometry: lines are parallel")
)
