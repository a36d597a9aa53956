package geometry

import (
	"fmt"
	"math/big"
)

// RatPoint is a point with exact rational coordinates.
type RatPoint struct {
	X, Y *big.Rat
}

// String implements fmt.Stringer.
func (r RatPoint) String() string {
	return fmt.Sprintf("(%s,%s)", r.X.RatString(), r.Y.RatString())
}

// Integral reports whether both coordinates are integers and returns them.
func (r RatPoint) Integral() (Point, bool) {
	if !r.X.IsInt() || !r.Y.IsInt() {
		return Point{}, false
	}
	return Point{X: int(r.X.Num().Int64()), Y: int(r.Y.Num().Int64())}, true
}

// Line is the infinite line through Through with direction Dir.
type Line struct {
	Through Point
	Dir     Point
}

// NewLine returns the line through a and b.
// Returns ErrDegenerate when a == b.
func NewLine(a, b Point) (Line, error) {
	if a == b {
		return Line{}, fmt.Errorf("%w: line through %v twice", ErrDegenerate, a)
	}
	return Line{Through: a, Dir: b.Sub(a)}, nil
}

// LineThroughOrigin returns the line through the origin along dir.
func LineThroughOrigin(dir Point) Line {
	return Line{Dir: dir}
}

// Contains reports whether p lies exactly on l.
func (l Line) Contains(p Point) bool {
	if l.Dir.IsZero() {
		return p == l.Through
	}
	return p.Sub(l.Through).Cross(l.Dir) == 0
}

// Intersect returns the single point where l and m meet.
// Returns ErrParallel for parallel or coincident lines and ErrDegenerate
// when either direction is zero.
func (l Line) Intersect(m Line) (RatPoint, error) {
	if l.Dir.IsZero() || m.Dir.IsZero() {
		return RatPoint{}, ErrDegenerate
	}
	den := l.Dir.Cross(m.Dir)
	if den == 0 {
		return RatPoint{}, ErrParallel
	}
	// l.Through + t*l.Dir == m.Through + u*m.Dir
	t := big.NewRat(int64(m.Through.Sub(l.Through).Cross(m.Dir)), int64(den))
	x := new(big.Rat).Mul(t, big.NewRat(int64(l.Dir.X), 1))
	x.Add(x, big.NewRat(int64(l.Through.X), 1))
	y := new(big.Rat).Mul(t, big.NewRat(int64(l.Dir.Y), 1))
	y.Add(y, big.NewRat(int64(l.Through.Y), 1))
	return RatPoint{X: x, Y: y}, nil
}
