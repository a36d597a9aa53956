package geometry

import (
	"fmt"
	"math"
)

// Point is an immutable integer pair. It is used both as a position in the
// plane and as a displacement between two positions.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Origin is the zero point.
var Origin = Point{}

// String implements fmt.Stringer.
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns p+q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p-q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Neg returns -p.
func (p Point) Neg() Point {
	return Point{X: -p.X, Y: -p.Y}
}

// Scale returns k*p.
func (p Point) Scale(k int) Point {
	return Point{X: k * p.X, Y: k * p.Y}
}

// IsZero reports whether p is the origin.
func (p Point) IsZero() bool {
	return p.X == 0 && p.Y == 0
}

// Manhattan returns |x|+|y|.
func (p Point) Manhattan() int {
	return abs(p.X) + abs(p.Y)
}

// Dot returns the scalar product of p and q.
func (p Point) Dot(q Point) int {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the z component of p×q. It is zero exactly when p and q
// are collinear with the origin.
func (p Point) Cross(q Point) int {
	return p.X*q.Y - p.Y*q.X
}

// Angle returns the polar angle of p in radians, measured from +X.
// With Y growing downward a positive angle turns clockwise on screen.
func (p Point) Angle() float64 {
	return math.Atan2(float64(p.Y), float64(p.X))
}

// RightHalf maps p into the right half-plane: points with x>0, plus the
// half-axis x==0, y<0. Points already there are returned unchanged, all
// others are negated. The origin maps to itself.
func (p Point) RightHalf() Point {
	if p.X > 0 || (p.X == 0 && p.Y < 0) {
		return p
	}
	return p.Neg()
}

// Less orders points by y, then x (row-major scan order).
func (p Point) Less(q Point) bool {
	if p.Y != q.Y {
		return p.Y < q.Y
	}
	return p.X < q.X
}

// AngleLess reports whether p has a smaller polar angle than q, for two
// points of the right half-plane. It compares cross products only.
func AngleLess(p, q Point) bool {
	return p.Cross(q) > 0
}

// Nearest returns the point of pts with the smallest Manhattan distance
// from the origin, ties broken by Less. ok is false for an empty slice.
func Nearest(pts []Point) (best Point, ok bool) {
	for _, p := range pts {
		if !ok || p.Manhattan() < best.Manhattan() ||
			(p.Manhattan() == best.Manhattan() && p.Less(best)) {
			best, ok = p, true
		}
	}
	return best, ok
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// GCD returns the non-negative greatest common divisor of a and b.
func GCD(a, b int) int {
	a, b = abs(a), abs(b)
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// FloorDiv returns floor(a/b) for b != 0.
func FloorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
