package geometry

import (
	"fmt"
	"math/big"
)

// Rect is the half-open axis-aligned rectangle [Min.X, Max.X) × [Min.Y, Max.Y).
type Rect struct {
	Min, Max Point
}

// RectWH returns the rectangle with top-left (x,y), width w and height h.
func RectWH(x, y, w, h int) Rect {
	return Rect{Min: Pt(x, y), Max: Pt(x+w, y+h)}
}

// Dx returns the width of r.
func (r Rect) Dx() int { return r.Max.X - r.Min.X }

// Dy returns the height of r.
func (r Rect) Dy() int { return r.Max.Y - r.Min.Y }

// Empty reports whether r contains no points.
func (r Rect) Empty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Contains reports whether p lies in r.
func (r Rect) Contains(p Point) bool {
	return r.Min.X <= p.X && p.X < r.Max.X && r.Min.Y <= p.Y && p.Y < r.Max.Y
}

// Translate returns r shifted by d.
func (r Rect) Translate(d Point) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}

// Intersect returns the largest rectangle contained in both r and s.
// The result may be Empty.
func (r Rect) Intersect(s Rect) Rect {
	out := Rect{
		Min: Pt(max(r.Min.X, s.Min.X), max(r.Min.Y, s.Min.Y)),
		Max: Pt(min(r.Max.X, s.Max.X), min(r.Max.Y, s.Max.Y)),
	}
	if out.Empty() {
		return Rect{}
	}
	return out
}

// Parallelogram is the half-open region {Origin + a*A + b*B : 0 <= a,b < 1}.
// With integer edges it is a fundamental domain of the lattice spanned by A
// and B.
type Parallelogram struct {
	Origin Point
	A, B   Point
}

// NewParallelogram returns the parallelogram spanned by a and b at origin.
// Returns ErrDegenerate when a and b are collinear.
func NewParallelogram(origin, a, b Point) (Parallelogram, error) {
	if a.Cross(b) == 0 {
		return Parallelogram{}, fmt.Errorf("%w: edges %v and %v are collinear", ErrDegenerate, a, b)
	}
	return Parallelogram{Origin: origin, A: a, B: b}, nil
}

// Det returns A×B, the signed area.
func (pg Parallelogram) Det() int {
	return pg.A.Cross(pg.B)
}

// Coefficients returns the exact (a, b) with p = Origin + a*A + b*B.
func (pg Parallelogram) Coefficients(p Point) (a, b *big.Rat) {
	d := int64(pg.Det())
	q := p.Sub(pg.Origin)
	a = big.NewRat(int64(q.Cross(pg.B)), d)
	b = big.NewRat(int64(pg.A.Cross(q)), d)
	return a, b
}

// Contains reports whether p lies in the half-open parallelogram.
func (pg Parallelogram) Contains(p Point) bool {
	a, b := pg.Coefficients(p)
	one := big.NewRat(1, 1)
	return a.Sign() >= 0 && a.Cmp(one) < 0 && b.Sign() >= 0 && b.Cmp(one) < 0
}

// Reduce translates p by integer multiples of A and B into the
// parallelogram and returns the image together with the multiples removed.
func (pg Parallelogram) Reduce(p Point) (Point, Point) {
	d := pg.Det()
	q := p.Sub(pg.Origin)
	ka := FloorDiv(q.Cross(pg.B), d)
	kb := FloorDiv(pg.A.Cross(q), d)
	return p.Sub(pg.A.Scale(ka)).Sub(pg.B.Scale(kb)), Pt(ka, kb)
}

// Corners returns the four corners in order Origin, +A, +A+B, +B.
func (pg Parallelogram) Corners() [4]Point {
	return [4]Point{pg.Origin, pg.Origin.Add(pg.A), pg.Origin.Add(pg.A).Add(pg.B), pg.Origin.Add(pg.B)}
}

// Bounds returns the smallest Rect covering the corners of pg.
func (pg Parallelogram) Bounds() Rect {
	cs := pg.Corners()
	r := Rect{Min: cs[0], Max: cs[0]}
	for _, c := range cs[1:] {
		r.Min = Pt(min(r.Min.X, c.X), min(r.Min.Y, c.Y))
		r.Max = Pt(max(r.Max.X, c.X), max(r.Max.Y, c.Y))
	}
	r.Max = r.Max.Add(Pt(1, 1))
	return r
}
