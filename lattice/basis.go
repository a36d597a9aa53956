package lattice

import (
	"slices"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
)

// fitBasis chooses the basis from the samples centered on their class
// offsets. The preferred pair is the nearest point and the nearest point
// perpendicular to it; if that pair misses some centered sample, the
// reduced basis of the generated lattice is used instead.
func (t *Tessellation) fitBasis() error {
	var nonzero []geometry.Point
	seen := map[geometry.Point]bool{}
	for _, k := range t.classes {
		for _, p := range t.samples[k] {
			c := p.Sub(t.offsets[k])
			if !c.IsZero() && !seen[c] {
				seen[c] = true
				nonzero = append(nonzero, c)
			}
		}
	}
	slices.SortFunc(nonzero, comparePoints)
	if len(nonzero) == 0 {
		return inconsistent("no translation between samples", symmetry.Identity)
	}

	b1 := pick(nonzero, geometry.Point.Manhattan)
	perp := geometry.LineThroughOrigin(symmetry.TransformPoint(b1, symmetry.Rot90))
	on := slices.DeleteFunc(slices.Clone(nonzero), func(p geometry.Point) bool { return !perp.Contains(p) })
	if len(on) > 0 {
		b2 := pick(on, geometry.Point.Manhattan)
		if b1.Cross(b2) < 0 {
			b1, b2 = b2, b1
		}
		if cell, err := geometry.NewParallelogram(geometry.Origin, b1, b2); err == nil && spans(cell, nonzero) {
			t.cell = cell
			return nil
		}
	}

	t.opts.Logger.Debug("perpendicular basis does not span samples, reducing", "b1", b1)
	t.fallback = true
	a, b, ok := hermite(nonzero)
	if !ok {
		return inconsistent("samples are collinear", symmetry.Identity, nonzero...)
	}
	a, b = gaussReduce(a, b)
	b1, b2 := canonicalBasis(a, b)
	cell, err := geometry.NewParallelogram(geometry.Origin, b1, b2)
	if err != nil {
		return inconsistent(err.Error(), symmetry.Identity, b1, b2)
	}
	t.cell = cell
	return nil
}

func comparePoints(p, q geometry.Point) int {
	switch {
	case p.Less(q):
		return -1
	case q.Less(p):
		return 1
	}
	return 0
}

// pick returns, among the points of least measure, the one with the
// smallest polar angle after moving it into the right half-plane.
func pick(pts []geometry.Point, measure func(geometry.Point) int) geometry.Point {
	least := measure(pts[0])
	for _, p := range pts[1:] {
		least = min(least, measure(p))
	}
	var best geometry.Point
	found := false
	for _, p := range pts {
		if measure(p) != least {
			continue
		}
		c := p.RightHalf()
		if !found || geometry.AngleLess(c, best) {
			best, found = c, true
		}
	}
	return best
}

// spans reports whether every point has integer coefficients in cell.
func spans(cell geometry.Parallelogram, pts []geometry.Point) bool {
	for _, p := range pts {
		a, b := cell.Coefficients(p)
		if !a.IsInt() || !b.IsInt() {
			return false
		}
	}
	return true
}

// hermite returns a basis of the lattice generated by pts: one vector
// collecting the gcd of the x coordinates, and one on the y axis.
func hermite(pts []geometry.Point) (geometry.Point, geometry.Point, bool) {
	v := pts[0]
	g2 := 0
	for _, r := range pts[1:] {
		g, x, y := gcdExt(v.X, r.X)
		if g == 0 {
			g2 = geometry.GCD(g2, r.Y)
			continue
		}
		rest := (r.X/g)*v.Y - (v.X/g)*r.Y
		v = geometry.Pt(x*v.X+y*r.X, x*v.Y+y*r.Y)
		g2 = geometry.GCD(g2, rest)
	}
	if g2 == 0 || v.X == 0 {
		return geometry.Point{}, geometry.Point{}, false
	}
	return v, geometry.Pt(0, g2), true
}

// gcdExt returns g = gcd(a, b) with a*x + b*y == g. g may be negative.
func gcdExt(a, b int) (g, x, y int) {
	if b == 0 {
		return a, 1, 0
	}
	g, x1, y1 := gcdExt(b, a%b)
	return g, y1, x1 - (a/b)*y1
}

func norm(p geometry.Point) int { return p.Dot(p) }

// gaussReduce returns a reduced basis of the lattice spanned by a and b.
func gaussReduce(a, b geometry.Point) (geometry.Point, geometry.Point) {
	for {
		if norm(a) < norm(b) {
			a, b = b, a
		}
		nb := norm(b)
		mu := geometry.FloorDiv(2*a.Dot(b)+nb, 2*nb)
		a = a.Sub(b.Scale(mu))
		if norm(a) >= norm(b) {
			return a, b
		}
	}
}

// canonicalBasis picks the same basis for a lattice whatever reduced
// basis it is given: the shortest vector, then the shortest vector that
// completes it, both in the right half-plane and ordered by angle.
func canonicalBasis(a, b geometry.Point) (geometry.Point, geometry.Point) {
	det := a.Cross(b)
	if det < 0 {
		det = -det
	}
	var vs []geometry.Point
	for i := -2; i <= 2; i++ {
		for j := -2; j <= 2; j++ {
			if i != 0 || j != 0 {
				vs = append(vs, a.Scale(i).Add(b.Scale(j)))
			}
		}
	}
	b1 := pick(vs, norm)
	completes := slices.DeleteFunc(slices.Clone(vs), func(v geometry.Point) bool {
		c := b1.Cross(v)
		return c != det && c != -det
	})
	b2 := pick(completes, norm)
	if b1.Cross(b2) < 0 {
		b1, b2 = b2, b1
	}
	return b1, b2
}
