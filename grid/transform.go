package grid

import (
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
)

// PointAfterTransform returns where cell p of a w×h grid lands after the
// grid is transformed by e. The result indexes the transformed grid, whose
// dimensions are h×w when e.SwapsAxes().
func PointAfterTransform(p geometry.Point, e symmetry.Element, w, h int) geometry.Point {
	x, y := p.X, p.Y
	switch e {
	case symmetry.Rot90:
		return geometry.Pt(h-1-y, x)
	case symmetry.Rot180:
		return geometry.Pt(w-1-x, h-1-y)
	case symmetry.Rot270:
		return geometry.Pt(y, w-1-x)
	case symmetry.FlipX:
		return geometry.Pt(w-1-x, y)
	case symmetry.FlipY:
		return geometry.Pt(x, h-1-y)
	case symmetry.DiagTR:
		return geometry.Pt(h-1-y, w-1-x)
	case symmetry.DiagTL:
		return geometry.Pt(y, x)
	default:
		return p
	}
}

// TransformedSize returns the dimensions of a w×h grid after e.
func TransformedSize(e symmetry.Element, w, h int) (int, int) {
	if e.SwapsAxes() {
		return h, w
	}
	return w, h
}

// Transform returns a new grid holding g reindexed by e.
// Complexity: O(W×H).
func (g *Grid[T]) Transform(e symmetry.Element) *Grid[T] {
	w, h := TransformedSize(e, g.Width, g.Height)
	out := &Grid[T]{Width: w, Height: h, cells: make([]T, len(g.cells))}
	for i, v := range g.cells {
		x, y := g.Coordinate(i)
		out.Set(PointAfterTransform(geometry.Pt(x, y), e, g.Width, g.Height), v)
	}
	return out
}
