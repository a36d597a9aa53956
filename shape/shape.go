// Package shape models a polyomino: a single 4-connected set of occupied
// cells of a boolean bitmap, with a designated center cell.
package shape

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/grid"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
)

// ErrInvalidShape is returned when the occupied cells are empty or split
// into more than one 4-connected component.
var ErrInvalidShape = errors.New("shape: occupied cells must form one 4-connected component")

// Shape is immutable after construction and safe to share.
type Shape struct {
	bitmap  *grid.Grid[bool]
	cells   []geometry.Point
	bitmaps [symmetry.Order]*grid.Grid[bool]

	borderOnce sync.Once
	border     []geometry.Point
}

func occupied(b bool) bool { return b }

// New builds a Shape from a bitmap. The bitmap is copied.
// Returns ErrInvalidShape if no cell is set or the set cells are not
// 4-connected.
func New(bitmap *grid.Grid[bool]) (*Shape, error) {
	if bitmap == nil {
		return nil, fmt.Errorf("%w: nil bitmap", ErrInvalidShape)
	}
	comps := bitmap.Components(occupied, grid.Conn4)
	if len(comps) != 1 {
		return nil, fmt.Errorf("%w: found %d components", ErrInvalidShape, len(comps))
	}
	s := &Shape{bitmap: bitmap.Clone()}
	s.cells = s.bitmap.Points(occupied)
	for _, e := range symmetry.All() {
		s.bitmaps[e] = s.bitmap.Transform(e)
	}
	return s, nil
}

// Parse builds a Shape from text rows where '#' marks an occupied cell and
// any other rune an empty one. Short rows are padded with empty cells.
func Parse(rows ...string) (*Shape, error) {
	w := 0
	for _, r := range rows {
		w = max(w, len([]rune(r)))
	}
	cells := make([][]bool, len(rows))
	for y, r := range rows {
		cells[y] = make([]bool, w)
		for x, c := range []rune(r) {
			cells[y][x] = c == '#'
		}
	}
	g, err := grid.FromRows(cells)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}
	return New(g)
}

// MustParse is like Parse but panics on error. Intended for fixtures.
func MustParse(rows ...string) *Shape {
	s, err := Parse(rows...)
	if err != nil {
		panic(err)
	}
	return s
}

// Width returns the bitmap width.
func (s *Shape) Width() int { return s.bitmap.Width }

// Height returns the bitmap height.
func (s *Shape) Height() int { return s.bitmap.Height }

// Size returns the number of occupied cells.
func (s *Shape) Size() int { return len(s.cells) }

// Cells returns the occupied cells in row-major order.
func (s *Shape) Cells() []geometry.Point {
	return append([]geometry.Point(nil), s.cells...)
}

// Center returns the designated center: the first occupied cell in
// row-major order.
func (s *Shape) Center() geometry.Point {
	return s.cells[0]
}

// Bitmap returns a copy of the bitmap transformed by e.
func (s *Shape) Bitmap(e symmetry.Element) *grid.Grid[bool] {
	return s.bitmaps[e].Clone()
}

// bitmapRef returns the cached transformed bitmap without copying.
func (s *Shape) bitmapRef(e symmetry.Element) *grid.Grid[bool] {
	return s.bitmaps[e]
}

// CellsAfter returns the occupied cells of the bitmap transformed by e, in
// row-major order of the transformed bitmap.
func (s *Shape) CellsAfter(e symmetry.Element) []geometry.Point {
	return s.bitmapRef(e).Points(occupied)
}

// CenterAfter returns the cell the center occupies in the bitmap
// transformed by e.
func (s *Shape) CenterAfter(e symmetry.Element) geometry.Point {
	return grid.PointAfterTransform(s.Center(), e, s.Width(), s.Height())
}

// BorderCells returns the cells 4-adjacent to the shape but not part of
// it, in bitmap coordinates (so some may be negative). Computed once.
func (s *Shape) BorderCells() []geometry.Point {
	s.borderOnce.Do(func() {
		seen := make(map[geometry.Point]bool, len(s.cells))
		for _, c := range s.cells {
			seen[c] = true
		}
		for _, c := range s.cells {
			for _, d := range grid.NeighborOffsets(grid.Conn4) {
				n := c.Add(geometry.Pt(d[0], d[1]))
				if seen[n] {
					continue
				}
				seen[n] = true
				s.border = append(s.border, n)
			}
		}
	})
	return append([]geometry.Point(nil), s.border...)
}

// SelfSymmetries returns, in enumeration order, every element e for which
// the bitmap transformed by e equals the bitmap transformed by ref.
// The result always contains ref and is a coset of the stabilizer.
func (s *Shape) SelfSymmetries(ref symmetry.Element) []symmetry.Element {
	target := s.bitmapRef(ref)
	var out []symmetry.Element
	for _, e := range symmetry.All() {
		if grid.Equal(s.bitmapRef(e), target) {
			out = append(out, e)
		}
	}
	return out
}

// LooksLike reports whether a and b render the same bitmap.
func (s *Shape) LooksLike(a, b symmetry.Element) bool {
	return grid.Equal(s.bitmapRef(a), s.bitmapRef(b))
}

// String renders the bitmap with '#' and '.'.
func (s *Shape) String() string {
	var b strings.Builder
	_ = s.bitmap.Print(&b, func(v bool) string {
		if v {
			return "#"
		}
		return "."
	})
	return b.String()
}
