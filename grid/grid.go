package grid

import (
	"fmt"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"
)

// Grid is a Width×Height rectangle of cells, stored row-major.
type Grid[T comparable] struct {
	Width, Height int
	cells         []T
}

// New returns a w×h grid filled with the zero value of T.
// Returns ErrEmptyGrid if either dimension is not positive.
func New[T comparable](w, h int) (*Grid[T], error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptyGrid, w, h)
	}
	return &Grid[T]{Width: w, Height: h, cells: make([]T, w*h)}, nil
}

// Filled returns a w×h grid with every cell set to v.
func Filled[T comparable](w, h int, v T) (*Grid[T], error) {
	g, err := New[T](w, h)
	if err != nil {
		return nil, err
	}
	for i := range g.cells {
		g.cells[i] = v
	}
	return g, nil
}

// FromRows builds a grid from rows[y][x], deep-copying the input.
// Returns ErrEmptyGrid if there are no rows or no columns,
// ErrNonRectangular if any row length differs.
func FromRows[T comparable](rows [][]T) (*Grid[T], error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	w := len(rows[0])
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	g := &Grid[T]{Width: w, Height: len(rows), cells: make([]T, 0, w*len(rows))}
	for _, row := range rows {
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

// InBounds reports whether (x,y) lies within the grid boundaries.
func (g *Grid[T]) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Contains reports whether p lies within the grid boundaries.
func (g *Grid[T]) Contains(p geometry.Point) bool {
	return g.InBounds(p.X, p.Y)
}

// Bounds returns the grid rectangle anchored at the origin.
func (g *Grid[T]) Bounds() geometry.Rect {
	return geometry.RectWH(0, 0, g.Width, g.Height)
}

// At returns the value at (x,y). It panics when out of bounds, like a
// slice index.
func (g *Grid[T]) At(x, y int) T {
	return g.cells[g.index(x, y)]
}

// Get returns the value at p. It panics when out of bounds.
func (g *Grid[T]) Get(p geometry.Point) T {
	return g.At(p.X, p.Y)
}

// Lookup returns the value at p, or ErrOutOfBounds.
func (g *Grid[T]) Lookup(p geometry.Point) (T, error) {
	if !g.Contains(p) {
		var zero T
		return zero, fmt.Errorf("%w: %v in %dx%d", ErrOutOfBounds, p, g.Width, g.Height)
	}
	return g.Get(p), nil
}

// Set stores v at p. It panics when out of bounds.
func (g *Grid[T]) Set(p geometry.Point, v T) {
	g.cells[g.index(p.X, p.Y)] = v
}

// Clone returns a deep copy of g.
func (g *Grid[T]) Clone() *Grid[T] {
	out := &Grid[T]{Width: g.Width, Height: g.Height, cells: make([]T, len(g.cells))}
	copy(out.cells, g.cells)
	return out
}

// Rows returns a fresh [][]T view of the cells.
func (g *Grid[T]) Rows() [][]T {
	rows := make([][]T, g.Height)
	for y := range rows {
		rows[y] = make([]T, g.Width)
		copy(rows[y], g.cells[y*g.Width:(y+1)*g.Width])
	}
	return rows
}

// Equal reports structural equality: same dimensions and same cells.
func Equal[T comparable](a, b *Grid[T]) bool {
	if a.Width != b.Width || a.Height != b.Height {
		return false
	}
	for i := range a.cells {
		if a.cells[i] != b.cells[i] {
			return false
		}
	}
	return true
}

// Points returns, in row-major order, every cell whose value satisfies keep.
func (g *Grid[T]) Points(keep func(T) bool) []geometry.Point {
	var pts []geometry.Point
	for i, v := range g.cells {
		if keep(v) {
			x, y := g.Coordinate(i)
			pts = append(pts, geometry.Pt(x, y))
		}
	}
	return pts
}

// Count returns the number of cells whose value satisfies keep.
func (g *Grid[T]) Count(keep func(T) bool) int {
	n := 0
	for _, v := range g.cells {
		if keep(v) {
			n++
		}
	}
	return n
}

// index maps (x,y) to a row-major index: y*Width + x.
func (g *Grid[T]) index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("grid: (%d,%d) out of bounds %dx%d", x, y, g.Width, g.Height))
	}
	return y*g.Width + x
}

// Coordinate converts a row-major index back to (x,y).
func (g *Grid[T]) Coordinate(idx int) (x, y int) {
	return idx % g.Width, idx / g.Width
}
