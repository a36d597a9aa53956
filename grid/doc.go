// Package grid provides a generic rectangular grid of comparable values and
// the eight D4 reindexing operations on it.
//
// A Grid[T] stores Width×Height cells in row-major order. Transform returns
// a new grid; width and height are exchanged by the quarter turns and the
// diagonal flips. PointAfterTransform gives, for a cell of a w×h grid, the
// cell it lands on after a transform, and is the single source of truth
// for both Transform and the callers that track individual cells:
//
//	g2 := g.Transform(symmetry.Rot90)
//	g2.Get(grid.PointAfterTransform(p, symmetry.Rot90, g.Width, g.Height)) == g.Get(p)
//
// Components finds 4- or 8-connected regions of cells matching a
// predicate, and Print / PrintColored write a grid to a terminal.
package grid
