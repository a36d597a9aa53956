// Package symmetry implements D4, the eight symmetries of the square, as a
// closed set of constants.
//
// Elements compose with Apply, which reads "a, then b":
//
//	TransformPoint(TransformPoint(p, a), b) == TransformPoint(p, Apply(a, b))
//
// The composition table is fixed and derived from the point actions, so
// every consumer (grid reindexing, rule transforms, lattice rule maps)
// agrees on one convention.
//
// Point actions, with Y growing downward:
//
//	Identity (x, y)    Rot90  (-y, x)   Rot180 (-x, -y)   Rot270 (y, -x)
//	FlipX    (-x, y)   FlipY  (x, -y)   DiagTR (-y, -x)   DiagTL (y, x)
package symmetry
