// Package geometry provides the integer plane primitives shared by the
// tessellation packages: points used both as positions and displacements,
// lines through lattice points, axis-aligned rectangles and parallelograms.
//
// All predicates are exact. Containment and intersection tests work on
// integer cross products or on math/big rationals, never on float
// tolerances, so a point either lies on a line or it does not.
//
// Coordinates follow screen convention: X grows to the right and Y grows
// downward.
package geometry
