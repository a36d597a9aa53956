// Package lattice turns a resolved neighbor grammar into the periodic
// coordinate system of the tessellation it describes.
//
// What
//
//   - Stabilizer: the self-symmetries of the main placement that leave its
//     whole neighborhood physically unchanged. Labels that differ only by
//     such a symmetry name the same tile, so every label is reduced to the
//     smallest equivalent one (its class).
//   - Rule map: for each reachable class, the grammar transformed into that
//     class's frame.
//   - Sample points: a breadth-first walk of real centers over the rule map.
//   - Offsets and basis: per class the sample nearest the origin, then two
//     basis vectors that integrally span every centered sample. When the
//     preferred perpendicular pair does not span, a Gauss-reduced basis of
//     the generated lattice is used.
//   - Coordinates: ToVirtual and ToReal map between real centers and
//     integer basis coordinates per class, exactly.
//   - Graph: an infinite lazygraph.Graph keyed by virtual Node, expanded
//     on demand.
//
// Errors
//
//	Any step that finds the grammar is not periodic (collinear basis, a
//	class whose samples fall into different cosets, a non-integral virtual
//	coordinate) returns an *InconsistentLatticeError, which matches
//	ErrInconsistentLattice under errors.Is.
//
// A Tessellation is read-only after New and safe to share; the graphs it
// hands out are not.
package lattice
