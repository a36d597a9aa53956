// Package setup resolves a hand-built cluster of shape placements into the
// neighbor grammar of a regular tessellation, or reports that the cluster
// does not describe one.
//
// What
//
//   - A Setup owns a working grid sized shape + 2·max(w,h) per axis, with
//     the main placement (code 1, identity) in the middle.
//   - AddShape proposes a neighbor by symmetry and absolute center. A
//     placement that would overlap or leave the grid is refused (false)
//     and consumes no code, so codes stay dense 1..N.
//   - Each border placement starts with every symmetry that makes the
//     shape look the same as its nominal one. Valid runs a verification
//     pass, a reduction fixpoint and a deterministic collapse until every
//     placement has one symmetry, then checks that every border cell of the
//     main shape is covered and every placement agrees with the rest.
//   - Grammar returns the resolved relative rules, one per border
//     placement, or ErrInvalidTessellation.
//
// Verification
//
//	For a border placement p and candidate symmetry s, the working grid is
//	viewed through the plane transform Inverse(s), so p appears as main
//	does. Every relative rule is then translated to p's center: a target
//	outside the plane or on an empty cell is safe, an occupied target is
//	safe only if some placement sits there with the same symmetry. p
//	"follows" s when the safe rules account for every placed code.
//
// Determinism
//
//	Placements are processed in code order and symmetries in enumeration
//	order, so repeated runs give the same grammar.
//
// A Setup is not safe for concurrent use.
package setup
