// Package group provides brute-force scaffolding for small finite groups:
// validation of the group axioms, inverse lookup, Cayley tables and proper
// subgroup enumeration.
//
// A Group is built from an explicit element list and a binary operation.
// Nothing here is tuned for size; the groups of interest have at most a few
// dozen elements. ProperSubgroups tries every element subset whose size
// divides the group order (Lagrange's theorem) and keeps the closed ones.
//
// Two concrete sources of groups are included: D4 over symmetry.Element,
// and permutation groups over Permutation values written in one-line
// notation, e.g. the symmetries of a square acting on its corners:
//
//	g, _ := group.Permutations("1234", "2341", "3412", "4123", "2143", "4321", "3214", "1432")
//
// The tessellation engine does not depend on this package.
package group
