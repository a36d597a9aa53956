// Package lazygraph provides an infinite graph that is materialized on demand.
//
// What
//
//   - Nodes are stored in a map keyed by any comparable key, each carrying a value.
//   - Edges are never stored: a NeighborFunc computes the neighbor keys of a key.
//     Only neighbors that are already materialized take part in traversal.
//   - CreateNeighbors materializes the missing neighbors of one node using a
//     Fill function for their values; Expand repeats that over every reachable
//     node for a number of rounds.
//   - Traverse is a breadth-first search over materialized nodes with hooks
//     OnVisit (may abort with an error) and a MaxDepth limit.
//
// Determinism
//
//	Keys() reports nodes in insertion order and Traverse enqueues neighbors in
//	the order the NeighborFunc returns them, so visit order is reproducible.
//
// Visited marks live in the walker of a single Traverse call. The graph holds
// no traversal state, so sequential traversals never see each other's marks.
// A Graph is not safe for concurrent use.
//
// Usage
//
//	g, err := lazygraph.New(neighbors, fill)
//	g.Put(start, value)
//	created, err := g.Expand(start, 3)
//	res, err := g.Traverse(start, lazygraph.WithMaxDepth[Key](2))
package lazygraph
