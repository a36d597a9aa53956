package grid

import "github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"

// Components finds all contiguous regions of cells whose value satisfies
// keep, according to conn. Components are ordered by their first cell in
// row-major order; cells inside a component are in BFS order from it.
//
// Time:   O(W·H·d), where d = 4 or 8.
// Memory: O(W·H) for visited flags and output.
func (g *Grid[T]) Components(keep func(T) bool, conn Connectivity) [][]geometry.Point {
	seen := make([]bool, len(g.cells))
	offsets := NeighborOffsets(conn)
	var comps [][]geometry.Point

	for i0, v := range g.cells {
		if seen[i0] || !keep(v) {
			continue
		}
		// BFS to collect component
		queue := []int{i0}
		seen[i0] = true
		var comp []geometry.Point

		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			ux, uy := g.Coordinate(u)
			comp = append(comp, geometry.Pt(ux, uy))
			for _, d := range offsets {
				vx, vy := ux+d[0], uy+d[1]
				if !g.InBounds(vx, vy) || !keep(g.At(vx, vy)) {
					continue
				}
				vi := g.index(vx, vy)
				if !seen[vi] {
					seen[vi] = true
					queue = append(queue, vi)
				}
			}
		}
		comps = append(comps, comp)
	}
	return comps
}
