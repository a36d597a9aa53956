package lattice

import (
	"slices"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/lazygraph"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
)

// ToVirtual returns the basis coordinates of the tile centered at p with
// symmetry e. The label is reduced to its class first.
func (t *Tessellation) ToVirtual(p geometry.Point, e symmetry.Element) (geometry.Point, error) {
	c, k := t.Canonical(p, e)
	off, ok := t.offsets[k]
	if !ok {
		return geometry.Point{}, inconsistent("symmetry is not a class of this lattice", k, p)
	}
	a, b := t.cell.Coefficients(c.Sub(off))
	if !a.IsInt() || !b.IsInt() {
		return geometry.Point{}, inconsistent("point is not on the lattice", k, p)
	}
	return geometry.Pt(int(a.Num().Int64()), int(b.Num().Int64())), nil
}

// ToReal returns the real center of the tile with virtual coordinates v,
// read with symmetry e. The label is reduced to its class first; ok is
// false when that class is not part of the lattice.
func (t *Tessellation) ToReal(v geometry.Point, e symmetry.Element) (geometry.Point, bool) {
	_, k := t.Canonical(geometry.Origin, e)
	if _, ok := t.offsets[k]; !ok {
		return geometry.Point{}, false
	}
	c := t.center(v, k)
	return c.Sub(t.shape.CenterAfter(k)).Add(t.shape.CenterAfter(e)), true
}

// center is the real center of node (v, k) for a class k.
func (t *Tessellation) center(v geometry.Point, k symmetry.Element) geometry.Point {
	return t.cell.A.Scale(v.X).Add(t.cell.B.Scale(v.Y)).Add(t.offsets[k])
}

// VirtualNeighbors returns the displacement and class of every neighbor
// of a tile in class k, in grammar order.
func (t *Tessellation) VirtualNeighbors(k symmetry.Element) []Node {
	return slices.Clone(t.virtual[k])
}

// Neighbors returns the nodes adjacent to n.
func (t *Tessellation) Neighbors(n Node) []Node {
	vs := t.virtual[n.Sym]
	out := make([]Node, len(vs))
	for i, d := range vs {
		out[i] = Node{V: n.V.Add(d.V), Sym: d.Sym}
	}
	return out
}

// Cells returns the real cells covered by the tile n.
func (t *Tessellation) Cells(n Node) []geometry.Point {
	tl := t.center(n.V, n.Sym).Sub(t.shape.CenterAfter(n.Sym))
	cells := t.shape.CellsAfter(n.Sym)
	for i := range cells {
		cells[i] = cells[i].Add(tl)
	}
	return cells
}

// Origin is the node of the main tile.
func Origin() Node { return Node{Sym: symmetry.Identity} }

// Graph returns a new lazy graph holding only the main tile. Created
// nodes carry their real center and an unassigned color.
func (t *Tessellation) Graph() (*lazygraph.Graph[Node, Tile], error) {
	g, err := lazygraph.New(t.Neighbors, func(n Node) Tile {
		return Tile{Center: t.center(n.V, n.Sym), Color: -1}
	})
	if err != nil {
		return nil, err
	}
	g.Put(Origin(), Tile{Center: t.center(geometry.Origin, symmetry.Identity), Color: -1})
	return g, nil
}

// Expand returns a graph grown rounds times from the main tile.
func (t *Tessellation) Expand(rounds int) (*lazygraph.Graph[Node, Tile], error) {
	g, err := t.Graph()
	if err != nil {
		return nil, err
	}
	if _, err := g.Expand(Origin(), rounds); err != nil {
		return nil, err
	}
	return g, nil
}
