package pipeline

import (
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/setup"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
)

// ClassOffset is the offset of one lattice class inside the fundamental
// domain, with its virtual neighbors.
type ClassOffset struct {
	Symmetry  symmetry.Element `json:"symmetry"`
	Offset    geometry.Point   `json:"offset"`
	Neighbors []string         `json:"neighbors"`
}

// Summary is the serializable description of a resolved tessellation.
type Summary struct {
	Name        string             `json:"name"`
	Description string             `json:"description,omitempty"`
	Shape       []string           `json:"shape"`
	Grammar     setup.Grammar      `json:"grammar"`
	Stabilizer  []symmetry.Element `json:"stabilizer"`
	Basis       [2]geometry.Point  `json:"basis"`
	Det         int                `json:"det"`
	Reduced     bool               `json:"reduced"`
	Classes     []ClassOffset      `json:"classes"`
}

// Summarize extracts the Summary of r.
func Summarize(r *Result) Summary {
	t := r.Lattice
	b1, b2 := t.Basis()
	s := Summary{
		Name:        r.Definition.Name,
		Description: r.Definition.Description,
		Shape:       r.Definition.Shape,
		Grammar:     r.Grammar,
		Stabilizer:  t.Stabilizer(),
		Basis:       [2]geometry.Point{b1, b2},
		Det:         t.Det(),
		Reduced:     t.Reduced(),
	}
	for _, k := range t.Classes() {
		off, _ := t.Offset(k)
		c := ClassOffset{Symmetry: k, Offset: off}
		for _, n := range t.VirtualNeighbors(k) {
			c.Neighbors = append(c.Neighbors, n.String())
		}
		s.Classes = append(s.Classes, c)
	}
	return s
}
