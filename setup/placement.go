package setup

import (
	"slices"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
)

// Placement is one copy of the shape in the working grid.
type Placement struct {
	// Code is the dense id painted into the working grid; 1 is main.
	Code int
	// Nominal is the symmetry the caller proposed.
	Nominal symmetry.Element
	// At is the absolute center the caller proposed.
	At geometry.Point

	initial    []symmetry.Element
	potentials []symmetry.Element
	valid      map[symmetry.Element][]RelativeRule
	certain    bool
	trueSym    symmetry.Element
}

// Potentials returns the symmetries still considered for p.
func (p *Placement) Potentials() []symmetry.Element {
	return slices.Clone(p.potentials)
}

// Certain reports whether p has been resolved to one symmetry.
func (p *Placement) Certain() bool { return p.certain }

// TrueSymmetry returns the resolved symmetry; ok is false while uncertain.
func (p *Placement) TrueSymmetry() (symmetry.Element, bool) {
	return p.trueSym, p.certain
}

// ValidRules returns the rules found safe for p under e.
func (p *Placement) ValidRules(e symmetry.Element) []RelativeRule {
	return slices.Clone(p.valid[e])
}

func (p *Placement) reset() {
	p.potentials = slices.Clone(p.initial)
	p.valid = make(map[symmetry.Element][]RelativeRule, len(p.potentials))
	for _, e := range p.potentials {
		p.valid[e] = nil
	}
	p.certain = false
	p.trueSym = symmetry.Identity
	if len(p.potentials) == 1 {
		p.settle(p.potentials[0])
	}
}

func (p *Placement) settle(e symmetry.Element) {
	p.certain = true
	p.trueSym = e
}

func (p *Placement) hasPotential(e symmetry.Element) bool {
	return slices.Contains(p.potentials, e)
}
