package lattice

import (
	"maps"
	"slices"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/lazygraph"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/setup"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/shape"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
)

// Tessellation is the periodic structure derived from a grammar.
type Tessellation struct {
	shape   *shape.Shape
	grammar setup.Grammar
	opts    Options

	stabilizer []symmetry.Element
	classes    []symmetry.Element
	rules      map[symmetry.Element][]setup.RelativeRule
	samples    map[symmetry.Element][]geometry.Point
	offsets    map[symmetry.Element]geometry.Point
	cell       geometry.Parallelogram
	fallback   bool
	virtual    map[symmetry.Element][]Node
}

// sample is a tile in real coordinates, used while sampling.
type sample struct {
	p geometry.Point
	s symmetry.Element
}

// New derives the lattice of the tessellation of s described by g.
// Returns ErrEmptyGrammar, ErrOptionViolation or an
// *InconsistentLatticeError.
func New(s *shape.Shape, g setup.Grammar, opts ...Option) (*Tessellation, error) {
	if s == nil || len(g) == 0 {
		return nil, ErrEmptyGrammar
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	t := &Tessellation{shape: s, grammar: slices.Clone(g), opts: o}
	t.stabilizer = t.findStabilizer()
	t.buildRules()
	o.Logger.Debug("lattice classes", "stabilizer", t.stabilizer, "classes", t.classes)

	if err := t.sampleTiles(); err != nil {
		return nil, err
	}
	if err := t.fitBasis(); err != nil {
		return nil, err
	}
	if err := t.refineOffsets(); err != nil {
		return nil, err
	}
	if err := t.buildVirtual(); err != nil {
		return nil, err
	}
	o.Logger.Debug("lattice ready", "basis", []geometry.Point{t.cell.A, t.cell.B},
		"det", t.cell.Det(), "fallback", t.fallback, "offsets", t.offsets)
	return t, nil
}

// physical is what an outside observer sees of a tile: where its bitmap
// starts and which bitmap it is.
type physical struct {
	topLeft geometry.Point
	look    symmetry.Element
}

func (t *Tessellation) look(e symmetry.Element) symmetry.Element {
	return t.shape.SelfSymmetries(e)[0]
}

// neighborhood is the grammar as seen when the main tile is read with h.
func (t *Tessellation) neighborhood(h symmetry.Element) map[physical]bool {
	base := t.shape.CenterAfter(h).Sub(t.shape.CenterAfter(symmetry.Identity))
	out := make(map[physical]bool, len(t.grammar))
	for _, r := range t.grammar {
		e := symmetry.Apply(r.Sym, h)
		c := base.Add(symmetry.TransformPoint(r.Point, h))
		out[physical{topLeft: c.Sub(t.shape.CenterAfter(e)), look: t.look(e)}] = true
	}
	return out
}

func (t *Tessellation) findStabilizer() []symmetry.Element {
	ref := t.neighborhood(symmetry.Identity)
	var out []symmetry.Element
	for _, h := range t.shape.SelfSymmetries(symmetry.Identity) {
		if maps.Equal(t.neighborhood(h), ref) {
			out = append(out, h)
		}
	}
	return out
}

// Canonical returns the class label of a tile centered at c with
// symmetry e, and the center re-read under that label.
func (t *Tessellation) Canonical(c geometry.Point, e symmetry.Element) (geometry.Point, symmetry.Element) {
	k := symmetry.Apply(t.stabilizer[0], e)
	for _, h := range t.stabilizer[1:] {
		k = min(k, symmetry.Apply(h, e))
	}
	return c.Sub(t.shape.CenterAfter(e)).Add(t.shape.CenterAfter(k)), k
}

// buildRules closes the rule map over the classes reachable from
// Identity, in discovery order.
func (t *Tessellation) buildRules() {
	t.rules = make(map[symmetry.Element][]setup.RelativeRule)
	queue := []symmetry.Element{symmetry.Identity}
	seen := map[symmetry.Element]bool{symmetry.Identity: true}
	for len(queue) > 0 {
		k := queue[0]
		queue = queue[1:]
		t.classes = append(t.classes, k)
		rs := make([]setup.RelativeRule, 0, len(t.grammar))
		for _, r := range t.grammar {
			c, e := t.Canonical(symmetry.TransformPoint(r.Point, k), symmetry.Apply(r.Sym, k))
			rs = append(rs, setup.RelativeRule{Code: r.Code, Sym: e, Point: c})
			if !seen[e] {
				seen[e] = true
				queue = append(queue, e)
			}
		}
		t.rules[k] = rs
	}
}

// sampleTiles walks real tile positions until the walk is at least
// SampleDepth deep and every class has been reached.
func (t *Tessellation) sampleTiles() error {
	g, err := lazygraph.New(
		func(n sample) []sample {
			rs := t.rules[n.s]
			out := make([]sample, len(rs))
			for i, r := range rs {
				out[i] = sample{p: n.p.Add(r.Point), s: r.Sym}
			}
			return out
		},
		func(sample) struct{} { return struct{}{} },
	)
	if err != nil {
		return err
	}
	origin := sample{s: symmetry.Identity}
	g.Put(origin, struct{}{})

	limit := t.opts.SampleDepth + len(t.classes)
	for depth := 0; depth < t.opts.SampleDepth || !t.allReached(g.Keys()); depth++ {
		if depth >= limit {
			return inconsistent("sample walk does not reach every class", symmetry.Identity)
		}
		if _, err := g.Expand(origin, 1); err != nil {
			return err
		}
	}

	t.samples = make(map[symmetry.Element][]geometry.Point, len(t.classes))
	for _, n := range g.Keys() {
		t.samples[n.s] = append(t.samples[n.s], n.p)
	}
	t.offsets = make(map[symmetry.Element]geometry.Point, len(t.classes))
	for _, k := range t.classes {
		off, ok := geometry.Nearest(t.samples[k])
		if !ok {
			return inconsistent("no sample for class", k)
		}
		t.offsets[k] = off
	}
	return nil
}

func (t *Tessellation) allReached(keys []sample) bool {
	reached := make(map[symmetry.Element]bool, len(t.classes))
	for _, n := range keys {
		reached[n.s] = true
	}
	return len(reached) == len(t.classes)
}

// refineOffsets moves every class offset into the fundamental
// parallelogram; all samples of a class must land on the same point.
func (t *Tessellation) refineOffsets() error {
	for _, k := range t.classes {
		var rep geometry.Point
		for i, p := range t.samples[k] {
			r, _ := t.cell.Reduce(p)
			if i == 0 {
				rep = r
				continue
			}
			if r != rep {
				return inconsistent("samples of one class fall into different cosets", k, rep, r)
			}
		}
		t.offsets[k] = rep
	}
	return nil
}

func (t *Tessellation) buildVirtual() error {
	t.virtual = make(map[symmetry.Element][]Node, len(t.classes))
	for _, k := range t.classes {
		ns := make([]Node, 0, len(t.rules[k]))
		for _, r := range t.rules[k] {
			v, err := t.ToVirtual(t.offsets[k].Add(r.Point), r.Sym)
			if err != nil {
				return err
			}
			ns = append(ns, Node{V: v, Sym: r.Sym})
		}
		t.virtual[k] = ns
	}
	return nil
}

// Shape returns the tiled shape.
func (t *Tessellation) Shape() *shape.Shape { return t.shape }

// Grammar returns a copy of the grammar the lattice was built from.
func (t *Tessellation) Grammar() setup.Grammar { return slices.Clone(t.grammar) }

// Stabilizer returns the symmetries that fix the main tile together with
// its neighborhood, in enumeration order.
func (t *Tessellation) Stabilizer() []symmetry.Element { return slices.Clone(t.stabilizer) }

// Classes returns the class labels in discovery order, Identity first.
func (t *Tessellation) Classes() []symmetry.Element { return slices.Clone(t.classes) }

// Rules returns the grammar transformed into class k's frame, or nil if k
// is not a class.
func (t *Tessellation) Rules(k symmetry.Element) []setup.RelativeRule {
	return slices.Clone(t.rules[k])
}

// Samples returns the real centers sampled for class k.
func (t *Tessellation) Samples(k symmetry.Element) []geometry.Point {
	return slices.Clone(t.samples[k])
}

// Offset returns the position of class k inside the fundamental cell.
func (t *Tessellation) Offset(k symmetry.Element) (geometry.Point, bool) {
	off, ok := t.offsets[k]
	return off, ok
}

// Basis returns the two basis vectors, b1 before b2 in polar angle.
func (t *Tessellation) Basis() (b1, b2 geometry.Point) { return t.cell.A, t.cell.B }

// Det returns b1×b2, the number of cells per period.
func (t *Tessellation) Det() int { return t.cell.Det() }

// Cell returns the fundamental parallelogram at the origin.
func (t *Tessellation) Cell() geometry.Parallelogram { return t.cell }

// Reduced reports whether the basis came from lattice reduction rather
// than the perpendicular pair.
func (t *Tessellation) Reduced() bool { return t.fallback }
