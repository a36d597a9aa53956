package setup

import (
	"slices"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
)

// resolve rebuilds all derived state from the placements and runs the
// three phases.
func (st *Setup) resolve() bool {
	st.favored = map[symmetry.Element]bool{symmetry.Identity: true}
	for _, p := range st.placements {
		p.reset()
		if p.certain {
			st.favored[p.trueSym] = true
		}
	}

	st.verify()
	st.reduce(nil)
	rounds := st.collapse()

	for _, p := range st.border() {
		if len(p.potentials) != 1 || !st.follows(p, p.trueSym) {
			st.opts.Logger.Debug("placement unresolved", "code", p.Code, "potentials", p.potentials)
			return false
		}
	}
	st.opts.Logger.Debug("tessellation resolved", "placements", len(st.placements), "collapses", rounds)
	return true
}

// verify fills every border placement's valid rules for each candidate.
func (st *Setup) verify() {
	var rel []RelativeRule
	for _, p := range st.placements {
		for _, e := range p.potentials {
			rel = append(rel, st.relRule(p, e))
		}
	}
	for _, p := range st.border() {
		for _, e := range p.potentials {
			ps := symmetry.Inverse(e)
			plane := st.plane(ps)
			cc := st.absCenterIn(p, e, ps)

			var abs []AbsoluteRule
			for _, q := range st.placements {
				for _, qe := range q.potentials {
					abs = append(abs, st.absRule(q, qe, ps))
				}
			}
			for _, r := range rel {
				t := r.Point.Add(cc)
				safe := !plane.Contains(t) || plane.Get(t) == 0 ||
					slices.ContainsFunc(abs, func(a AbsoluteRule) bool {
						return a.Sym == r.Sym && a.Point == t
					})
				if safe {
					p.valid[e] = append(p.valid[e], r)
				}
			}
		}
	}
}

// follows reports whether, from p's point of view under e, every placed
// code is accounted for by a safe rule.
func (st *Setup) follows(p *Placement, e symmetry.Element) bool {
	codes := map[int]bool{p.Code: true}
	for _, r := range p.valid[e] {
		codes[r.Code] = true
	}
	return len(codes) == len(st.placements)
}

// reduce drops known-incorrect rules and discounts candidates that stop
// following, until no new incorrect rule appears.
func (st *Setup) reduce(known []RelativeRule) {
	for {
		var fresh []RelativeRule
		for _, p := range st.border() {
			for _, e := range slices.Clone(p.potentials) {
				p.valid[e] = slices.DeleteFunc(p.valid[e], func(r RelativeRule) bool {
					return slices.ContainsFunc(known, r.Equal)
				})
				if !st.follows(p, e) {
					fresh = append(fresh, st.relRule(p, e))
					st.discount(p, e)
				}
			}
		}
		if len(fresh) == 0 {
			return
		}
		known = fresh
	}
}

// collapse breaks remaining ties in favor of symmetries already chosen by
// other placements. Returns the number of forced discounts.
func (st *Setup) collapse() int {
	rounds := 0
	for {
		idx := slices.IndexFunc(st.border(), func(p *Placement) bool {
			return !p.certain && len(p.potentials) > 1
		})
		if idx < 0 {
			return rounds
		}
		p := st.border()[idx]
		drop := p.potentials[0]
		for _, e := range p.potentials {
			if !st.favored[e] {
				drop = e
				break
			}
		}
		st.opts.Logger.Debug("collapsing ambiguity", "code", p.Code, "drop", drop)
		st.discount(p, drop)
		st.reduce([]RelativeRule{st.relRule(p, drop)})
		rounds++
	}
}

func (st *Setup) discount(p *Placement, e symmetry.Element) {
	if !p.hasPotential(e) {
		return
	}
	delete(p.valid, e)
	p.potentials = slices.DeleteFunc(p.potentials, func(x symmetry.Element) bool { return x == e })
	st.opts.OnDiscount(p.Code, e)
	st.opts.Logger.Debug("symmetry discounted", "code", p.Code, "symmetry", e, "left", p.potentials)
	if len(p.potentials) == 1 {
		st.setTrue(p, p.potentials[0])
	}
}

func (st *Setup) setTrue(p *Placement, e symmetry.Element) {
	st.favored[e] = true
	p.settle(e)
}
