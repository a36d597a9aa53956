package setup

import (
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/grid"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/shape"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
)

const mainCode = 1

// Setup is the constraint engine for one tessellation attempt. All state
// (codes, placements, the favored set) belongs to the instance.
type Setup struct {
	shape  *shape.Shape
	opts   Options
	work   *grid.Grid[int]
	margin int
	center geometry.Point

	placements []*Placement // index code-1
	favored    map[symmetry.Element]bool
	planes     map[symmetry.Element]*grid.Grid[int]

	resolved bool
	valid    bool
}

// New creates a Setup for s with the main placement already in place.
// Returns ErrShapeNil or ErrOptionViolation.
func New(s *shape.Shape, opts ...Option) (*Setup, error) {
	if s == nil {
		return nil, ErrShapeNil
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	m := max(s.Width(), s.Height())
	work, err := grid.New[int](s.Width()+2*m, s.Height()+2*m)
	if err != nil {
		return nil, err
	}
	st := &Setup{
		shape:  s,
		opts:   o,
		work:   work,
		margin: m,
		center: geometry.Pt(m, m).Add(s.Center()),
	}
	if !st.AddShape(symmetry.Identity, st.center) {
		return nil, fmt.Errorf("setup: main placement does not fit %dx%d", work.Width, work.Height)
	}
	return st, nil
}

// Shape returns the shape being tessellated.
func (st *Setup) Shape() *shape.Shape { return st.shape }

// Center returns the absolute center of the main placement.
func (st *Setup) Center() geometry.Point { return st.center }

// Size returns the working grid dimensions.
func (st *Setup) Size() (w, h int) { return st.work.Width, st.work.Height }

// Grid returns a copy of the working grid of codes (0 is empty).
func (st *Setup) Grid() *grid.Grid[int] { return st.work.Clone() }

// Placements returns the placed shapes in code order, main first.
func (st *Setup) Placements() []*Placement { return slices.Clone(st.placements) }

// AddShape places a copy of the shape with symmetry e centered at the
// absolute point at. It reports false, consuming no code, when the copy
// would leave the working grid or overlap an existing placement.
func (st *Setup) AddShape(e symmetry.Element, at geometry.Point) bool {
	ok := st.addShape(e, at)
	st.opts.OnPlace(e, at, ok)
	return ok
}

func (st *Setup) addShape(e symmetry.Element, at geometry.Point) bool {
	if !e.Valid() {
		return false
	}
	code := len(st.placements) + 1
	bm := st.shape.Bitmap(e)
	tl := at.Sub(st.shape.CenterAfter(e))
	fits := geometry.RectWH(0, 0, st.work.Width-bm.Width+1, st.work.Height-bm.Height+1)
	if !fits.Contains(tl) {
		st.opts.Logger.Debug("placement outside working grid", "symmetry", e, "at", at)
		return false
	}
	cells := bm.Points(func(b bool) bool { return b })
	for _, c := range cells {
		if st.work.Get(tl.Add(c)) != 0 {
			st.opts.Logger.Debug("placement overlaps", "symmetry", e, "at", at, "code", st.work.Get(tl.Add(c)))
			return false
		}
	}
	for _, c := range cells {
		st.work.Set(tl.Add(c), code)
	}

	p := &Placement{Code: code, Nominal: e, At: at}
	if code == mainCode {
		p.initial = []symmetry.Element{symmetry.Identity}
	} else {
		p.initial = st.shape.SelfSymmetries(e)
	}
	p.reset()
	st.placements = append(st.placements, p)
	st.resolved = false
	st.planes = nil
	st.opts.Logger.Debug("placement added", "code", code, "symmetry", e, "at", at, "potentials", p.initial)
	return true
}

// absCenter is p's center when p is read with symmetry e instead of its
// nominal one: same bitmap footprint, different designated cell.
func (st *Setup) absCenter(p *Placement, e symmetry.Element) geometry.Point {
	return p.At.Sub(st.shape.CenterAfter(p.Nominal)).Add(st.shape.CenterAfter(e))
}

func (st *Setup) absCenterIn(p *Placement, e, plane symmetry.Element) geometry.Point {
	return grid.PointAfterTransform(st.absCenter(p, e), plane, st.work.Width, st.work.Height)
}

func (st *Setup) relRule(p *Placement, e symmetry.Element) RelativeRule {
	return RelativeRule{Code: p.Code, Sym: e, Point: st.absCenter(p, e).Sub(st.center)}
}

func (st *Setup) absRule(p *Placement, e, plane symmetry.Element) AbsoluteRule {
	return AbsoluteRule{Code: p.Code, Sym: symmetry.Apply(e, plane), Point: st.absCenterIn(p, e, plane)}
}

func (st *Setup) plane(e symmetry.Element) *grid.Grid[int] {
	if st.planes == nil {
		st.planes = make(map[symmetry.Element]*grid.Grid[int])
	}
	pl, ok := st.planes[e]
	if !ok {
		pl = st.work.Transform(e)
		st.planes[e] = pl
	}
	return pl
}

func (st *Setup) border() []*Placement {
	return st.placements[1:]
}

// BorderOccupied reports whether every cell adjacent to the main shape is
// covered by some placement.
func (st *Setup) BorderOccupied() bool {
	offset := geometry.Pt(st.margin, st.margin)
	for _, b := range st.shape.BorderCells() {
		if st.work.Get(b.Add(offset)) == 0 {
			return false
		}
	}
	return true
}

// Valid reports whether the placements form a regular tessellation: the
// main shape is fully surrounded and every border placement resolves to a
// single symmetry that agrees with all others. It never panics.
func (st *Setup) Valid() bool {
	if !st.BorderOccupied() {
		return false
	}
	return st.Resolve()
}

// Resolve runs verification, reduction and collapse and reports whether
// every border placement ended with exactly one consistent symmetry.
// The result is memoized until the next successful AddShape.
func (st *Setup) Resolve() bool {
	if st.resolved {
		return st.valid
	}
	st.valid = st.resolve()
	st.resolved = true
	st.opts.OnResolve(st.valid)
	return st.valid
}

// Grammar returns the resolved rule of every border placement, in code
// order, or ErrInvalidTessellation.
func (st *Setup) Grammar() (Grammar, error) {
	if !st.Valid() {
		return nil, ErrInvalidTessellation
	}
	g := make(Grammar, 0, len(st.placements)-1)
	for _, p := range st.border() {
		g = append(g, st.relRule(p, p.trueSym))
	}
	return g, nil
}

// Print writes the working grid, one character per cell: '.' for empty,
// then the code in base 36.
func (st *Setup) Print(w io.Writer) error {
	return st.work.Print(w, func(code int) string {
		if code == 0 {
			return "."
		}
		return strconv.FormatInt(int64(code%36), 36)
	})
}
