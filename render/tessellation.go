package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/lattice"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/lazygraph"
)

// Option configures Tessellation and TessellationSVG via functional
// arguments. If an Option is invalid it is recorded and surfaced as
// ErrOptionViolation.
type Option func(*Options)

// Options holds the layout of a rendered tessellation.
type Options struct {
	// Scale is the side of one cell in pixels.
	Scale int

	// Center is where the main tile's center lands, in cells. Nil means
	// the middle of the surface.
	Center *image.Point

	// Palette is cycled through when coloring tiles.
	Palette []color.Color

	err error
}

// DefaultOptions returns scale 1, a centered origin and an 8-color palette.
func DefaultOptions() Options {
	return Options{Scale: 1, Palette: Palette(8)}
}

// WithScale sets the cell size in pixels; it must be positive.
func WithScale(n int) Option {
	return func(o *Options) {
		if n < 1 {
			o.err = fmt.Errorf("%w: scale must be positive (%d)", ErrOptionViolation, n)
			return
		}
		o.Scale = n
	}
}

// WithCenter places the main tile's center at cell p.
func WithCenter(p image.Point) Option {
	return func(o *Options) {
		o.Center = &p
	}
}

// WithPalette sets the tile colors; an empty palette is a violation.
func WithPalette(p []color.Color) Option {
	return func(o *Options) {
		if len(p) == 0 {
			o.err = fmt.Errorf("%w: empty palette", ErrOptionViolation)
			return
		}
		o.Palette = p
	}
}

// Stats summarizes one painting pass.
type Stats struct {
	// Tiles is the number of nodes with at least one visible cell.
	Tiles int
	// Cells is the number of cells painted.
	Cells int
	// Hidden is the number of cells outside the surface or already painted.
	Hidden int
}

func buildOptions(opts []Option) (Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o, o.err
}

// assignColors gives every node the first palette index not used by an
// already colored neighbor and stores it in the node's tile.
func assignColors(g *lazygraph.Graph[lattice.Node, lattice.Tile], n int) {
	for i, key := range g.Keys() {
		tile, _ := g.Get(key)
		if tile.Color >= 0 {
			continue
		}
		used := make(map[int]bool)
		for _, nb := range g.Neighbors(key) {
			if nt, _ := g.Get(nb); nt.Color >= 0 {
				used[nt.Color] = true
			}
		}
		tile.Color = i % n
		for c := 0; c < n; c++ {
			if !used[c] {
				tile.Color = c
				break
			}
		}
		g.Put(key, tile)
	}
}

// visit calls fn for every cell of every node, in node order, with the
// cell in surface cell coordinates.
func visit(t *lattice.Tessellation, g *lazygraph.Graph[lattice.Node, lattice.Tile], center image.Point,
	fn func(key lattice.Node, tile lattice.Tile, cell image.Point)) {
	shift := geometry.Pt(center.X, center.Y)
	for _, key := range g.Keys() {
		tile, _ := g.Get(key)
		for _, c := range t.Cells(key) {
			p := c.Add(shift)
			fn(key, tile, image.Pt(p.X, p.Y))
		}
	}
}

// Tessellation paints every materialized node of g onto s.
func Tessellation(s Surface, t *lattice.Tessellation, g *lazygraph.Graph[lattice.Node, lattice.Tile], opts ...Option) (Stats, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return Stats{}, err
	}
	b := s.Bounds()
	if b.Empty() {
		return Stats{}, ErrEmptySurface
	}
	if err := CheckPalette(s.Background(), o.Palette); err != nil {
		return Stats{}, err
	}
	center := image.Pt(b.Dx()/o.Scale/2, b.Dy()/o.Scale/2)
	if o.Center != nil {
		center = *o.Center
	}

	assignColors(g, len(o.Palette))

	var st Stats
	painted := make(map[image.Point]bool)
	seen := make(map[lattice.Node]bool)
	visit(t, g, center, func(key lattice.Node, tile lattice.Tile, cell image.Point) {
		if painted[cell] || !blockFree(s, cell, o.Scale) {
			st.Hidden++
			return
		}
		painted[cell] = true
		fillBlock(s, cell, o.Scale, o.Palette[tile.Color%len(o.Palette)])
		st.Cells++
		if !seen[key] {
			seen[key] = true
			st.Tiles++
		}
	})
	return st, nil
}
