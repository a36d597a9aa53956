package render

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/lattice"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/lazygraph"
	"github.com/jbeda/geom"
)

// SVG writes SVG elements to an io.Writer. The first write error is kept
// and returned by End.
type SVG struct {
	writer io.Writer
	err    error
}

// NewSVG returns an SVG writer on w.
func NewSVG(w io.Writer) *SVG {
	return &SVG{writer: w}
}

func (svg *SVG) printf(format string, a ...any) {
	if svg.err != nil {
		return
	}
	_, svg.err = fmt.Fprintf(svg.writer, format, a...)
}

// attrs turns "k=v" entries into attributes and anything else into a
// style attribute.
func attrs(s []string) string {
	var b strings.Builder
	for _, a := range s {
		switch {
		case strings.Contains(a, "="):
			b.WriteString(a + " ")
		case a != "":
			fmt.Fprintf(&b, "style='%s' ", a)
		}
	}
	return b.String()
}

// Start opens the document with the given view box.
func (svg *SVG) Start(viewBox geom.Rect, s ...string) {
	svg.printf(`<?xml version="1.0"?>
<svg version="1.1"
     viewBox="%g %g %g %g"
     xmlns="http://www.w3.org/2000/svg" %s>
`, viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height(), attrs(s))
}

// Rect writes one rectangle.
func (svg *SVG) Rect(r geom.Rect, s ...string) {
	svg.printf("<rect x='%g' y='%g' width='%g' height='%g' %s/>\n",
		r.Min.X, r.Min.Y, r.Width(), r.Height(), attrs(s))
}

// End closes the document and reports the first write error.
func (svg *SVG) End() error {
	svg.printf("</svg>\n")
	return svg.err
}

func cellRect(cell image.Point, scale int) geom.Rect {
	x, y, s := float64(cell.X*scale), float64(cell.Y*scale), float64(scale)
	return geom.Rect{Min: geom.Coord{X: x, Y: y}, Max: geom.Coord{X: x + s, Y: y + s}}
}

// TessellationSVG writes the tiles of g that fall inside a width×height
// cell window as an SVG document, one rect per cell, on a bg background.
func TessellationSVG(w io.Writer, width, height int, bg color.Color, t *lattice.Tessellation,
	g *lazygraph.Graph[lattice.Node, lattice.Tile], opts ...Option) (Stats, error) {
	o, err := buildOptions(opts)
	if err != nil {
		return Stats{}, err
	}
	if width <= 0 || height <= 0 {
		return Stats{}, fmt.Errorf("%w: %dx%d", ErrEmptySurface, width, height)
	}
	if err := CheckPalette(bg, o.Palette); err != nil {
		return Stats{}, err
	}
	center := image.Pt(width/2, height/2)
	if o.Center != nil {
		center = *o.Center
	}
	window := image.Rect(0, 0, width, height)
	assignColors(g, len(o.Palette))

	view := cellRect(image.Point{}, o.Scale)
	corner := cellRect(image.Pt(width-1, height-1), o.Scale)
	view.ExpandToContainRect(corner)

	svg := NewSVG(w)
	svg.Start(view)
	svg.Rect(view, "fill: "+Hex(bg))

	var st Stats
	painted := make(map[image.Point]bool)
	seen := make(map[lattice.Node]bool)
	visit(t, g, center, func(key lattice.Node, tile lattice.Tile, cell image.Point) {
		if !cell.In(window) || painted[cell] {
			st.Hidden++
			return
		}
		painted[cell] = true
		svg.Rect(cellRect(cell, o.Scale), "fill: "+Hex(o.Palette[tile.Color%len(o.Palette)]))
		st.Cells++
		if !seen[key] {
			seen[key] = true
			st.Tiles++
		}
	})
	return st, svg.End()
}
