package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/grid"
)

// Sentinel errors for rendering.
var (
	// ErrEmptySurface is returned for a surface without pixels.
	ErrEmptySurface = errors.New("render: surface has no pixels")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("render: invalid option supplied")

	// ErrBadColor is returned for a color string that is not #rrggbb.
	ErrBadColor = errors.New("render: bad color")
)

// Surface is a bounded pixel area.
type Surface interface {
	Bounds() image.Rectangle
	At(x, y int) color.Color
	// Set ignores coordinates outside Bounds.
	Set(x, y int, c color.Color)
	Background() color.Color
}

// Canvas is a Surface backed by an RGBA image.
type Canvas struct {
	img *image.RGBA
	bg  color.RGBA
}

// NewCanvas returns a w×h canvas filled with bg.
func NewCanvas(w, h int, bg color.Color) (*Canvas, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmptySurface, w, h)
	}
	c := &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		bg:  color.RGBAModel.Convert(bg).(color.RGBA),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.img.SetRGBA(x, y, c.bg)
		}
	}
	return c, nil
}

// Bounds implements Surface.
func (c *Canvas) Bounds() image.Rectangle { return c.img.Bounds() }

// At implements Surface.
func (c *Canvas) At(x, y int) color.Color { return c.img.At(x, y) }

// Set implements Surface.
func (c *Canvas) Set(x, y int, col color.Color) {
	if image.Pt(x, y).In(c.img.Bounds()) {
		c.img.Set(x, y, col)
	}
}

// Background implements Surface.
func (c *Canvas) Background() color.Color { return c.bg }

// Image returns the underlying image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// WritePNG encodes the canvas as PNG.
func (c *Canvas) WritePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

func isBackground(s Surface, x, y int) bool {
	return sameColor(s.At(x, y), s.Background())
}

// PlaceBitmap paints every occupied cell of bm as a scale×scale block
// with its top-left cell at topLeft (in cells). Nothing is painted, and
// false returned, if the bitmap does not fit or any pixel under an
// occupied cell is already painted.
func PlaceBitmap(s Surface, bm *grid.Grid[bool], topLeft image.Point, scale int, c color.Color) bool {
	if scale < 1 {
		return false
	}
	b := s.Bounds()
	fit := image.Rect(b.Min.X, b.Min.Y, b.Max.X-bm.Width*scale+1, b.Max.Y-bm.Height*scale+1)
	origin := topLeft.Mul(scale)
	if !origin.In(fit) {
		return false
	}
	cells := bm.Points(func(v bool) bool { return v })
	for _, cell := range cells {
		px := origin.Add(image.Pt(cell.X, cell.Y).Mul(scale))
		for dy := 0; dy < scale; dy++ {
			for dx := 0; dx < scale; dx++ {
				if !isBackground(s, px.X+dx, px.Y+dy) {
					return false
				}
			}
		}
	}
	for _, cell := range cells {
		fillBlock(s, topLeft.Add(image.Pt(cell.X, cell.Y)), scale, c)
	}
	return true
}

// blockFree reports whether the whole scale×scale block of cell lies on s
// and is unpainted.
func blockFree(s Surface, cell image.Point, scale int) bool {
	px := cell.Mul(scale)
	if !image.Rect(px.X, px.Y, px.X+scale, px.Y+scale).In(s.Bounds()) {
		return false
	}
	for dy := 0; dy < scale; dy++ {
		for dx := 0; dx < scale; dx++ {
			if !isBackground(s, px.X+dx, px.Y+dy) {
				return false
			}
		}
	}
	return true
}

// fillBlock paints the scale×scale block of cell.
func fillBlock(s Surface, cell image.Point, scale int, c color.Color) {
	px := cell.Mul(scale)
	for dy := 0; dy < scale; dy++ {
		for dx := 0; dx < scale; dx++ {
			s.Set(px.X+dx, px.Y+dy, c)
		}
	}
}
