package render_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/lattice"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/render"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/setup"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/shape"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

func squareLattice(t *testing.T) *lattice.Tessellation {
	t.Helper()
	s := shape.MustParse("##", "##")
	st, err := setup.New(s)
	require.NoError(t, err)
	for _, p := range []geometry.Point{{X: 4, Y: 2}, {X: 2, Y: 4}, {X: 0, Y: 2}, {X: 2, Y: 0}} {
		require.True(t, st.AddShape(symmetry.Identity, p))
	}
	g, err := st.Grammar()
	require.NoError(t, err)
	tess, err := lattice.New(s, g)
	require.NoError(t, err)
	return tess
}

func same(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

// TestCanvas covers construction, bounds and PNG export.
func TestCanvas(t *testing.T) {
	_, err := render.NewCanvas(0, 3, white)
	assert.ErrorIs(t, err, render.ErrEmptySurface)

	c, err := render.NewCanvas(4, 3, white)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), c.Bounds())
	assert.True(t, same(white, c.At(3, 2)))

	c.Set(1, 1, color.Black)
	c.Set(9, 9, color.Black)
	assert.True(t, same(color.Black, c.At(1, 1)))

	var buf bytes.Buffer
	require.NoError(t, c.WritePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, c.Bounds(), img.Bounds())
	assert.True(t, same(color.Black, img.At(1, 1)))
}

// TestPlaceBitmap is all or nothing.
//
//	#.
//	##
func TestPlaceBitmap(t *testing.T) {
	bm := shape.MustParse("#.", "##").Bitmap(symmetry.Identity)
	red := color.RGBA{R: 255, A: 255}

	c, err := render.NewCanvas(4, 4, white)
	require.NoError(t, err)
	assert.True(t, render.PlaceBitmap(c, bm, image.Pt(0, 0), 1, red))
	assert.False(t, render.PlaceBitmap(c, bm, image.Pt(0, 0), 1, color.Black), "blocked")
	assert.False(t, render.PlaceBitmap(c, bm, image.Pt(1, 0), 1, color.Black), "overlaps at (1,1)")
	assert.True(t, render.PlaceBitmap(c, bm, image.Pt(2, 0), 1, color.Black), "beside")
	assert.False(t, render.PlaceBitmap(c, bm, image.Pt(3, 3), 1, red), "does not fit")
	assert.False(t, render.PlaceBitmap(c, bm, image.Pt(0, 2), 0, red), "bad scale")
	assert.True(t, same(red, c.At(0, 1)))
	assert.True(t, same(color.Black, c.At(2, 0)))
	assert.True(t, same(white, c.At(1, 0)))

	big, err := render.NewCanvas(4, 4, white)
	require.NoError(t, err)
	require.True(t, render.PlaceBitmap(big, bm, image.Pt(0, 0), 2, red))
	painted := 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if same(red, big.At(x, y)) {
				painted++
			}
		}
	}
	assert.Equal(t, 12, painted)
}

// TestPalette checks sizes, distinct entries and hex round trips.
func TestPalette(t *testing.T) {
	p := render.Palette(6)
	require.Len(t, p, 6)
	seen := map[string]bool{}
	for _, c := range p {
		seen[render.Hex(c)] = true
	}
	assert.Len(t, seen, 6)

	c, err := render.ParseColor("#ff8000")
	require.NoError(t, err)
	assert.Equal(t, "#ff8000", render.Hex(c))
	_, err = render.ParseColor("orange")
	assert.ErrorIs(t, err, render.ErrBadColor)

	pal, err := render.ParsePalette([]string{"#000000", "#fff"})
	require.NoError(t, err)
	assert.Equal(t, "#ffffff", render.Hex(pal[1]))
	_, err = render.ParsePalette([]string{"#000000", "nope"})
	assert.ErrorIs(t, err, render.ErrBadColor)
}

// TestTessellation fills an 8×8 window with 2×2 squares, neighbors in
// different colors.
func TestTessellation(t *testing.T) {
	tess := squareLattice(t)
	g, err := tess.Expand(4)
	require.NoError(t, err)

	c, err := render.NewCanvas(8, 8, white)
	require.NoError(t, err)
	st, err := render.Tessellation(c, tess, g)
	require.NoError(t, err)
	assert.Equal(t, 64, st.Cells)
	assert.Equal(t, 16, st.Tiles)
	assert.Equal(t, g.Len()*4-64, st.Hidden)

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			assert.False(t, same(white, c.At(x, y)), "gap at (%d,%d)", x, y)
			if x%2 == 1 && x < 7 {
				assert.False(t, same(c.At(x, y), c.At(x+1, y)), "same color across (%d,%d)", x, y)
			}
			if y%2 == 1 && y < 7 {
				assert.False(t, same(c.At(x, y), c.At(x, y+1)), "same color across (%d,%d)", x, y)
			}
		}
	}

	for _, n := range g.Keys() {
		tile, _ := g.Get(n)
		assert.GreaterOrEqual(t, tile.Color, 0)
	}
}

// TestTessellation_Options covers scale, center and invalid options.
func TestTessellation_Options(t *testing.T) {
	tess := squareLattice(t)
	g, err := tess.Expand(1)
	require.NoError(t, err)

	c, err := render.NewCanvas(8, 8, white)
	require.NoError(t, err)
	black := []color.Color{color.Black}
	st, err := render.Tessellation(c, tess, g,
		render.WithScale(2), render.WithCenter(image.Pt(0, 0)), render.WithPalette(black))
	require.NoError(t, err)
	assert.Equal(t, 3, st.Tiles, "main, right and below are visible")
	assert.True(t, same(color.Black, c.At(0, 0)))
	assert.True(t, same(color.Black, c.At(7, 3)))
	assert.True(t, same(white, c.At(7, 7)))

	_, err = render.Tessellation(c, tess, g, render.WithScale(0))
	assert.ErrorIs(t, err, render.ErrOptionViolation)
	_, err = render.Tessellation(c, tess, g, render.WithPalette(nil))
	assert.ErrorIs(t, err, render.ErrOptionViolation)
}

// TestTessellation_Occupied skips blocks with any painted pixel and
// rejects palettes that blend into the background.
func TestTessellation_Occupied(t *testing.T) {
	tess := squareLattice(t)
	g, err := tess.Expand(4)
	require.NoError(t, err)

	c, err := render.NewCanvas(8, 8, white)
	require.NoError(t, err)
	c.Set(1, 1, color.Black)
	st, err := render.Tessellation(c, tess, g, render.WithScale(2))
	require.NoError(t, err)
	assert.Equal(t, 15, st.Cells)
	assert.True(t, same(white, c.At(0, 0)))
	assert.True(t, same(color.Black, c.At(1, 1)))

	blend := render.WithPalette([]color.Color{color.Black, white})
	_, err = render.Tessellation(c, tess, g, blend)
	assert.ErrorIs(t, err, render.ErrBadColor)
	_, err = render.TessellationSVG(&bytes.Buffer{}, 4, 4, white, tess, g, blend)
	assert.ErrorIs(t, err, render.ErrBadColor)

	assert.NoError(t, render.CheckPalette(white, []color.Color{color.Black}))
}

// TestTessellationSVG writes one rect per visible cell plus the background.
func TestTessellationSVG(t *testing.T) {
	tess := squareLattice(t)
	g, err := tess.Expand(4)
	require.NoError(t, err)

	var buf bytes.Buffer
	st, err := render.TessellationSVG(&buf, 6, 4, white, tess, g, render.WithScale(10))
	require.NoError(t, err)
	assert.Equal(t, 24, st.Cells)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0"?>`))
	assert.Contains(t, out, `viewBox="0 0 60 40"`)
	assert.Equal(t, 25, strings.Count(out, "<rect "))
	assert.Contains(t, out, "<rect x='0' y='0' width='60' height='40' style='fill: #ffffff' />")
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))

	_, err = render.TessellationSVG(&buf, 0, 4, white, tess, g)
	assert.ErrorIs(t, err, render.ErrEmptySurface)
}
