package pipeline_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image/png"
	"strings"
	"testing"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/config"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/logging"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/metrics"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/pipeline"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/lattice"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/render"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/setup"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bundled(t *testing.T) []config.Definition {
	t.Helper()
	defs, err := config.LoadDir("../../definitions")
	require.NoError(t, err)
	return defs
}

func resolve(t *testing.T, p *pipeline.Pipeline, name string) *pipeline.Result {
	t.Helper()
	d, ok := config.Find(bundled(t), name)
	require.True(t, ok, name)
	r, err := p.Resolve(context.Background(), d)
	require.NoError(t, err)
	return r
}

// TestResolve_Bundled resolves every shipped definition.
func TestResolve_Bundled(t *testing.T) {
	dets := map[string]int{"square": 4, "brick": 4, "domino": 8, "l-tromino": 6}
	p := pipeline.New(logging.NewNop(), nil)
	for _, d := range bundled(t) {
		t.Run(d.Name, func(t *testing.T) {
			r, err := p.Resolve(context.Background(), d)
			require.NoError(t, err)
			assert.Equal(t, dets[d.Name], r.Lattice.Det())
			assert.Len(t, r.Grammar, len(d.Placements))
		})
	}
}

// TestResolve_Errors covers rejected placements, open borders and
// cancellation.
func TestResolve_Errors(t *testing.T) {
	p := pipeline.New(nil, nil)
	base := config.Definition{Name: "x", Shape: []string{"##", "##"}}

	overlap := base
	overlap.Placements = []config.Placement{{Symmetry: symmetry.Identity, At: [2]int{3, 2}}}
	_, err := p.Resolve(context.Background(), overlap)
	assert.ErrorIs(t, err, pipeline.ErrPlacementRejected)

	open := base
	open.Placements = []config.Placement{{Symmetry: symmetry.Identity, At: [2]int{4, 2}}}
	_, err = p.Resolve(context.Background(), open)
	assert.ErrorIs(t, err, setup.ErrInvalidTessellation)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Resolve(ctx, open)
	assert.ErrorIs(t, err, context.Canceled)

	bad := base
	bad.Shape = []string{"#.#"}
	_, err = p.Resolve(context.Background(), bad)
	assert.ErrorIs(t, err, config.ErrInvalidDefinition)
}

// TestRenderPNG fills an 8×8 window with squares and records metrics.
func TestRenderPNG(t *testing.T) {
	m := metrics.New()
	p := pipeline.New(logging.NewNop(), m)
	r := resolve(t, p, "square")

	var buf bytes.Buffer
	st, err := p.RenderPNG(&buf, r, config.Render{Width: 8, Height: 8, Scale: 2, Depth: 4})
	require.NoError(t, err)
	assert.Equal(t, 64, st.Cells)
	assert.Equal(t, 16, st.Tiles)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())

	var out bytes.Buffer
	require.NoError(t, m.Write(&out))
	assert.Contains(t, out.String(), "tessellate_rendered_cells_total 64")
	assert.Contains(t, out.String(), `tessellate_placements_total{result="accepted"} 5`)
	assert.Contains(t, out.String(), `tessellate_lattice_builds_total{result="ok"} 1`)

	_, err = p.RenderPNG(&buf, r, config.Render{Palette: []string{"nope"}})
	assert.ErrorIs(t, err, render.ErrBadColor)
	_, err = p.RenderPNG(&buf, r, config.Render{Background: "#000000", Palette: []string{"#ff0000", "#000"}})
	assert.ErrorIs(t, err, render.ErrBadColor)
	_, err = p.RenderPNG(&buf, r, config.Render{Scale: -1})
	assert.ErrorIs(t, err, config.ErrInvalidDefinition)
}

// TestRenderSVG uses the definition's palette.
func TestRenderSVG(t *testing.T) {
	p := pipeline.New(nil, nil)
	r := resolve(t, p, "l-tromino")

	var buf bytes.Buffer
	settings := r.Definition.Render
	settings.Width, settings.Height = 12, 12
	st, err := p.RenderSVG(&buf, r, settings)
	require.NoError(t, err)
	assert.Positive(t, st.Cells)
	assert.Contains(t, buf.String(), "fill: #202020")
	assert.Contains(t, buf.String(), "fill: #e76f51")
	assert.Equal(t, st.Cells+1, strings.Count(buf.String(), "<rect "))
}

// TestSummarize checks the domino summary and its JSON form.
func TestSummarize(t *testing.T) {
	r := resolve(t, pipeline.New(nil, nil), "domino")
	s := pipeline.Summarize(r)
	assert.Equal(t, "domino", s.Name)
	assert.Equal(t, 8, s.Det)
	assert.True(t, s.Reduced)
	assert.Equal(t, []symmetry.Element{symmetry.Identity, symmetry.FlipX}, s.Stabilizer)
	require.Len(t, s.Classes, 4)
	assert.Equal(t, symmetry.Rot180, s.Classes[1].Symmetry)
	assert.Equal(t, geometry.Pt(1, 1), s.Classes[1].Offset)
	assert.Equal(t, []string{"(0,0)/R180", "(-1,-1)/R90", "(0,0)/R270", "(0,-1)/R270", "(0,-1)/R90"},
		s.Classes[0].Neighbors)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"stabilizer":["ID","FX"]`)
	assert.Contains(t, string(data), `"det":8`)

	var back pipeline.Summary
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, s, back)
}

// TestRoutes reaches every class from the main tile through adjacent tiles.
func TestRoutes(t *testing.T) {
	r := resolve(t, pipeline.New(nil, nil), "domino")
	routes, err := r.Routes()
	require.NoError(t, err)
	require.Len(t, routes, 4)

	assert.Equal(t, []lattice.Node{lattice.Origin()}, routes[symmetry.Identity])
	assert.Equal(t, []lattice.Node{
		lattice.Origin(),
		{V: geometry.Pt(-1, -1), Sym: symmetry.Rot90},
	}, routes[symmetry.Rot90])

	for k, path := range routes {
		require.NotEmpty(t, path)
		assert.Equal(t, lattice.Origin(), path[0])
		assert.Equal(t, k, path[len(path)-1].Sym)
		for i := 1; i < len(path); i++ {
			assert.Contains(t, r.Lattice.Neighbors(path[i-1]), path[i])
		}
	}
}
