package server_test

import (
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/config"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/pipeline"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/server"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/store"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newHandler(t *testing.T, opts ...server.Option) http.Handler {
	t.Helper()
	defs, err := config.LoadDir("../../definitions")
	require.NoError(t, err)
	return server.New(defs, opts...).Handler()
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestList(t *testing.T) {
	w := get(t, newHandler(t), "/tessellations")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var entries []server.Entry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	require.Len(t, entries, 4)
	assert.Equal(t, server.Entry{Name: "domino", Description: "Dominoes in a herringbone."}, entries[0])
}

// TestSummary resolves on first use and caches the summary.
func TestSummary(t *testing.T) {
	st := store.NewMemory()
	h := newHandler(t, server.WithStore(st))

	w := get(t, h, "/tessellations/square")
	require.Equal(t, http.StatusOK, w.Code)
	var sum pipeline.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sum))
	assert.Equal(t, "square", sum.Name)
	assert.Equal(t, 4, sum.Det)
	assert.Equal(t, symmetry.All(), sum.Stabilizer)

	names, err := st.List(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []string{"square"}, names)

	again := get(t, h, "/tessellations/square")
	assert.Equal(t, w.Body.String(), again.Body.String())

	assert.Equal(t, http.StatusNotFound, get(t, h, "/tessellations/nope").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/tessellations/nope/image.png").Code)
}

// TestSummary_Redis caches summaries in Redis.
func TestSummary_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	rs := store.NewRedisFromClient(backend.NewClient(&backend.Options{Addr: mr.Addr()}))
	h := newHandler(t, server.WithStore(rs))

	require.Equal(t, http.StatusOK, get(t, h, "/tessellations/domino").Code)
	assert.True(t, mr.Exists("tessellate:summary:domino"))
}

// TestSummary_Unresolvable answers 422 for definitions that do not tile.
func TestSummary_Unresolvable(t *testing.T) {
	defs := []config.Definition{{
		Name:  "open",
		Shape: []string{"##", "##"},
		Placements: []config.Placement{
			{Symmetry: symmetry.Identity, At: [2]int{4, 2}},
		},
	}}
	h := server.New(defs).Handler()
	assert.Equal(t, http.StatusUnprocessableEntity, get(t, h, "/tessellations/open").Code)
}

func TestImage(t *testing.T) {
	h := newHandler(t)

	w := get(t, h, "/tessellations/square/image.png?width=8&height=8&scale=2&depth=4")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	img, err := png.Decode(w.Body)
	require.NoError(t, err)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())

	w = get(t, h, "/tessellations/l-tromino/image.svg?width=6&height=4&scale=10")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/svg+xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), `viewBox="0 0 60 40"`)
	assert.Contains(t, w.Body.String(), "fill: #202020")

	for _, q := range []string{
		"width=abc", "colour=red", "scale=-2", "palette=nope", "background=%23zz",
		"depth=1000000", "width=200000&height=200000&scale=1000", "width=1024&height=1024&scale=64",
	} {
		t.Run(q, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, get(t, h, "/tessellations/square/image.png?"+q).Code)
		})
	}
}

// TestMetrics exposes the counters of served requests.
func TestMetrics(t *testing.T) {
	h := newHandler(t)
	require.Equal(t, http.StatusOK, get(t, h, "/tessellations/square/image.svg?width=4&height=4").Code)

	w := get(t, h, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "tessellate_rendered_cells_total 16")
	assert.Contains(t, w.Body.String(), `tessellate_lattice_builds_total{result="ok"} 1`)

	assert.Equal(t, http.StatusOK, get(t, h, "/healthz").Code)
}

func TestSettings(t *testing.T) {
	base := config.Render{}.WithDefaults()
	got, err := server.Settings(base, url.Values{
		"width":   {"10"},
		"depth":   {"3"},
		"palette": {"#000000,#ffffff"},
	})
	require.NoError(t, err)
	assert.Equal(t, 10, got.Width)
	assert.Equal(t, 3, got.Depth)
	assert.Equal(t, base.Height, got.Height)
	assert.Equal(t, []string{"#000000", "#ffffff"}, got.Palette)

	base.Palette = []string{"#111111", "#222222", "#333333"}
	got, err = server.Settings(base, url.Values{"palette": {"#000000"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"#000000"}, got.Palette)
	assert.Len(t, base.Palette, 3)

	_, err = server.Settings(base, url.Values{"height": {"x"}})
	assert.ErrorIs(t, err, server.ErrBadQuery)

	_, err = server.Settings(config.Render{}, url.Values{
		"depth": {"1000000"}, "width": {"200000"}, "height": {"200000"}, "scale": {"1000"},
	})
	assert.ErrorIs(t, err, server.ErrBadQuery)
	assert.ErrorIs(t, err, config.ErrInvalidDefinition)
}
