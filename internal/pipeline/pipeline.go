// Package pipeline turns a tessellation definition into a resolved lattice
// and renders it.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"time"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/config"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/logging"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/metrics"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/lattice"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/lazygraph"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/render"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/setup"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/shape"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
)

// ErrPlacementRejected is returned when a configured placement overlaps
// another or leaves the working grid.
var ErrPlacementRejected = errors.New("pipeline: placement rejected")

// Result is everything derived from one definition.
type Result struct {
	Definition config.Definition
	Shape      *shape.Shape
	Setup      *setup.Setup
	Grammar    setup.Grammar
	Lattice    *lattice.Tessellation
}

// Pipeline resolves definitions with a shared logger and, optionally,
// shared metrics.
type Pipeline struct {
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New returns a Pipeline. A nil logger is replaced by a no-op one and nil
// metrics disable instrumentation.
func New(logger *slog.Logger, m *metrics.Metrics) *Pipeline {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Pipeline{logger: logger, metrics: m}
}

func (p *Pipeline) stage(name string, start time.Time) {
	if p.metrics != nil {
		p.metrics.ObserveStage(name, time.Since(start).Seconds())
	}
}

// Resolve builds the shape, places every neighbor, resolves the grammar
// and constructs the lattice.
func (p *Pipeline) Resolve(ctx context.Context, def config.Definition) (*Result, error) {
	log := p.logger.With("tessellation", def.Name)
	s, err := def.ParseShape()
	if err != nil {
		return nil, err
	}

	opts := []setup.Option{setup.WithLogger(log)}
	if p.metrics != nil {
		opts = append(opts, p.metrics.SetupOptions()...)
	}
	start := time.Now()
	st, err := setup.New(s, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", def.Name, err)
	}
	for i, pl := range def.Placements {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !st.AddShape(pl.Symmetry, pl.Point()) {
			return nil, fmt.Errorf("%w: %s: placement %d (%v at %v)",
				ErrPlacementRejected, def.Name, i, pl.Symmetry, pl.Point())
		}
	}
	g, err := st.Grammar()
	p.stage("setup", start)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", def.Name, err)
	}
	log.Debug("grammar resolved", "rules", len(g), "grammar", g.String())

	start = time.Now()
	t, err := lattice.New(s, g, lattice.WithLogger(log))
	p.stage("lattice", start)
	if p.metrics != nil {
		p.metrics.ObserveLattice(err)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", def.Name, err)
	}
	b1, b2 := t.Basis()
	log.Info("tessellation resolved", "basis", []any{b1, b2}, "det", t.Det(), "classes", t.Classes())

	return &Result{Definition: def, Shape: s, Setup: st, Grammar: g, Lattice: t}, nil
}

// Graph expands the lattice depth rounds from the main tile.
func (r *Result) Graph(depth int) (*lazygraph.Graph[lattice.Node, lattice.Tile], error) {
	return r.Lattice.Expand(depth)
}

// Routes returns, for every class, a shortest chain of adjacent tiles from
// the main tile to the nearest tile of that class.
func (r *Result) Routes() (map[symmetry.Element][]lattice.Node, error) {
	classes := r.Lattice.Classes()
	g, err := r.Graph(len(classes))
	if err != nil {
		return nil, err
	}
	res, err := g.Traverse(lattice.Origin())
	if err != nil {
		return nil, err
	}
	out := make(map[symmetry.Element][]lattice.Node, len(classes))
	for _, n := range res.Order {
		if _, ok := out[n.Sym]; ok {
			continue
		}
		path, err := res.PathTo(n)
		if err != nil {
			return nil, err
		}
		out[n.Sym] = path
	}
	for _, k := range classes {
		if _, ok := out[k]; !ok {
			return nil, fmt.Errorf("%s: class %v not reached", r.Definition.Name, k)
		}
	}
	return out, nil
}

// Colors parses the background and palette of settings. An empty palette
// yields nil, leaving the renderer's default.
func Colors(settings config.Render) (color.Color, []color.Color, error) {
	bg, err := render.ParseColor(settings.Background)
	if err != nil {
		return nil, nil, err
	}
	if len(settings.Palette) == 0 {
		return bg, nil, nil
	}
	pal, err := render.ParsePalette(settings.Palette)
	if err != nil {
		return nil, nil, err
	}
	if err := render.CheckPalette(bg, pal); err != nil {
		return nil, nil, err
	}
	return bg, pal, nil
}

func renderOptions(settings config.Render, pal []color.Color) []render.Option {
	opts := []render.Option{render.WithScale(settings.Scale)}
	if pal != nil {
		opts = append(opts, render.WithPalette(pal))
	}
	return opts
}

func (p *Pipeline) observe(r *Result, format string, st render.Stats, start time.Time) {
	p.stage("render", start)
	if p.metrics != nil {
		p.metrics.ObserveRender(st.Tiles, st.Cells)
	}
	p.logger.Debug("tessellation rendered", "tessellation", r.Definition.Name,
		"format", format, "tiles", st.Tiles, "cells", st.Cells, "hidden", st.Hidden)
}

// RenderPNG paints r with settings (sizes in cells) and writes a PNG.
func (p *Pipeline) RenderPNG(w io.Writer, r *Result, settings config.Render) (render.Stats, error) {
	settings = settings.WithDefaults()
	if err := settings.Validate(); err != nil {
		return render.Stats{}, err
	}
	bg, pal, err := Colors(settings)
	if err != nil {
		return render.Stats{}, err
	}
	start := time.Now()
	g, err := r.Graph(settings.Depth)
	if err != nil {
		return render.Stats{}, err
	}
	c, err := render.NewCanvas(settings.Width*settings.Scale, settings.Height*settings.Scale, bg)
	if err != nil {
		return render.Stats{}, err
	}
	st, err := render.Tessellation(c, r.Lattice, g, renderOptions(settings, pal)...)
	if err != nil {
		return render.Stats{}, err
	}
	p.observe(r, "png", st, start)
	return st, c.WritePNG(w)
}

// RenderSVG writes r as an SVG document.
func (p *Pipeline) RenderSVG(w io.Writer, r *Result, settings config.Render) (render.Stats, error) {
	settings = settings.WithDefaults()
	if err := settings.Validate(); err != nil {
		return render.Stats{}, err
	}
	bg, pal, err := Colors(settings)
	if err != nil {
		return render.Stats{}, err
	}
	start := time.Now()
	g, err := r.Graph(settings.Depth)
	if err != nil {
		return render.Stats{}, err
	}
	st, err := render.TessellationSVG(w, settings.Width, settings.Height, bg, r.Lattice, g,
		renderOptions(settings, pal)...)
	if err != nil {
		return render.Stats{}, err
	}
	p.observe(r, "svg", st, start)
	return st, nil
}
