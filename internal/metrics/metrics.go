// Package metrics holds the Prometheus collectors for engine, lattice and
// render activity.
package metrics

import (
	"fmt"
	"io"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/setup"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "tessellate"

// Metrics groups the collectors on a private registry.
type Metrics struct {
	Registry *prometheus.Registry

	Placements *prometheus.CounterVec
	Discounts  *prometheus.CounterVec
	Resolves   *prometheus.CounterVec
	Lattices   *prometheus.CounterVec
	Tiles      prometheus.Counter
	Cells      prometheus.Counter
	Duration   *prometheus.HistogramVec
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		Placements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "placements_total",
				Help:      "Neighbor placements offered to the engine.",
			},
			[]string{"result"},
		),
		Discounts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "discounts_total",
				Help:      "Candidate symmetries ruled out during resolution.",
			},
			[]string{"symmetry"},
		),
		Resolves: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resolves_total",
				Help:      "Engine resolutions by outcome.",
			},
			[]string{"valid"},
		),
		Lattices: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "lattice_builds_total",
				Help:      "Lattice constructions by outcome.",
			},
			[]string{"result"},
		),
		Tiles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rendered_tiles_total",
			Help:      "Tiles with at least one visible cell.",
		}),
		Cells: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rendered_cells_total",
			Help:      "Cells painted.",
		}),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "stage_duration_seconds",
				Help:      "Duration of pipeline stages.",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"stage"},
		),
	}
	m.Registry.MustRegister(m.Placements, m.Discounts, m.Resolves, m.Lattices,
		m.Tiles, m.Cells, m.Duration)
	return m
}

// SetupOptions returns engine options that feed the counters.
func (m *Metrics) SetupOptions() []setup.Option {
	return []setup.Option{
		setup.WithOnPlace(func(_ symmetry.Element, _ geometry.Point, accepted bool) {
			if accepted {
				m.Placements.WithLabelValues("accepted").Inc()
			} else {
				m.Placements.WithLabelValues("rejected").Inc()
			}
		}),
		setup.WithOnDiscount(func(_ int, e symmetry.Element) {
			m.Discounts.WithLabelValues(e.String()).Inc()
		}),
		setup.WithOnResolve(func(valid bool) {
			m.Resolves.WithLabelValues(fmt.Sprint(valid)).Inc()
		}),
	}
}

// ObserveLattice counts one lattice construction.
func (m *Metrics) ObserveLattice(err error) {
	if err != nil {
		m.Lattices.WithLabelValues("error").Inc()
		return
	}
	m.Lattices.WithLabelValues("ok").Inc()
}

// ObserveRender adds the counts of one painting pass.
func (m *Metrics) ObserveRender(tiles, cells int) {
	m.Tiles.Add(float64(tiles))
	m.Cells.Add(float64(cells))
}

// ObserveStage records the duration of a named stage in seconds.
func (m *Metrics) ObserveStage(stage string, seconds float64) {
	m.Duration.WithLabelValues(stage).Observe(seconds)
}

// Write dumps every gathered family in the text exposition format.
func (m *Metrics) Write(w io.Writer) error {
	families, err := m.Registry.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
