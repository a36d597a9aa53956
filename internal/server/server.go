// Package server exposes tessellation definitions over HTTP: their
// summaries, PNG and SVG renderings and the Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/config"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/logging"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/metrics"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/pipeline"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mitchellh/mapstructure"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ErrBadQuery is returned for query parameters that do not decode onto
// render settings.
var ErrBadQuery = errors.New("server: invalid query")

// Server serves a fixed set of definitions.
type Server struct {
	defs    []config.Definition
	store   store.Store
	metrics *metrics.Metrics
	logger  *slog.Logger
	pipe    *pipeline.Pipeline

	mu      sync.Mutex
	results map[string]*pipeline.Result
}

// Option configures a Server.
type Option func(*Server)

// WithStore sets the summary store. The default keeps them in memory.
func WithStore(st store.Store) Option {
	return func(s *Server) {
		if st != nil {
			s.store = st
		}
	}
}

// WithLogger sets the request and pipeline logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics sets the collectors exposed on /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		if m != nil {
			s.metrics = m
		}
	}
}

// New returns a Server for defs.
func New(defs []config.Definition, opts ...Option) *Server {
	s := &Server{
		defs:    defs,
		store:   store.NewMemory(),
		metrics: metrics.New(),
		logger:  logging.NewNop(),
		results: make(map[string]*pipeline.Result),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.pipe = pipeline.New(s.logger, s.metrics)
	return s
}

// Handler returns the routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))
	r.Route("/tessellations", func(r chi.Router) {
		r.Get("/", s.list)
		r.Get("/{name}", s.summary)
		r.Get("/{name}/image.png", s.image("png"))
		r.Get("/{name}/image.svg", s.image("svg"))
	})
	return r
}

// Entry is one item of the definition list.
type Entry struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (s *Server) list(w http.ResponseWriter, _ *http.Request) {
	out := make([]Entry, len(s.defs))
	for i, d := range s.defs {
		out[i] = Entry{Name: d.Name, Description: d.Description}
	}
	s.writeJSON(w, out)
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "error", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, code int, err error) {
	if code >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err,
			"request_id", middleware.GetReqID(r.Context()))
	} else {
		s.logger.Warn("request rejected", "path", r.URL.Path, "error", err)
	}
	http.Error(w, err.Error(), code)
}

// resolve returns the cached result for name, resolving it on first use.
func (s *Server) resolve(ctx context.Context, name string) (*pipeline.Result, int, error) {
	def, ok := config.Find(s.defs, name)
	if !ok {
		return nil, http.StatusNotFound, fmt.Errorf("unknown tessellation %q", name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.results[name]; ok {
		return r, 0, nil
	}
	r, err := s.pipe.Resolve(ctx, def)
	if err != nil {
		return nil, http.StatusUnprocessableEntity, err
	}
	s.results[name] = r
	return r, 0, nil
}

func (s *Server) summary(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	sum, err := s.store.Load(r.Context(), name)
	if err == nil {
		s.writeJSON(w, sum)
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		s.fail(w, r, http.StatusInternalServerError, err)
		return
	}

	res, code, err := s.resolve(r.Context(), name)
	if err != nil {
		s.fail(w, r, code, err)
		return
	}
	sum = pipeline.Summarize(res)
	if err := s.store.Save(r.Context(), sum); err != nil {
		s.logger.Warn("summary not cached", "tessellation", name, "error", err)
	}
	s.writeJSON(w, sum)
}

// Settings overlays the query parameters of q onto base. Numbers are
// decoded from their text, the palette is a comma separated list.
func Settings(base config.Render, q map[string][]string) (config.Render, error) {
	in := make(map[string]any, len(q))
	for k, v := range q {
		if len(v) == 0 {
			continue
		}
		if k == "palette" {
			in[k] = strings.Split(v[0], ",")
			continue
		}
		in[k] = v[0]
	}
	out := base
	if _, ok := in["palette"]; ok {
		out.Palette = nil
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &out,
	})
	if err != nil {
		return base, err
	}
	if err := dec.Decode(in); err != nil {
		return base, fmt.Errorf("%w: %w", ErrBadQuery, err)
	}
	if err := out.Validate(); err != nil {
		return base, fmt.Errorf("%w: %w", ErrBadQuery, err)
	}
	return out, nil
}

func (s *Server) image(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, code, err := s.resolve(r.Context(), chi.URLParam(r, "name"))
		if err != nil {
			s.fail(w, r, code, err)
			return
		}
		settings, err := Settings(res.Definition.Render, r.URL.Query())
		if err != nil {
			s.fail(w, r, http.StatusBadRequest, err)
			return
		}
		if _, _, err := pipeline.Colors(settings.WithDefaults()); err != nil {
			s.fail(w, r, http.StatusBadRequest, err)
			return
		}

		if format == "svg" {
			w.Header().Set("Content-Type", "image/svg+xml")
			_, err = s.pipe.RenderSVG(w, res, settings)
		} else {
			w.Header().Set("Content-Type", "image/png")
			_, err = s.pipe.RenderPNG(w, res, settings)
		}
		if err != nil {
			s.fail(w, r, http.StatusInternalServerError, err)
		}
	}
}
