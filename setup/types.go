package setup

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/logging"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
)

// Sentinel errors for engine execution.
var (
	// ErrInvalidTessellation is returned by Grammar when the placements do
	// not resolve into a regular tessellation.
	ErrInvalidTessellation = errors.New("setup: placements do not form a regular tessellation")

	// ErrShapeNil is returned if a nil shape is passed.
	ErrShapeNil = errors.New("setup: shape is nil")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("setup: invalid option supplied")
)

// RelativeRule states that the placement with Code sits at Point, relative
// to a reference placement's center, appearing with symmetry Sym.
type RelativeRule struct {
	Code  int              `json:"code" yaml:"code"`
	Sym   symmetry.Element `json:"symmetry" yaml:"symmetry"`
	Point geometry.Point   `json:"point" yaml:"point"`
}

// Equal compares code, symmetry and point.
func (r RelativeRule) Equal(o RelativeRule) bool {
	return r.Code == o.Code && r.Sym == o.Sym && r.Point == o.Point
}

// Transform returns the rule as seen by a placement with symmetry e: the
// offset is rotated by e and the symmetry composed with e.
func (r RelativeRule) Transform(e symmetry.Element) RelativeRule {
	return RelativeRule{
		Code:  r.Code,
		Sym:   symmetry.Apply(r.Sym, e),
		Point: symmetry.TransformPoint(r.Point, e),
	}
}

// String implements fmt.Stringer.
func (r RelativeRule) String() string {
	return fmt.Sprintf("#%d %v@%v", r.Code, r.Sym, r.Point)
}

// AbsoluteRule anchors a placement to a cell of one plane transform of
// the working grid.
type AbsoluteRule struct {
	Code  int
	Sym   symmetry.Element
	Point geometry.Point
}

// Grammar is the resolved neighborhood of the main placement, one rule
// per border placement, in code order.
type Grammar []RelativeRule

// Symmetries returns the distinct symmetries used by g, in first-use order.
func (g Grammar) Symmetries() []symmetry.Element {
	var out []symmetry.Element
	seen := map[symmetry.Element]bool{}
	for _, r := range g {
		if !seen[r.Sym] {
			seen[r.Sym] = true
			out = append(out, r.Sym)
		}
	}
	return out
}

// String lists the rules separated by spaces.
func (g Grammar) String() string {
	parts := make([]string, len(g))
	for i, r := range g {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}

// Option configures a Setup via functional arguments.
// If an Option is invalid it is recorded and surfaced as
// ErrOptionViolation by New.
type Option func(*Options)

// Options holds the logger and hooks of a Setup.
type Options struct {
	// Logger receives Debug records for placements, discounts and collapse.
	Logger *slog.Logger

	// OnPlace is called for every AddShape attempt.
	OnPlace func(e symmetry.Element, at geometry.Point, accepted bool)

	// OnDiscount is called when a candidate symmetry is ruled out.
	OnDiscount func(code int, e symmetry.Element)

	// OnResolve is called once per resolution with its outcome.
	OnResolve func(valid bool)

	err error
}

// DefaultOptions returns Options with a discarding logger and no-op hooks.
func DefaultOptions() Options {
	return Options{
		Logger:     logging.NewNop(),
		OnPlace:    func(symmetry.Element, geometry.Point, bool) {},
		OnDiscount: func(int, symmetry.Element) {},
		OnResolve:  func(bool) {},
	}
}

// WithLogger sets the logger. A nil logger is a violation.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l == nil {
			o.err = fmt.Errorf("%w: nil logger", ErrOptionViolation)
			return
		}
		o.Logger = l
	}
}

// WithOnPlace registers a callback run on every AddShape attempt.
func WithOnPlace(fn func(e symmetry.Element, at geometry.Point, accepted bool)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnPlace = fn
		}
	}
}

// WithOnDiscount registers a callback run when a symmetry is ruled out.
func WithOnDiscount(fn func(code int, e symmetry.Element)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDiscount = fn
		}
	}
}

// WithOnResolve registers a callback run after each resolution.
func WithOnResolve(fn func(valid bool)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnResolve = fn
		}
	}
}
