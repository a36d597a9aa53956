package lattice

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/logging"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
)

// Sentinel errors for lattice construction.
var (
	// ErrInconsistentLattice is matched by every *InconsistentLatticeError.
	ErrInconsistentLattice = errors.New("lattice: grammar is not periodic")

	// ErrEmptyGrammar is returned by New for a nil shape or empty grammar.
	ErrEmptyGrammar = errors.New("lattice: shape or grammar missing")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("lattice: invalid option supplied")
)

// InconsistentLatticeError reports the step at which the grammar stopped
// behaving like a periodic tiling.
type InconsistentLatticeError struct {
	Reason string
	Sym    symmetry.Element
	Points []geometry.Point
}

// Error implements error.
func (e *InconsistentLatticeError) Error() string {
	if len(e.Points) == 0 {
		return fmt.Sprintf("lattice: %s", e.Reason)
	}
	return fmt.Sprintf("lattice: %s (%v at %v)", e.Reason, e.Sym, e.Points)
}

// Is reports whether target is ErrInconsistentLattice.
func (e *InconsistentLatticeError) Is(target error) bool {
	return target == ErrInconsistentLattice
}

func inconsistent(reason string, s symmetry.Element, pts ...geometry.Point) error {
	return &InconsistentLatticeError{Reason: reason, Sym: s, Points: pts}
}

// Node is a tile in virtual coordinates: integer multiples of the basis
// plus the offset of its class.
type Node struct {
	V   geometry.Point   `json:"v"`
	Sym symmetry.Element `json:"symmetry"`
}

// String implements fmt.Stringer.
func (n Node) String() string {
	return fmt.Sprintf("%v/%v", n.V, n.Sym)
}

// Tile is the value stored per Node in a lattice graph.
type Tile struct {
	// Center is the real center of the tile, relative to the main tile.
	Center geometry.Point `json:"center"`
	// Color is free for renderers; -1 means unassigned.
	Color int `json:"color"`
}

// Option configures New via functional arguments.
// If an Option is invalid it is recorded and surfaced as
// ErrOptionViolation by New.
type Option func(*Options)

// Options holds the tunables of lattice construction.
type Options struct {
	// Logger receives Debug records for the stabilizer, classes and basis.
	Logger *slog.Logger

	// SampleDepth is the minimum depth of the sample walk.
	SampleDepth int

	err error
}

// DefaultOptions returns a sample depth of 2 and a discarding logger.
func DefaultOptions() Options {
	return Options{
		Logger:      logging.NewNop(),
		SampleDepth: 2,
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

// WithSampleDepth sets the minimum sample walk depth.
//
//	d >= 1: walk at least d rounds
//	d < 1: invalid option → ErrOptionViolation
func WithSampleDepth(d int) Option {
	return func(o *Options) {
		if d < 1 {
			o.err = fmt.Errorf("%w: sample depth must be positive (%d)", ErrOptionViolation, d)
			return
		}
		o.SampleDepth = d
	}
}
