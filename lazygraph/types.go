package lazygraph

import (
	"context"
	"errors"
	"fmt"
)

// Sentinel errors for graph operations.
var (
	// ErrStartNotFound is returned when a traversal or expansion starts at a
	// key that is not materialized.
	ErrStartNotFound = errors.New("lazygraph: start node not found")

	// ErrNodeNotFound is returned by CreateNeighbors for an absent key.
	ErrNodeNotFound = errors.New("lazygraph: node not found")

	// ErrNilFunc is returned by New when the neighbor or fill function is nil.
	ErrNilFunc = errors.New("lazygraph: nil function")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("lazygraph: invalid option supplied")
)

// NeighborFunc returns the keys adjacent to key, materialized or not.
type NeighborFunc[K comparable] func(key K) []K

// FillFunc returns the value of a node created by CreateNeighbors.
type FillFunc[K comparable, V any] func(key K) V

// Option configures Traverse via functional arguments.
// If an Option is invalid (e.g. negative depth), it is recorded
// internally and surfaced as ErrOptionViolation when Traverse is invoked.
type Option[K comparable] func(*Options[K])

// Options holds parameters and callbacks of one traversal.
type Options[K comparable] struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called when visiting a node. If it returns an error,
	// Traverse aborts and propagates that error.
	OnVisit func(key K, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	// A value of 0 disables the limit.
	MaxDepth int

	err error
}

// DefaultOptions returns Options with a background context, no depth
// limit and a no-op OnVisit.
func DefaultOptions[K comparable]() Options[K] {
	return Options[K]{
		Ctx:     context.Background(),
		OnVisit: func(K, int) error { return nil },
	}
}

// WithContext sets a custom context for cancellation.
func WithContext[K comparable](ctx context.Context) Option[K] {
	return func(o *Options[K]) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback run on visit; returning an error
// from it stops the traversal.
func WithOnVisit[K comparable](fn func(key K, depth int) error) Option[K] {
	return func(o *Options[K]) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the traversal at the given depth (inclusive).
//
//	d > 0: limit to depth d
//	d == 0: no limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth[K comparable](d int) Option[K] {
	return func(o *Options[K]) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// Result holds the outcome of a traversal:
//   - Order: keys in visit sequence.
//   - Depth: distance in edges from the start.
//   - Parent: predecessor in the BFS tree; the start has none.
type Result[K comparable] struct {
	Order  []K
	Depth  map[K]int
	Parent map[K]K
}

// PathTo reconstructs the path from the start to dest.
// Returns an error if dest was not reached.
func (r *Result[K]) PathTo(dest K) ([]K, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, fmt.Errorf("lazygraph: no path to %v", dest)
	}
	path := []K{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
