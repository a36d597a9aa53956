package lazygraph

import (
	"context"
	"fmt"
	"slices"
)

// Graph is a lazily materialized graph. The zero value is not usable;
// construct with New.
type Graph[K comparable, V any] struct {
	nodes     map[K]V
	order     []K
	neighbors NeighborFunc[K]
	fill      FillFunc[K, V]
}

// New returns an empty graph whose adjacency is computed by neighbors and
// whose created nodes get their value from fill.
// Returns ErrNilFunc if either function is nil.
func New[K comparable, V any](neighbors NeighborFunc[K], fill FillFunc[K, V]) (*Graph[K, V], error) {
	if neighbors == nil || fill == nil {
		return nil, ErrNilFunc
	}
	return &Graph[K, V]{
		nodes:     make(map[K]V),
		neighbors: neighbors,
		fill:      fill,
	}, nil
}

// Put stores v under key, materializing the node if needed.
func (g *Graph[K, V]) Put(key K, v V) {
	if _, ok := g.nodes[key]; !ok {
		g.order = append(g.order, key)
	}
	g.nodes[key] = v
}

// Get returns the value stored under key.
func (g *Graph[K, V]) Get(key K) (V, bool) {
	v, ok := g.nodes[key]
	return v, ok
}

// Has reports whether key is materialized.
func (g *Graph[K, V]) Has(key K) bool {
	_, ok := g.nodes[key]
	return ok
}

// Len returns the number of materialized nodes.
func (g *Graph[K, V]) Len() int { return len(g.nodes) }

// Keys returns the materialized keys in insertion order.
func (g *Graph[K, V]) Keys() []K { return slices.Clone(g.order) }

// NeighborKeys returns every key adjacent to key, present or not.
func (g *Graph[K, V]) NeighborKeys(key K) []K { return g.neighbors(key) }

// Neighbors returns the materialized keys adjacent to key.
func (g *Graph[K, V]) Neighbors(key K) []K {
	var out []K
	for _, n := range g.neighbors(key) {
		if g.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// CreateNeighbors materializes every absent neighbor of key with a value
// from the fill function and returns how many were created.
// Returns ErrNodeNotFound if key itself is absent.
func (g *Graph[K, V]) CreateNeighbors(key K) (int, error) {
	if !g.Has(key) {
		return 0, fmt.Errorf("%w: %v", ErrNodeNotFound, key)
	}
	created := 0
	for _, n := range g.neighbors(key) {
		if !g.Has(n) {
			g.Put(n, g.fill(n))
			created++
		}
	}
	return created, nil
}

// Expand runs rounds of traverse-then-create: each round materializes the
// missing neighbors of every node reachable from start. Returns the number
// of nodes created.
func (g *Graph[K, V]) Expand(start K, rounds int) (int, error) {
	if rounds < 0 {
		return 0, fmt.Errorf("%w: rounds cannot be negative (%d)", ErrOptionViolation, rounds)
	}
	total := 0
	for i := 0; i < rounds; i++ {
		res, err := g.Traverse(start)
		if err != nil {
			return total, err
		}
		for _, k := range res.Order {
			n, _ := g.CreateNeighbors(k)
			total += n
		}
	}
	return total, nil
}

// queueItem pairs a key with its depth.
type queueItem[K comparable] struct {
	key   K
	depth int
}

// walker encapsulates the mutable state of one traversal.
type walker[K comparable, V any] struct {
	graph   *Graph[K, V]
	opts    Options[K]
	ctx     context.Context
	queue   []queueItem[K]
	visited map[K]bool
	res     *Result[K]
}

// Traverse runs breadth-first search over the materialized nodes reachable
// from start. Returns ErrStartNotFound, ErrOptionViolation, a context
// error, or any OnVisit error.
func (g *Graph[K, V]) Traverse(start K, opts ...Option[K]) (*Result[K], error) {
	o := DefaultOptions[K]()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !g.Has(start) {
		return nil, fmt.Errorf("%w: %v", ErrStartNotFound, start)
	}

	n := g.Len()
	w := &walker[K, V]{
		graph:   g,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem[K], 0, n),
		visited: make(map[K]bool, n),
		res: &Result[K]{
			Order:  make([]K, 0, n),
			Depth:  make(map[K]int, n),
			Parent: make(map[K]K, n),
		},
	}
	w.enqueue(start, 0)

	return w.res, w.loop()
}

func (w *walker[K, V]) enqueue(key K, d int) {
	w.visited[key] = true
	w.res.Depth[key] = d
	w.queue = append(w.queue, queueItem[K]{key: key, depth: d})
}

func (w *walker[K, V]) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]
		w.res.Order = append(w.res.Order, item.key)
		if err := w.opts.OnVisit(item.key, item.depth); err != nil {
			return fmt.Errorf("lazygraph: OnVisit error at %v: %w", item.key, err)
		}

		next := item.depth + 1
		if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
			continue
		}
		for _, nbr := range w.graph.Neighbors(item.key) {
			if !w.visited[nbr] {
				w.res.Parent[nbr] = item.key
				w.enqueue(nbr, next)
			}
		}
	}
	return nil
}
