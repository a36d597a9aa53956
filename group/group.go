package group

import (
	"errors"
	"fmt"
	"slices"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/grid"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
)

// Sentinel errors for group construction.
var (
	// ErrEmpty indicates an empty element list.
	ErrEmpty = errors.New("group: no elements")
	// ErrDuplicate indicates an element listed twice.
	ErrDuplicate = errors.New("group: duplicate element")
	// ErrNotClosed indicates an operation result outside the element set.
	ErrNotClosed = errors.New("group: operation is not closed")
	// ErrNoIdentity indicates that no element acts as a two-sided identity.
	ErrNoIdentity = errors.New("group: no identity element")
	// ErrNoInverse indicates an element without a two-sided inverse.
	ErrNoInverse = errors.New("group: element has no inverse")
	// ErrNotAssociative indicates a triple violating associativity.
	ErrNotAssociative = errors.New("group: operation is not associative")
)

// Group is a validated finite group. It is immutable.
type Group[E comparable] struct {
	elems    []E
	index    map[E]int
	table    [][]int
	identity int
	inverse  []int
}

// New validates elems under op and returns the group.
// Returns ErrEmpty, ErrDuplicate, ErrNotClosed, ErrNoIdentity,
// ErrNoInverse or ErrNotAssociative.
// Complexity: O(n³) for the associativity check.
func New[E comparable](elems []E, op func(a, b E) E) (*Group[E], error) {
	n := len(elems)
	if n == 0 {
		return nil, ErrEmpty
	}
	g := &Group[E]{
		elems: append([]E(nil), elems...),
		index: make(map[E]int, n),
		table: make([][]int, n),
	}
	for i, e := range g.elems {
		if _, dup := g.index[e]; dup {
			return nil, fmt.Errorf("%w: %v", ErrDuplicate, e)
		}
		g.index[e] = i
	}
	for i, a := range g.elems {
		g.table[i] = make([]int, n)
		for j, b := range g.elems {
			k, ok := g.index[op(a, b)]
			if !ok {
				return nil, fmt.Errorf("%w: %v·%v = %v", ErrNotClosed, a, b, op(a, b))
			}
			g.table[i][j] = k
		}
	}
	if err := g.findIdentity(); err != nil {
		return nil, err
	}
	if err := g.findInverses(); err != nil {
		return nil, err
	}
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			for c := 0; c < n; c++ {
				if g.table[g.table[a][b]][c] != g.table[a][g.table[b][c]] {
					return nil, fmt.Errorf("%w: (%v,%v,%v)", ErrNotAssociative, g.elems[a], g.elems[b], g.elems[c])
				}
			}
		}
	}
	return g, nil
}

func (g *Group[E]) findIdentity() error {
outer:
	for i := range g.elems {
		for j := range g.elems {
			if g.table[i][j] != j || g.table[j][i] != j {
				continue outer
			}
		}
		g.identity = i
		return nil
	}
	return ErrNoIdentity
}

func (g *Group[E]) findInverses() error {
	g.inverse = make([]int, len(g.elems))
	for i := range g.elems {
		found := false
		for j := range g.elems {
			if g.table[i][j] == g.identity && g.table[j][i] == g.identity {
				g.inverse[i], found = j, true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %v", ErrNoInverse, g.elems[i])
		}
	}
	return nil
}

// Order returns the number of elements.
func (g *Group[E]) Order() int { return len(g.elems) }

// Elements returns the elements in construction order.
func (g *Group[E]) Elements() []E { return append([]E(nil), g.elems...) }

// Identity returns the identity element.
func (g *Group[E]) Identity() E { return g.elems[g.identity] }

// Contains reports whether e belongs to g.
func (g *Group[E]) Contains(e E) bool {
	_, ok := g.index[e]
	return ok
}

// Op returns a·b. Both must belong to g.
func (g *Group[E]) Op(a, b E) E {
	return g.elems[g.table[g.index[a]][g.index[b]]]
}

// Inverse returns the inverse of e, which must belong to g.
func (g *Group[E]) Inverse(e E) E {
	return g.elems[g.inverse[g.index[e]]]
}

// ElementOrder returns the smallest k > 0 with e^k = identity.
func (g *Group[E]) ElementOrder(e E) int {
	i := g.index[e]
	k, cur := 1, i
	for cur != g.identity {
		cur = g.table[cur][i]
		k++
	}
	return k
}

// Cayley returns the Cayley table: cell (x,y) holds row·column, that is
// Elements()[y]·Elements()[x].
func (g *Group[E]) Cayley() *grid.Grid[E] {
	n := len(g.elems)
	rows := make([][]E, n)
	for i := range rows {
		rows[i] = make([]E, n)
		for j := range rows[i] {
			rows[i][j] = g.elems[g.table[i][j]]
		}
	}
	t, _ := grid.FromRows(rows)
	return t
}

// IsSubgroup reports whether subset is a subgroup of g. The subset must
// contain the identity and be closed under the operation; finiteness makes
// inverses automatic.
func (g *Group[E]) IsSubgroup(subset []E) bool {
	in := make([]bool, len(g.elems))
	for _, e := range subset {
		i, ok := g.index[e]
		if !ok {
			return false
		}
		in[i] = true
	}
	if !in[g.identity] {
		return false
	}
	for i := range in {
		if !in[i] {
			continue
		}
		for j := range in {
			if in[j] && !in[g.table[i][j]] {
				return false
			}
		}
	}
	return true
}

// Subgroup returns the group formed by subset with the inherited
// operation. Returns ErrNotClosed when subset is not a subgroup.
func (g *Group[E]) Subgroup(subset []E) (*Group[E], error) {
	if !g.IsSubgroup(subset) {
		return nil, fmt.Errorf("%w: %v is not a subgroup", ErrNotClosed, subset)
	}
	return New(subset, g.Op)
}

// Generated returns the smallest subgroup containing gens, in order of
// discovery starting with the identity.
func (g *Group[E]) Generated(gens ...E) []E {
	seen := map[int]bool{g.identity: true}
	queue := []int{g.identity}
	for qi := 0; qi < len(queue); qi++ {
		for _, s := range gens {
			k := g.table[queue[qi]][g.index[s]]
			if !seen[k] {
				seen[k] = true
				queue = append(queue, k)
			}
		}
	}
	out := make([]E, len(queue))
	for i, k := range queue {
		out[i] = g.elems[k]
	}
	return out
}

// ProperSubgroups enumerates the subgroups other than the trivial group
// and g itself, ordered by size and then by element order in g.
// Subsets are tried only for sizes dividing Order().
// Complexity: exponential in Order(); meant for small groups.
func (g *Group[E]) ProperSubgroups() [][]E {
	n := len(g.elems)
	var others []int
	for i := 0; i < n; i++ {
		if i != g.identity {
			others = append(others, i)
		}
	}
	var out [][]E
	for size := 2; size < n; size++ {
		if n%size != 0 {
			continue
		}
		combinations(others, size-1, func(pick []int) {
			subset := make([]E, 0, size)
			idx := append([]int{g.identity}, pick...)
			slices.Sort(idx)
			for _, i := range idx {
				subset = append(subset, g.elems[i])
			}
			if g.IsSubgroup(subset) {
				out = append(out, subset)
			}
		})
	}
	return out
}

// combinations calls fn with every k-subset of set, in lexicographic order.
func combinations(set []int, k int, fn func([]int)) {
	pick := make([]int, 0, k)
	var rec func(start int)
	rec = func(start int) {
		if len(pick) == k {
			fn(append([]int(nil), pick...))
			return
		}
		for i := start; i <= len(set)-(k-len(pick)); i++ {
			pick = append(pick, set[i])
			rec(i + 1)
			pick = pick[:len(pick)-1]
		}
	}
	rec(0)
}

// D4 returns the symmetry group of the square over symmetry.Element, with
// elements in enumeration order and symmetry.Apply as the operation.
func D4() *Group[symmetry.Element] {
	g, err := New(symmetry.All(), symmetry.Apply)
	if err != nil {
		panic(err) // the table is a constant
	}
	return g
}
