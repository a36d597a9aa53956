package group

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrBadPermutation is returned for malformed one-line notation.
var ErrBadPermutation = errors.New("group: invalid permutation")

// Permutation is a bijection of {1..n}, stored in one-line notation: byte
// i holds the image of i+1. The representation is comparable, so
// permutations can key maps and form a Group.
type Permutation string

// NewPermutation builds the permutation sending i to images[i-1].
// Returns ErrBadPermutation unless images is a rearrangement of 1..n with
// n ≤ 255.
func NewPermutation(images ...int) (Permutation, error) {
	n := len(images)
	if n == 0 || n > 255 {
		return "", fmt.Errorf("%w: degree %d", ErrBadPermutation, n)
	}
	seen := make([]bool, n+1)
	buf := make([]byte, n)
	for i, v := range images {
		if v < 1 || v > n || seen[v] {
			return "", fmt.Errorf("%w: %v", ErrBadPermutation, images)
		}
		seen[v] = true
		buf[i] = byte(v)
	}
	return Permutation(buf), nil
}

// ParsePermutation reads compact one-line notation such as "2341".
// Only degrees up to 9 can be written this way.
func ParsePermutation(s string) (Permutation, error) {
	images := make([]int, 0, len(s))
	for _, r := range s {
		d, err := strconv.Atoi(string(r))
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrBadPermutation, s)
		}
		images = append(images, d)
	}
	return NewPermutation(images...)
}

// Degree returns n.
func (p Permutation) Degree() int { return len(p) }

// Apply returns the image of i; points outside 1..n are fixed.
func (p Permutation) Apply(i int) int {
	if i < 1 || i > len(p) {
		return i
	}
	return int(p[i-1])
}

// Then returns the permutation applying p first, then q. Both must have
// the same degree.
func (p Permutation) Then(q Permutation) Permutation {
	buf := make([]byte, len(p))
	for i := 1; i <= len(p); i++ {
		buf[i-1] = byte(q.Apply(p.Apply(i)))
	}
	return Permutation(buf)
}

// Cycles returns the non-trivial cycles, each starting at its smallest
// point, ordered by that point.
func (p Permutation) Cycles() [][]int {
	seen := make([]bool, len(p)+1)
	var out [][]int
	for i := 1; i <= len(p); i++ {
		if seen[i] || p.Apply(i) == i {
			continue
		}
		var c []int
		for j := i; !seen[j]; j = p.Apply(j) {
			seen[j] = true
			c = append(c, j)
		}
		out = append(out, c)
	}
	return out
}

// String returns cycle notation, e.g. "(1,2,3,4)", or "ID".
func (p Permutation) String() string {
	cycles := p.Cycles()
	if len(cycles) == 0 {
		return "ID"
	}
	var b strings.Builder
	for _, c := range cycles {
		b.WriteByte('(')
		for i, v := range c {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(strconv.Itoa(v))
		}
		b.WriteByte(')')
	}
	return b.String()
}

// Permutations parses each one-line string and builds the group they form
// under Then.
func Permutations(oneLine ...string) (*Group[Permutation], error) {
	perms := make([]Permutation, 0, len(oneLine))
	for _, s := range oneLine {
		p, err := ParsePermutation(s)
		if err != nil {
			return nil, err
		}
		if len(perms) > 0 && p.Degree() != perms[0].Degree() {
			return nil, fmt.Errorf("%w: mixed degrees in %v", ErrBadPermutation, oneLine)
		}
		perms = append(perms, p)
	}
	return New(perms, Permutation.Then)
}
