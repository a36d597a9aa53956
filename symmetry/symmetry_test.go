package symmetry_test

import (
	"testing"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestApply_MatchesPointActions checks the table against the point maps
// for every pair of elements.
func TestApply_MatchesPointActions(t *testing.T) {
	samples := []geometry.Point{{X: 3, Y: 7}, {X: -2, Y: 5}, {X: 1, Y: 0}}
	for _, a := range symmetry.All() {
		for _, b := range symmetry.All() {
			ab := symmetry.Apply(a, b)
			for _, p := range samples {
				want := symmetry.TransformPoint(symmetry.TransformPoint(p, a), b)
				assert.Equal(t, want, symmetry.TransformPoint(p, ab), "%v then %v on %v", a, b, p)
			}
		}
	}
}

// TestGroupAxioms covers closure, identity, inverses and associativity.
func TestGroupAxioms(t *testing.T) {
	all := symmetry.All()
	for _, a := range all {
		assert.Equal(t, a, symmetry.Apply(a, symmetry.Identity))
		assert.Equal(t, a, symmetry.Apply(symmetry.Identity, a))

		inv := symmetry.Inverse(a)
		assert.Equal(t, symmetry.Identity, symmetry.Apply(a, inv), "%v", a)
		assert.Equal(t, symmetry.Identity, symmetry.Apply(inv, a), "%v", a)

		count := 0
		for _, b := range all {
			assert.True(t, symmetry.Apply(a, b).Valid())
			if symmetry.Apply(a, b) == symmetry.Identity {
				count++
			}
			for _, c := range all {
				assert.Equal(t,
					symmetry.Apply(symmetry.Apply(a, b), c),
					symmetry.Apply(a, symmetry.Apply(b, c)))
			}
		}
		assert.Equal(t, 1, count, "unique inverse for %v", a)
	}
}

// TestInverse lists the only non-involutions.
func TestInverse(t *testing.T) {
	assert.Equal(t, symmetry.Rot270, symmetry.Inverse(symmetry.Rot90))
	assert.Equal(t, symmetry.Rot90, symmetry.Inverse(symmetry.Rot270))
	for _, e := range []symmetry.Element{symmetry.Identity, symmetry.Rot180, symmetry.FlipX, symmetry.FlipY, symmetry.DiagTR, symmetry.DiagTL} {
		assert.Equal(t, e, symmetry.Inverse(e))
	}
}

// TestParse accepts short and long labels.
func TestParse(t *testing.T) {
	cases := map[string]symmetry.Element{
		"ID": symmetry.Identity, "identity": symmetry.Identity,
		"r90": symmetry.Rot90, "ROT270": symmetry.Rot270,
		"FX": symmetry.FlipX, "diagTL": symmetry.DiagTL,
	}
	for in, want := range cases {
		got, err := symmetry.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := symmetry.Parse("R45")
	assert.ErrorIs(t, err, symmetry.ErrUnknownElement)
}

// TestText round-trips every label through the text interfaces.
func TestText(t *testing.T) {
	for _, e := range symmetry.All() {
		b, err := e.MarshalText()
		require.NoError(t, err)
		var back symmetry.Element
		require.NoError(t, back.UnmarshalText(b))
		assert.Equal(t, e, back)
	}
	assert.Equal(t, "Element(9)", symmetry.Element(9).String())
}

// TestSwapsAxes matches the quarter turns and diagonal flips.
func TestSwapsAxes(t *testing.T) {
	var swapped []symmetry.Element
	for _, e := range symmetry.All() {
		if e.SwapsAxes() {
			swapped = append(swapped, e)
		}
	}
	assert.Equal(t, []symmetry.Element{symmetry.Rot90, symmetry.Rot270, symmetry.DiagTR, symmetry.DiagTL}, swapped)
}
