package lattice_test

import (
	"fmt"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/lattice"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/setup"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/shape"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
)

// ExampleNew derives the lattice of the L-tromino tiling in which every
// second row is reflected.
func ExampleNew() {
	s := shape.MustParse("#.", "##")
	st, _ := setup.New(s)
	for _, p := range []struct {
		e  symmetry.Element
		at geometry.Point
	}{
		{symmetry.Identity, geometry.Pt(0, 2)},
		{symmetry.Identity, geometry.Pt(4, 2)},
		{symmetry.Rot90, geometry.Pt(2, 1)},
		{symmetry.Rot90, geometry.Pt(4, 1)},
		{symmetry.Rot90, geometry.Pt(2, 4)},
		{symmetry.Rot90, geometry.Pt(4, 4)},
	} {
		st.AddShape(p.e, p.at)
	}
	g, err := st.Grammar()
	if err != nil {
		fmt.Println(err)
		return
	}

	tess, err := lattice.New(s, g)
	if err != nil {
		fmt.Println(err)
		return
	}
	b1, b2 := tess.Basis()
	fmt.Println("basis", b1, b2, "det", tess.Det())
	for _, k := range tess.Classes() {
		off, _ := tess.Offset(k)
		fmt.Println(k, off, tess.VirtualNeighbors(k))
	}
	// Output:
	// basis (0,-3) (2,0) det 6
	// ID (0,0) [(0,-1)/ID (0,1)/ID (0,-1)/FY (0,0)/FY (-1,-1)/FY (-1,0)/FY]
	// FY (1,0) [(0,-1)/FY (0,1)/FY (0,0)/ID (0,1)/ID (1,0)/ID (1,1)/ID]
}
