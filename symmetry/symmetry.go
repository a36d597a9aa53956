package symmetry

import (
	"errors"
	"fmt"
	"strings"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/geometry"
)

// ErrUnknownElement is returned by Parse for an unrecognised label.
var ErrUnknownElement = errors.New("symmetry: unknown element")

// Element is one of the eight symmetries of the square.
type Element uint8

// The eight elements in enumeration order. Order matters: self-symmetry
// sets, favored choices and canonical labels all iterate in this order.
const (
	Identity Element = iota
	Rot90
	Rot180
	Rot270
	FlipX
	FlipY
	DiagTR
	DiagTL
)

// Order is the number of elements of D4.
const Order = 8

var labels = [Order]string{"ID", "R90", "R180", "R270", "FX", "FY", "TR", "TL"}

var longLabels = [Order]string{"identity", "rot90", "rot180", "rot270", "flipx", "flipy", "diagtr", "diagtl"}

// table[a][b] is Apply(a, b).
var table = [Order][Order]Element{
	Identity: {Identity, Rot90, Rot180, Rot270, FlipX, FlipY, DiagTR, DiagTL},
	Rot90:    {Rot90, Rot180, Rot270, Identity, DiagTL, DiagTR, FlipX, FlipY},
	Rot180:   {Rot180, Rot270, Identity, Rot90, FlipY, FlipX, DiagTL, DiagTR},
	Rot270:   {Rot270, Identity, Rot90, Rot180, DiagTR, DiagTL, FlipY, FlipX},
	FlipX:    {FlipX, DiagTR, FlipY, DiagTL, Identity, Rot180, Rot90, Rot270},
	FlipY:    {FlipY, DiagTL, FlipX, DiagTR, Rot180, Identity, Rot270, Rot90},
	DiagTR:   {DiagTR, FlipY, DiagTL, FlipX, Rot270, Rot90, Identity, Rot180},
	DiagTL:   {DiagTL, FlipX, DiagTR, FlipY, Rot90, Rot270, Rot180, Identity},
}

// All returns the eight elements in enumeration order.
func All() []Element {
	return []Element{Identity, Rot90, Rot180, Rot270, FlipX, FlipY, DiagTR, DiagTL}
}

// Valid reports whether e is one of the eight constants.
func (e Element) Valid() bool {
	return e < Order
}

// String returns the short label, e.g. "R90".
func (e Element) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Element(%d)", uint8(e))
	}
	return labels[e]
}

// Parse accepts a short label ("R90") or a long one ("rot90"), case-insensitively.
func Parse(s string) (Element, error) {
	for i := range labels {
		if strings.EqualFold(s, labels[i]) || strings.EqualFold(s, longLabels[i]) {
			return Element(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownElement, s)
}

// MarshalText implements encoding.TextMarshaler.
func (e Element) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownElement, uint8(e))
	}
	return []byte(labels[e]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (e *Element) UnmarshalText(b []byte) error {
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// Apply composes a then b.
func Apply(a, b Element) Element {
	return table[a][b]
}

// Inverse returns the element undoing e.
func Inverse(e Element) Element {
	switch e {
	case Rot90:
		return Rot270
	case Rot270:
		return Rot90
	default:
		return e
	}
}

// SwapsAxes reports whether e exchanges width and height of a grid.
func (e Element) SwapsAxes() bool {
	switch e {
	case Rot90, Rot270, DiagTR, DiagTL:
		return true
	}
	return false
}

// TransformPoint applies the linear map of e to p.
func TransformPoint(p geometry.Point, e Element) geometry.Point {
	x, y := p.X, p.Y
	switch e {
	case Rot90:
		return geometry.Pt(-y, x)
	case Rot180:
		return geometry.Pt(-x, -y)
	case Rot270:
		return geometry.Pt(y, -x)
	case FlipX:
		return geometry.Pt(-x, y)
	case FlipY:
		return geometry.Pt(x, -y)
	case DiagTR:
		return geometry.Pt(-y, -x)
	case DiagTL:
		return geometry.Pt(y, x)
	default:
		return p
	}
}
