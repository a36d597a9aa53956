package render

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Palette returns n colors evenly spaced in HCL hue at fixed chroma and
// luminance, so neighboring tiles stay distinguishable.
func Palette(n int) []color.Color {
	out := make([]color.Color, n)
	for i := range out {
		out[i] = colorful.Hcl(float64(i)*360/float64(n), 0.55, 0.72).Clamped()
	}
	return out
}

// ParseColor parses a #rrggbb (or #rgb) string.
func ParseColor(s string) (color.Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return c, nil
}

// ParsePalette parses every entry with ParseColor.
func ParsePalette(hex []string) ([]color.Color, error) {
	out := make([]color.Color, 0, len(hex))
	for _, h := range hex {
		c, err := ParseColor(h)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// CheckPalette rejects palette entries that match the background, which
// would make painted tiles indistinguishable from empty space.
func CheckPalette(bg color.Color, palette []color.Color) error {
	want := Hex(bg)
	for i, c := range palette {
		if Hex(c) == want {
			return fmt.Errorf("%w: palette entry %d equals the background %s", ErrBadColor, i, want)
		}
	}
	return nil
}

// Hex formats c as #rrggbb. Transparent colors format as "none".
func Hex(c color.Color) string {
	cc, ok := colorful.MakeColor(c)
	if !ok {
		return "none"
	}
	return cc.Hex()
}
