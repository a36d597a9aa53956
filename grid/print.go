package grid

import (
	"bufio"
	"io"

	"github.com/muesli/termenv"
)

// Print writes g as text, one row per line, each cell rendered by format.
func (g *Grid[T]) Print(w io.Writer, format func(T) string) error {
	return g.PrintColored(w, termenv.Ascii, format, nil)
}

// PrintColored writes g like Print, coloring each cell with the hex color
// returned by color under profile. A nil color, an empty hex or the Ascii
// profile leave the cell uncolored.
func (g *Grid[T]) PrintColored(w io.Writer, profile termenv.Profile, format func(T) string, color func(T) string) error {
	bw := bufio.NewWriter(w)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			v := g.At(x, y)
			cell := format(v)
			if color != nil && profile != termenv.Ascii {
				if hex := color(v); hex != "" {
					cell = termenv.String(cell).Foreground(profile.Color(hex)).String()
				}
			}
			if _, err := bw.WriteString(cell); err != nil {
				return err
			}
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}
