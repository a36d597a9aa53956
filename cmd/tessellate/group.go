package main

import (
	"fmt"
	"io"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/grid"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/group"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/render"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
	"github.com/spf13/cobra"
)

func newGroupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "group",
		Short: "Print the symmetry group of the square",
		Long: `Group prints the Cayley table of the eight symmetries of the square, where
row a and column b hold "a then b", followed by its proper subgroups.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printGroup(cmd.OutOrStdout(), a)
		},
	}
}

func printGroup(w io.Writer, a *app) error {
	d4 := group.D4()
	palette := render.Palette(d4.Order())
	colors := make(map[symmetry.Element]string, d4.Order())
	for i, e := range d4.Elements() {
		colors[e] = render.Hex(palette[i])
	}

	fmt.Fprintf(w, "%-6s", "")
	for _, e := range d4.Elements() {
		fmt.Fprintf(w, "%-6s", e)
	}
	fmt.Fprintln(w)

	rows := d4.Cayley().Rows()
	for y, e := range d4.Elements() {
		fmt.Fprintf(w, "%-6s", e)
		row, err := grid.FromRows([][]symmetry.Element{rows[y]})
		if err != nil {
			return err
		}
		if err := row.PrintColored(w, a.profile(w),
			func(v symmetry.Element) string { return fmt.Sprintf("%-6s", v) },
			func(v symmetry.Element) string { return colors[v] }); err != nil {
			return err
		}
	}

	fmt.Fprintln(w, "\nproper subgroups:")
	for _, sub := range d4.ProperSubgroups() {
		fmt.Fprintf(w, "  order %d: %v\n", len(sub), sub)
	}
	return nil
}
