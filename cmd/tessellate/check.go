package main

import (
	"fmt"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/config"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/pipeline"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/report"
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	var name string
	var brief bool
	cmd := &cobra.Command{
		Use:   "check <file|dir>",
		Short: "Resolve definitions and report their lattices",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defs, err := load(args[0])
			if err != nil {
				return err
			}
			if name != "" {
				d, ok := config.Find(defs, name)
				if !ok {
					return fmt.Errorf("no definition named %q in %s", name, args[0])
				}
				defs = []config.Definition{d}
			}

			out := cmd.OutOrStdout()
			p := a.profile(out)
			ok := paint(p, "ok", "#2a9d8f")
			bad := paint(p, "FAIL", "#e76f51")

			render := report.Plain()
			if a.styled(out) {
				if render, err = report.NewRenderer("", 100); err != nil {
					return err
				}
			}

			pipe := pipeline.New(a.logger, nil)
			failed := 0
			for _, d := range defs {
				r, err := pipe.Resolve(cmd.Context(), d)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s %s: %v\n", bad, d.Name, err)
					continue
				}
				if brief {
					b1, b2 := r.Lattice.Basis()
					fmt.Fprintf(out, "%s %s: basis %v %v det %d\n", ok, d.Name, b1, b2, r.Lattice.Det())
					continue
				}
				md, err := report.FromResult(r)
				if err != nil {
					return err
				}
				text, err := render(md)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, text)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d definitions failed", failed, len(defs))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&name, "name", "n", "", "Only check the named definition")
	cmd.Flags().BoolVar(&brief, "brief", false, "One line per definition instead of a report")
	return cmd
}
