package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/config"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/logging"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// app carries the state shared by every subcommand.
type app struct {
	verbose bool
	plain   bool
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{logger: logging.NewNop()}
	root := &cobra.Command{
		Use:   "tessellate",
		Short: "Resolve and render polyomino tessellations",
		Long: `tessellate reads tessellation definitions (a polyomino and the neighbors
placed around one copy of it), derives the periodic lattice they imply
and renders it.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.logger = logging.NewWriter(cmd.ErrOrStderr(), logging.Level(a.verbose))
		},
	}
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Log engine and lattice details")
	root.PersistentFlags().BoolVar(&a.plain, "plain", false, "Never style output, even on a terminal")

	root.AddCommand(
		newCheckCmd(a),
		newRenderCmd(a),
		newGroupCmd(a),
		newServeCmd(a),
	)
	return root
}

// styled reports whether w is a terminal that should get colors and
// rendered Markdown.
func (a *app) styled(w io.Writer) bool {
	if a.plain {
		return false
	}
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// profile is the color profile for w.
func (a *app) profile(w io.Writer) termenv.Profile {
	if !a.styled(w) {
		return termenv.Ascii
	}
	return termenv.ColorProfile()
}

// paint colors s with hex unless p is Ascii.
func paint(p termenv.Profile, s, hex string) string {
	if p == termenv.Ascii {
		return s
	}
	return termenv.String(s).Foreground(p.Color(hex)).String()
}

// load reads a definition file or every definition of a directory.
func load(path string) ([]config.Definition, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return config.LoadDir(path)
	}
	return config.Load(path)
}
