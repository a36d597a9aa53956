// Package report formats resolved tessellations as Markdown and renders
// them for the terminal with glamour.
package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/pipeline"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/symmetry"
	"github.com/charmbracelet/glamour"
)

// Markdown describes sum. A non-empty neighborhood, the printed working
// grid of the engine, is included as a code block.
func Markdown(sum pipeline.Summary, neighborhood string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", sum.Name)
	if sum.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", sum.Description)
	}
	b.WriteString("```\n" + strings.Join(sum.Shape, "\n") + "\n```\n\n")

	if neighborhood != "" {
		b.WriteString("## Neighborhood\n\n```\n" + neighborhood + "```\n\n")
	}

	b.WriteString("## Grammar\n\n| code | symmetry | offset |\n|---|---|---|\n")
	for _, r := range sum.Grammar {
		fmt.Fprintf(&b, "| %d | %v | %v |\n", r.Code, r.Sym, r.Point)
	}

	b.WriteString("\n## Lattice\n\n")
	fmt.Fprintf(&b, "- basis: %v %v\n", sum.Basis[0], sum.Basis[1])
	fmt.Fprintf(&b, "- determinant: %d\n", sum.Det)
	fmt.Fprintf(&b, "- stabilizer: %s\n", labels(sum.Stabilizer))
	if sum.Reduced {
		b.WriteString("- basis found by reduction\n")
	}

	b.WriteString("\n## Classes\n\n| class | offset | neighbors |\n|---|---|---|\n")
	for _, c := range sum.Classes {
		fmt.Fprintf(&b, "| %v | %v | %s |\n", c.Symmetry, c.Offset, strings.Join(c.Neighbors, " "))
	}
	return b.String()
}

func labels(es []symmetry.Element) string {
	parts := make([]string, len(es))
	for i, e := range es {
		parts[i] = e.String()
	}
	return strings.Join(parts, " ")
}

// FromResult is Markdown for a freshly resolved tessellation, followed by
// the route from the main tile to each class.
func FromResult(r *pipeline.Result) (string, error) {
	var buf bytes.Buffer
	if err := r.Setup.Print(&buf); err != nil {
		return "", fmt.Errorf("failed to print neighborhood: %w", err)
	}
	routes, err := r.Routes()
	if err != nil {
		return "", fmt.Errorf("failed to trace routes: %w", err)
	}

	var b strings.Builder
	b.WriteString(Markdown(pipeline.Summarize(r), buf.String()))
	b.WriteString("\n## Routes\n\n| class | tiles |\n|---|---|\n")
	for _, k := range r.Lattice.Classes() {
		steps := make([]string, len(routes[k]))
		for i, n := range routes[k] {
			steps[i] = n.String()
		}
		fmt.Fprintf(&b, "| %v | %s |\n", k, strings.Join(steps, " -> "))
	}
	return b.String(), nil
}

// Renderer turns Markdown into terminal output.
type Renderer func(markdown string) (string, error)

// Plain returns the Markdown unchanged.
func Plain() Renderer {
	return func(markdown string) (string, error) { return markdown, nil }
}

// NewRenderer returns a glamour renderer. An empty style detects a light
// or dark background; width zero disables wrapping.
func NewRenderer(style string, width int) (Renderer, error) {
	opts := []glamour.TermRendererOption{glamour.WithWordWrap(width)}
	if style == "" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStandardStyle(style))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	return r.Render, nil
}
