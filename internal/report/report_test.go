package report_test

import (
	"context"
	"strings"
	"testing"

	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/config"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/pipeline"
	"github.com/QuinnBerryman02/TessellatingShapeAutomaton/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func domino(t *testing.T) *pipeline.Result {
	t.Helper()
	defs, err := config.Load("../../definitions/domino.json")
	require.NoError(t, err)
	r, err := pipeline.New(nil, nil).Resolve(context.Background(), defs[0])
	require.NoError(t, err)
	return r
}

// TestFromResult lays out every section.
func TestFromResult(t *testing.T) {
	md, err := report.FromResult(domino(t))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(md, "# domino\n\nDominoes in a herringbone.\n\n```\n##\n```\n"))
	assert.Contains(t, md, "## Neighborhood\n\n```\n..56..\n..56..\n.3114.\n.3224.\n......\n```\n")
	assert.Contains(t, md, "| 2 | FY | (0,1) |\n")
	assert.Contains(t, md, "- basis: (2,-2) (2,2)\n- determinant: 8\n- stabilizer: ID FX\n- basis found by reduction\n")
	assert.Contains(t, md, "| R180 | (1,1) |")
	assert.Contains(t, md, "## Routes\n\n| class | tiles |\n|---|---|\n| ID | (0,0)/ID |\n")
	assert.Contains(t, md, "| R180 | (0,0)/ID -> (0,0)/R180 |\n")
	assert.Contains(t, md, "| R90 | (0,0)/ID -> (-1,-1)/R90 |\n")
	assert.Equal(t, 5, strings.Count(md, "\n## "))
}

// TestMarkdown_NoNeighborhood omits the grid section.
func TestMarkdown_NoNeighborhood(t *testing.T) {
	md := report.Markdown(pipeline.Summarize(domino(t)), "")
	assert.NotContains(t, md, "## Neighborhood")
}

// TestRenderers keeps the text through both renderers.
func TestRenderers(t *testing.T) {
	md, err := report.FromResult(domino(t))
	require.NoError(t, err)

	out, err := report.Plain()(md)
	require.NoError(t, err)
	assert.Equal(t, md, out)

	r, err := report.NewRenderer("notty", 100)
	require.NoError(t, err)
	out, err = r(md)
	require.NoError(t, err)
	assert.Contains(t, out, "domino")
	assert.Contains(t, out, "herringbone")
}
