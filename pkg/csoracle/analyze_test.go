package csoracle

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devlin-oss/varinsight/pkg/insight"
)

// TestAnalyze_EndToEnd exercises scenario1.cs (the tree-sitter-backed
// analogue of S1) through the real Oracle rather than a hand-built fake,
// confirming the parsing and binding layers actually wire together.
func TestAnalyze_EndToEnd(t *testing.T) {
	ws := loadFixtureWorkspace(t)
	oracle := ws.NewOracle()

	path, line, col := locate(t, ws, "scenario1.cs", "int r = Method")
	col += len("int ")

	g, ok := insight.Analyze(context.Background(), oracle, path, line, col)
	require.True(t, ok)
	require.NotNil(t, g.Root)
	assert.Equal(t, "r", g.Root.Name)

	var names []string
	for _, n := range g.Nodes {
		names = append(names, n.Name)
	}
	assert.Contains(t, names, "Method")
	assert.Contains(t, names, "c")
	assert.Contains(t, names, "d")
	assert.NotContains(t, names, "a", "a is only a call argument, not a direct contributor to r")
}
