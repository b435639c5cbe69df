package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGraphBuilder_NodeDedupByID(t *testing.T) {
	g := newGraphBuilder()
	a := sym(LocalVariable, "a", 1)

	n1, created1 := g.nodeFor(a)
	n2, created2 := g.nodeFor(a)

	assert.True(t, created1)
	assert.False(t, created2)
	assert.Same(t, n1, n2)
}

func TestGraphBuilder_EdgeDedupByTripleIncludingRelation(t *testing.T) {
	g := newGraphBuilder()
	a := sym(LocalVariable, "a", 1)
	b := sym(LocalVariable, "b", 1)

	na, _ := g.nodeFor(a)
	nb, _ := g.nodeFor(b)

	assert.True(t, g.addEdge(na, nb, Initialization, Location{}))
	assert.False(t, g.addEdge(na, nb, Initialization, Location{}), "duplicate triple must be rejected")
	assert.True(t, g.addEdge(na, nb, Assignment, Location{}), "same pair, different relation, is a distinct edge")

	assert.Len(t, na.Edges, 2)
}

func TestGraphBuilder_Build(t *testing.T) {
	g := newGraphBuilder()
	a := sym(LocalVariable, "a", 1)
	root, _ := g.nodeFor(a)

	built := g.build(root)

	assert.Same(t, root, built.Root)
	assert.Contains(t, built.Nodes, root)
	assert.Equal(t, 0, built.TotalReferences)
}
