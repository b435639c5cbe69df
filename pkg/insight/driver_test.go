package insight

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hasNode(g *VariableInsightGraph, s Symbol) (*InsightNode, bool) {
	id := nodeID(s)
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return nil, false
}

func hasEdge(g *VariableInsightGraph, from, to Symbol, relation Relation) bool {
	n, ok := hasNode(g, from)
	if !ok {
		return false
	}
	targetID := nodeID(to)
	for _, e := range n.Edges {
		if e.Target.ID == targetID && e.Relation == relation {
			return true
		}
	}
	return false
}

// TestAnalyze_S1_MethodParameterMapping reproduces spec scenario S1: selecting
// r in
//
//	int a=2; int b=3; int c=4; int d=5;
//	int r = Method(a,b,c) + c + d;
//	static int Method(int p1,int p2,int p3){
//	  G = p1*p2*p3; int t1 = p2*4; int t2 = p2*5; return t2*2; }
func TestAnalyze_S1_MethodParameterMapping(t *testing.T) {
	a := sym(LocalVariable, "a", 1)
	b := sym(LocalVariable, "b", 1)
	c := sym(LocalVariable, "c", 1)
	d := sym(LocalVariable, "d", 1)
	r := sym(LocalVariable, "r", 2)

	methodSym := method("Method", 3, true)
	p1 := sym(Parameter, "p1", 3)
	p1.method = methodSym
	p2 := sym(Parameter, "p2", 3)
	p2.method = methodSym
	p3 := sym(Parameter, "p3", 3)
	p3.method = methodSym
	methodSym.params = []Symbol{p1, p2, p3}

	t2 := sym(LocalVariable, "t2", 4)

	oracle := newFakeOracle(r)
	callLoc := Location{File: "Fixture.cs", Line: 2, Column: 9}
	oracle.writeSites[r] = []WriteSite{{
		Relation: Initialization,
		Location: callLoc,
		RHS: fakeRHS{
			idents: []Symbol{c, d},
			invocations: []CallSite{{
				Method: methodSym,
				Arguments: []Argument{
					{DirectIdentifier: a},
					{DirectIdentifier: b},
					{DirectIdentifier: c},
				},
				Location: callLoc,
			}},
		},
	}}
	oracle.returns[methodSym] = []RHSExpression{fakeRHS{idents: []Symbol{t2}}}
	oracle.writeSites[t2] = []WriteSite{{
		Relation: Initialization,
		RHS:      fakeRHS{idents: []Symbol{p2}},
	}}

	g, ok := Analyze(context.Background(), oracle, "Fixture.cs", 2, 5)
	require.True(t, ok)

	assert.True(t, hasEdge(g, r, methodSym, Initialization))
	assert.True(t, hasEdge(g, r, c, Initialization))
	assert.True(t, hasEdge(g, r, d, Initialization))
	assert.True(t, hasEdge(g, methodSym, t2, ReturnContributor))
	assert.True(t, hasEdge(g, t2, p2, Initialization))
	assert.True(t, hasEdge(g, p2, b, ParameterMapping))

	_, aPresent := hasNode(g, a)
	assert.False(t, aPresent, "a must not appear in the graph")
}

// TestAnalyze_S5_VisitedSetTermination reproduces S5: `int x = 1; x = x + 1;
// x = x * 2;` — expanding x must visit x exactly once and never add x as its
// own contributor.
func TestAnalyze_S5_VisitedSetTermination(t *testing.T) {
	x := sym(LocalVariable, "x", 1)

	oracle := newFakeOracle(x)
	oracle.writeSites[x] = []WriteSite{
		{Relation: Initialization, RHS: fakeRHS{}},
		{Relation: Assignment, RHS: fakeRHS{idents: []Symbol{x}}},
		{Relation: Assignment, RHS: fakeRHS{idents: []Symbol{x}}},
	}

	g, ok := Analyze(context.Background(), oracle, "Fixture.cs", 1, 5)
	require.True(t, ok)

	assert.Len(t, g.Nodes, 1, "x must not appear as its own contributor")
	assert.Empty(t, g.Root.Edges)
}

// TestAnalyze_S6_ExpressionBodiedMethod reproduces S6: `int Square(int n) =>
// n * n; int y = Square(5);` — selecting y requires y->Square [Init] and
// Square->n [ReturnContributor]; n gets no parameter mapping because the
// argument is a literal.
func TestAnalyze_S6_ExpressionBodiedMethod(t *testing.T) {
	squareSym := method("Square", 1, true)
	n := sym(Parameter, "n", 1)
	n.method = squareSym
	squareSym.params = []Symbol{n}

	y := sym(LocalVariable, "y", 2)

	oracle := newFakeOracle(y)
	oracle.writeSites[y] = []WriteSite{{
		Relation: Initialization,
		RHS: fakeRHS{
			invocations: []CallSite{{
				Method:    squareSym,
				Arguments: []Argument{{}}, // literal 5: no bound identifier
			}},
		},
	}}
	oracle.returns[squareSym] = []RHSExpression{fakeRHS{idents: []Symbol{n}}}

	g, ok := Analyze(context.Background(), oracle, "Fixture.cs", 2, 5)
	require.True(t, ok)

	assert.True(t, hasEdge(g, y, squareSym, Initialization))
	assert.True(t, hasEdge(g, squareSym, n, ReturnContributor))

	nNode, ok := hasNode(g, n)
	require.True(t, ok)
	assert.Empty(t, nNode.Edges, "literal argument yields no parameter mapping")
}

// TestAnalyze_UnanalyzableSelection covers §7's "unanalyzable selection"
// taxonomy entry: analyze returns no graph, not a partial one.
func TestAnalyze_UnanalyzableSelection(t *testing.T) {
	oracle := newFakeOracle(nil)
	g, ok := Analyze(context.Background(), oracle, "Fixture.cs", 1, 1)
	assert.False(t, ok)
	assert.Nil(t, g)
}

// TestAnalyze_OverrideFanOut reproduces the shape of S2: a virtual method's
// siblings are reachable via Override edges and each override's own return
// contributors still expand underneath it.
func TestAnalyze_OverrideFanOut(t *testing.T) {
	base := method("Shape.GetArea", 1, false)
	base.virtual = true
	base.containingType = "Shape"

	rectArea := method("Rectangle.GetArea", 2, false)
	rectArea.override = true
	rectArea.base = base
	rectArea.containingType = "Rectangle"

	width := sym(Field, "Width", 2)
	width.containingType = "Rectangle"

	oracle := newFakeOracle(base)
	oracle.overrides[base] = []Symbol{rectArea}
	oracle.returns[rectArea] = []RHSExpression{fakeRHS{idents: []Symbol{width}}}

	g, ok := Analyze(context.Background(), oracle, "Fixture.cs", 1, 1)
	require.True(t, ok)

	assert.True(t, hasEdge(g, base, rectArea, Override))
	assert.True(t, hasEdge(g, rectArea, width, ReturnContributor))
}

// TestAnalyze_OverrideFanOut_StartingMidChain guards against §4.7 step 3's
// chain lookup using the symbol under the cursor instead of its resolved
// base: the oracle only knows siblings keyed by the chain root, so the
// driver must resolve to base before asking for them even when the cursor
// starts on a method in the middle of a three-level chain.
func TestAnalyze_OverrideFanOut_StartingMidChain(t *testing.T) {
	base := method("Shape.GetArea", 1, false)
	base.virtual = true
	base.containingType = "Shape"

	mid := method("Rectangle.GetArea", 2, false)
	mid.override = true
	mid.base = base
	mid.containingType = "Rectangle"

	leaf := method("Square.GetArea", 3, false)
	leaf.override = true
	leaf.base = mid
	leaf.containingType = "Square"

	oracle := newFakeOracle(mid)
	oracle.overrides[base] = []Symbol{mid, leaf}

	g, ok := Analyze(context.Background(), oracle, "Fixture.cs", 1, 1)
	require.True(t, ok)

	assert.True(t, hasEdge(g, mid, leaf, Override),
		"expanding from mid-chain must still resolve siblings by chain root")
	assert.False(t, hasEdge(g, mid, mid, Override), "the symbol under the cursor must never gain a self Override edge")
}
