package csoracle

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// locate finds the 1-based (line, column) of the first occurrence of needle
// inside the named fixture file, relative to this package's testdata root.
func locate(t *testing.T, ws *Workspace, relPath, needle string) (string, int, int) {
	t.Helper()
	abs, err := filepath.Abs(filepath.Join("..", "..", "testdata", "csharp", relPath))
	require.NoError(t, err)

	content, err := os.ReadFile(abs)
	require.NoError(t, err)

	lines := strings.Split(string(content), "\n")
	for i, line := range lines {
		if col := strings.Index(line, needle); col >= 0 {
			return abs, i + 1, col + 1
		}
	}
	t.Fatalf("needle %q not found in %s", needle, relPath)
	return abs, 0, 0
}

func TestSymbolAt_ResolvesLocalVariable(t *testing.T) {
	ws := loadFixtureWorkspace(t)
	oracle := ws.NewOracle()

	path, line, col := locate(t, ws, "scenario1.cs", "int r = Method")
	// "int r = Method..." -> r starts right after "int "
	col += len("int ")

	sym, ok := oracle.SymbolAt(context.Background(), path, line, col)
	require.True(t, ok)
	assert.Equal(t, "r", sym.Name())
}

func TestSymbolAt_ResolvesMethodDeclaration(t *testing.T) {
	ws := loadFixtureWorkspace(t)
	oracle := ws.NewOracle()

	path, line, col := locate(t, ws, "scenario1.cs", "static int Method(")
	col += len("static int ")

	sym, ok := oracle.SymbolAt(context.Background(), path, line, col)
	require.True(t, ok)
	assert.Equal(t, "Method", sym.Name())
}

func TestWriteSites_LocalInitialization(t *testing.T) {
	ws := loadFixtureWorkspace(t)
	oracle := ws.NewOracle()

	path, line, col := locate(t, ws, "scenario1.cs", "int r = Method")
	col += len("int ")

	sym, ok := oracle.SymbolAt(context.Background(), path, line, col)
	require.True(t, ok)

	sites := oracle.WriteSites(context.Background(), sym)
	require.NotEmpty(t, sites)
	assert.Equal(t, "Initialization", string(sites[0].Relation))
	require.NotNil(t, sites[0].RHS)

	idents := sites[0].RHS.Identifiers()
	var names []string
	for _, id := range idents {
		names = append(names, id.Name())
	}
	assert.Contains(t, names, "c")
	assert.Contains(t, names, "d")

	invocations := sites[0].RHS.Invocations()
	require.Len(t, invocations, 1)
	assert.Equal(t, "Method", invocations[0].Method.Name())
	require.Len(t, invocations[0].Arguments, 3)
	assert.Equal(t, "a", invocations[0].Arguments[0].DirectIdentifier.Name())
	assert.Equal(t, "b", invocations[0].Arguments[1].DirectIdentifier.Name())
	assert.Equal(t, "c", invocations[0].Arguments[2].DirectIdentifier.Name())
}

func TestReturnExpressions_BinaryReturn(t *testing.T) {
	ws := loadFixtureWorkspace(t)
	oracle := ws.NewOracle()

	path, line, col := locate(t, ws, "scenario1.cs", "static int Method(")
	col += len("static int ")

	methodSym, ok := oracle.SymbolAt(context.Background(), path, line, col)
	require.True(t, ok)

	rhses, ok := oracle.ReturnExpressions(context.Background(), methodSym)
	require.True(t, ok)
	require.Len(t, rhses, 1)

	idents := rhses[0].Identifiers()
	require.Len(t, idents, 1)
	assert.Equal(t, "t2", idents[0].Name())
}

func TestOverrideSiblings_ResolvesOverride(t *testing.T) {
	ws := loadFixtureWorkspace(t)
	oracle := ws.NewOracle()

	path, line, col := locate(t, ws, "overrides.cs", "public virtual double GetArea")
	col += len("public virtual double ")

	base, ok := oracle.SymbolAt(context.Background(), path, line, col)
	require.True(t, ok)

	siblings := oracle.OverrideSiblings(context.Background(), base)
	require.Len(t, siblings, 2, "both the direct override and the grandchild override must be reachable from the root")

	var names []string
	for _, s := range siblings {
		names = append(names, s.ContainingType())
	}
	assert.Contains(t, names, "Rectangle")
	assert.Contains(t, names, "Square", "Square.GetArea overrides Rectangle.GetArea, not Shape.GetArea directly, but still belongs to Shape's chain")
}

func TestOverrideSiblings_FromMidChainReachesWholeChain(t *testing.T) {
	ws := loadFixtureWorkspace(t)
	oracle := ws.NewOracle()

	path, line, col := locate(t, ws, "overrides.cs", "public override double GetArea")
	col += len("public override double ")

	mid, ok := oracle.SymbolAt(context.Background(), path, line, col)
	require.True(t, ok)
	require.Equal(t, "Rectangle", mid.ContainingType())

	siblings := oracle.OverrideSiblings(context.Background(), mid)
	require.Len(t, siblings, 2, "querying from a non-root member of the chain must still reach every other member")

	var names []string
	for _, s := range siblings {
		names = append(names, s.ContainingType())
	}
	assert.Contains(t, names, "Shape")
	assert.Contains(t, names, "Square")
}
