package insight

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssignmentContributors_DedupsAcrossWriteSites(t *testing.T) {
	st := newTraversalState()
	s := sym(LocalVariable, "s", 1)
	a := sym(LocalVariable, "a", 1)

	oracle := newFakeOracle(nil)
	oracle.writeSites[s] = []WriteSite{
		{Relation: Initialization, RHS: fakeRHS{idents: []Symbol{a}}},
		{Relation: Assignment, RHS: fakeRHS{idents: []Symbol{a}}},
	}

	got := assignmentContributors(context.Background(), oracle, st, s)

	assert.Len(t, got, 1, "a contributed from two write sites collapses to one edge-to-be")
	assert.Equal(t, Initialization, got[0].relation, "first occurrence wins the relation label")
}

func TestAssignmentContributors_NoWriteSitesIsNotAnError(t *testing.T) {
	st := newTraversalState()
	s := sym(LocalVariable, "s", 1)
	oracle := newFakeOracle(nil)

	got := assignmentContributors(context.Background(), oracle, st, s)

	assert.Empty(t, got)
}

func TestMethodReturnContributors_NoDeclaringSyntax(t *testing.T) {
	st := newTraversalState()
	extern := method("Extern", 1, true)
	oracle := newFakeOracle(nil)
	oracle.noReturnSyn[extern] = true

	_, ok := methodReturnContributors(context.Background(), oracle, st, extern)
	assert.False(t, ok, "extern/metadata-only methods emit no outgoing edges")
}

func TestMethodReturnContributors_DedupsAcrossReturnStatements(t *testing.T) {
	st := newTraversalState()
	m := method("M", 1, true)
	a := sym(LocalVariable, "a", 1)
	oracle := newFakeOracle(nil)
	oracle.returns[m] = []RHSExpression{
		fakeRHS{idents: []Symbol{a}},
		fakeRHS{idents: []Symbol{a}},
	}

	got, ok := methodReturnContributors(context.Background(), oracle, st, m)
	assert.True(t, ok)
	assert.Len(t, got, 1)
	assert.Equal(t, ReturnContributor, got[0].relation)
}
