package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractContributors_IdentifiersBeforeInvocationMethods(t *testing.T) {
	st := newTraversalState()
	a := sym(LocalVariable, "a", 1)
	callee := method("Callee", 1, true)

	rhs := fakeRHS{
		idents:      []Symbol{a},
		invocations: []CallSite{{Method: callee}},
	}

	out := extractContributors(st, rhs)

	assert.Len(t, out, 2)
	assert.True(t, out[0].symbol.Equal(a))
	assert.True(t, out[1].symbol.Equal(callee))
}

func TestExtractContributors_RecordsInvocationOf(t *testing.T) {
	st := newTraversalState()
	callee := method("Callee", 1, true)
	call := CallSite{Method: callee, Location: Location{File: "Fixture.cs", Line: 5}}

	extractContributors(st, fakeRHS{invocations: []CallSite{call}})

	got, ok := st.invocationFor(callee)
	assert.True(t, ok)
	assert.Equal(t, call.Location, got.Location)
}

func TestExtractContributors_InvocationOfOverwritesOnRepeat(t *testing.T) {
	st := newTraversalState()
	callee := method("Callee", 1, true)
	first := CallSite{Method: callee, Location: Location{File: "Fixture.cs", Line: 5}}
	second := CallSite{Method: callee, Location: Location{File: "Fixture.cs", Line: 9}}

	extractContributors(st, fakeRHS{invocations: []CallSite{first}})
	extractContributors(st, fakeRHS{invocations: []CallSite{second}})

	got, ok := st.invocationFor(callee)
	assert.True(t, ok)
	assert.Equal(t, second.Location, got.Location, "the most recently observed call site wins")
}

func TestExtractContributors_UnanalyzableInvocationTargetSkipped(t *testing.T) {
	st := newTraversalState()
	unanalyzable := &fakeSymbol{kind: Other, name: "dynamic"}

	out := extractContributors(st, fakeRHS{invocations: []CallSite{{Method: unanalyzable}}})

	assert.Empty(t, out)
}

func TestExtractContributors_DedupsAcrossIdentifiersAndInvocations(t *testing.T) {
	st := newTraversalState()
	a := sym(LocalVariable, "a", 1)

	out := extractContributors(st, fakeRHS{idents: []Symbol{a, a}})

	assert.Len(t, out, 1)
}
