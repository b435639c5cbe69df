package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParameterArgument_NoKnownCallSite(t *testing.T) {
	st := newTraversalState()
	m := method("M", 1, true)
	p := sym(Parameter, "p", 1)
	p.method = m
	m.params = []Symbol{p}

	_, ok := parameterArgument(st, m, p)
	assert.False(t, ok)
}

func TestParameterArgument_OutOfRangeIndexSkipped(t *testing.T) {
	st := newTraversalState()
	m := method("M", 1, true)
	p := sym(Parameter, "p", 1)
	p.method = m
	m.params = []Symbol{p}

	st.recordInvocation(m, CallSite{Method: m, Arguments: nil})

	_, ok := parameterArgument(st, m, p)
	assert.False(t, ok)
}

func TestParameterArgument_DirectIdentifier(t *testing.T) {
	st := newTraversalState()
	m := method("M", 1, true)
	p := sym(Parameter, "p", 1)
	p.method = m
	m.params = []Symbol{p}
	arg := sym(LocalVariable, "arg", 1)

	st.recordInvocation(m, CallSite{Method: m, Arguments: []Argument{{DirectIdentifier: arg}}})

	c, ok := parameterArgument(st, m, p)
	require.True(t, ok)
	assert.True(t, c.symbol.Equal(arg))
	assert.Equal(t, ParameterMapping, c.relation)
}

func TestParameterArgument_FallsBackToFirstAnalyzableDescendant(t *testing.T) {
	st := newTraversalState()
	m := method("M", 1, true)
	p := sym(Parameter, "p", 1)
	p.method = m
	m.params = []Symbol{p}
	inner := sym(LocalVariable, "inner", 1)

	st.recordInvocation(m, CallSite{Method: m, Arguments: []Argument{{FirstAnalyzableDescendant: inner}}})

	c, ok := parameterArgument(st, m, p)
	require.True(t, ok)
	assert.True(t, c.symbol.Equal(inner))
}

func TestParameterArgument_LiteralArgumentYieldsNoMapping(t *testing.T) {
	st := newTraversalState()
	m := method("M", 1, true)
	p := sym(Parameter, "p", 1)
	p.method = m
	m.params = []Symbol{p}

	st.recordInvocation(m, CallSite{Method: m, Arguments: []Argument{{}}})

	_, ok := parameterArgument(st, m, p)
	assert.False(t, ok)
}
