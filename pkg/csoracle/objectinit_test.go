package csoracle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBuildObjectInitializer_ResolvesValueInEnclosingMethod reproduces S3:
// `var p = new Person(){ Name = someName };` where someName is a local of
// the surrounding method, not a field of Person. The initializer's
// assignment value must resolve against Run's scope, not Person's own
// field-init scope.
func TestBuildObjectInitializer_ResolvesValueInEnclosingMethod(t *testing.T) {
	ws := loadFixtureWorkspace(t)

	greeter, ok := ws.types["Greeter"]
	require.True(t, ok)
	run := findMethodByName(greeter, "Run")
	require.NotNil(t, run)

	invocations := findAll(run.body, "invocation_expression")
	require.NotEmpty(t, invocations)

	cs, ok := ws.buildCallSite(run, invocations[0])
	require.True(t, ok)
	require.Equal(t, "Greet", cs.Method.Name())
	require.NotNil(t, cs.ReceiverInitializer, "p's object initializer must be attached to the call site")
	assert.Equal(t, "Person", cs.ReceiverInitializer.ConcreteType)

	require.Len(t, cs.ReceiverInitializer.Assignments, 1)
	ma := cs.ReceiverInitializer.Assignments[0]
	assert.Equal(t, "Name", ma.Member.Name())
	require.True(t, ma.HasAnalyzableValue, "someName is a local of Run and must resolve")
	assert.Equal(t, "someName", ma.ValueIdentifier.Name())
}
