package insight

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func instanceMethod(name, containingType string) *fakeSymbol {
	m := method(name, 1, false)
	m.containingType = containingType
	return m
}

func TestFindCandidateInvocation_MatchesByContainingType(t *testing.T) {
	st := newTraversalState()
	width := sym(Field, "Width", 1)
	width.containingType = "Rectangle"

	getArea := instanceMethod("GetArea", "Rectangle")
	call := CallSite{Method: getArea}
	st.recordInvocation(getArea, call)

	got, ok := findCandidateInvocation(st, width)
	require.True(t, ok)
	assert.True(t, got.Method.Equal(getArea))
}

func TestFindCandidateInvocation_IgnoresStaticCalls(t *testing.T) {
	st := newTraversalState()
	width := sym(Field, "Width", 1)
	width.containingType = "Rectangle"

	staticMethod := instanceMethod("StaticHelper", "Rectangle")
	staticMethod.static = true
	st.recordInvocation(staticMethod, CallSite{Method: staticMethod})

	_, ok := findCandidateInvocation(st, width)
	assert.False(t, ok)
}

func TestReceiverTypeCompatible(t *testing.T) {
	radius := sym(Field, "Radius", 1)
	radius.containingType = "Circle"

	assert.True(t, receiverTypeCompatible(CallSite{}, radius), "unknown concrete type is permissive")
	assert.True(t, receiverTypeCompatible(CallSite{ReceiverConcreteType: "Circle"}, radius))
	assert.False(t, receiverTypeCompatible(CallSite{ReceiverConcreteType: "Rectangle"}, radius), "type guard rejects mismatched concrete type")
}

func TestObjectInitializerContribution_AnalyzableValueRecurses(t *testing.T) {
	st := newTraversalState()
	receiver := sym(LocalVariable, "s", 1)
	width := sym(Field, "Width", 1)
	width.containingType = "Rectangle"
	getArea := instanceMethod("GetArea", "Rectangle")
	call := CallSite{Method: getArea, Receiver: receiver, ReceiverConcreteType: "Rectangle"}
	st.recordInvocation(getArea, call)

	someName := sym(LocalVariable, "someName", 1)
	oracle := newFakeOracle(nil)
	oracle.initializers[width] = MemberAssignment{
		Member:             width,
		ValueIdentifier:    someName,
		HasAnalyzableValue: true,
	}

	c, ok, recurse := objectInitializerContribution(context.Background(), oracle, st, width)
	require.True(t, ok)
	assert.True(t, recurse)
	assert.True(t, c.symbol.Equal(someName))
	assert.Equal(t, ObjectInitializer, c.relation)
}

func TestObjectInitializerContribution_LiteralValueRecordsReceiverWithoutRecursing(t *testing.T) {
	st := newTraversalState()
	receiver := sym(LocalVariable, "s", 1)
	height := sym(Field, "Height", 1)
	height.containingType = "Rectangle"
	getArea := instanceMethod("GetArea", "Rectangle")
	call := CallSite{Method: getArea, Receiver: receiver, ReceiverConcreteType: "Rectangle"}
	st.recordInvocation(getArea, call)

	oracle := newFakeOracle(nil)
	oracle.initializers[height] = MemberAssignment{Member: height, HasAnalyzableValue: false}

	c, ok, recurse := objectInitializerContribution(context.Background(), oracle, st, height)
	require.True(t, ok)
	assert.False(t, recurse)
	assert.True(t, c.symbol.Equal(receiver))
}

func TestObjectInitializerContribution_TypeGuardRejectsMismatchedReceiver(t *testing.T) {
	st := newTraversalState()
	radius := sym(Field, "Radius", 1)
	radius.containingType = "Circle"
	getArea := instanceMethod("GetArea", "Circle")
	call := CallSite{Method: getArea, ReceiverConcreteType: "Rectangle"}
	st.recordInvocation(getArea, call)

	oracle := newFakeOracle(nil)

	_, ok, _ := objectInitializerContribution(context.Background(), oracle, st, radius)
	assert.False(t, ok)
}

func TestObjectInitializerContribution_NoCandidateInvocation(t *testing.T) {
	st := newTraversalState()
	orphanField := sym(Field, "Orphan", 1)
	orphanField.containingType = "Nowhere"

	oracle := newFakeOracle(nil)

	_, ok, _ := objectInitializerContribution(context.Background(), oracle, st, orphanField)
	assert.False(t, ok)
}
