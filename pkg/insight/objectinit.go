package insight

import "context"

// objectInitializerContribution implements §4.8. ok is false when no
// candidate invocation applies or no initializer is present — the instance
// member is then an unmatched leaf with no outgoing edges. recurse reports
// whether the driver should continue expanding from the returned
// contribution's symbol (false for the literal/complex-expression fallback
// that records the assignment site without chasing a constant).
func objectInitializerContribution(ctx context.Context, oracle Oracle, st *traversalState, f Symbol) (contribution, bool, bool) {
	call, ok := findCandidateInvocation(st, f)
	if !ok {
		return contribution{}, false, false
	}

	if !receiverTypeCompatible(call, f) {
		return contribution{}, false, false
	}

	assignment, ok := oracle.InstanceInitializerFor(ctx, call, f)
	if !ok {
		return contribution{}, false, false
	}

	if assignment.HasAnalyzableValue && assignment.ValueIdentifier != nil && IsAnalyzable(assignment.ValueIdentifier) {
		return contribution{
			symbol:   assignment.ValueIdentifier,
			relation: ObjectInitializer,
			origin:   call.Location,
		}, true, true
	}

	if call.Receiver == nil || !IsAnalyzable(call.Receiver) {
		return contribution{}, false, false
	}
	return contribution{
		symbol:   call.Receiver,
		relation: ObjectInitializer,
		origin:   call.Location,
	}, true, false
}

// findCandidateInvocation scans invocationOf for some call whose method is
// an instance method on f's containing type. Map iteration order is
// unspecified in Go; this core accepts that as the heuristic's own
// ambiguity rather than imposing an artificial tie-break.
func findCandidateInvocation(st *traversalState, f Symbol) (CallSite, bool) {
	for _, call := range st.invocationOf {
		if call.Method == nil || call.Method.IsStatic() {
			continue
		}
		if call.Method.ContainingType() == f.ContainingType() {
			return call, true
		}
	}
	return CallSite{}, false
}

// receiverTypeCompatible implements the virtual-safe guard in §4.8: if the
// receiver's statically-instantiated concrete type is known and differs
// from f's containing type, this branch aborts.
func receiverTypeCompatible(call CallSite, f Symbol) bool {
	if call.ReceiverConcreteType == "" {
		return true
	}
	return call.ReceiverConcreteType == f.ContainingType()
}
