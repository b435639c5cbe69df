package insight

// parameterArgument implements §4.5: when expanding parameter p of method m,
// resolve the argument bound at p's index in the most recently observed call
// site for m. ok is false when there is no known call site, the index is
// out of range, or the argument binds to nothing analyzable.
func parameterArgument(st *traversalState, m, p Symbol) (contribution, bool) {
	call, ok := st.invocationFor(m)
	if !ok {
		return contribution{}, false
	}

	index := parameterIndex(m, p)
	if index < 0 || index >= len(call.Arguments) {
		return contribution{}, false
	}

	arg := call.Arguments[index]
	var sym Symbol
	switch {
	case arg.DirectIdentifier != nil:
		sym = arg.DirectIdentifier
	case arg.FirstAnalyzableDescendant != nil:
		sym = arg.FirstAnalyzableDescendant
	default:
		return contribution{}, false
	}
	if !IsAnalyzable(sym) {
		return contribution{}, false
	}

	return contribution{
		symbol:   sym,
		relation: ParameterMapping,
		origin:   call.Location,
	}, true
}

func parameterIndex(m, p Symbol) int {
	for i, candidate := range m.MethodParameters() {
		if candidate.Equal(p) {
			return i
		}
	}
	return -1
}
