package insight

// extractedContributor wraps one contributor symbol. It carries no call-site
// data: extractContributors records invocations into invocationOf itself.
type extractedContributor struct {
	symbol Symbol
}

// extractContributors implements §4.3: given an RHS expression, returns the
// ordered, dedup'd contributor list and records every invocation seen into
// invocationOf (overwriting on repeat, per the aliasing caveat in §9).
//
// The oracle has already done steps 2 and 3 of §4.3 (excluded-region
// computation and identifier binding/filtering) by construction of
// RHSExpression; this function performs steps 4 and 5.
func extractContributors(st *traversalState, rhs RHSExpression) []extractedContributor {
	var ordered []Symbol

	ordered = append(ordered, rhs.Identifiers()...)

	for _, call := range rhs.Invocations() {
		if call.Method == nil || !IsAnalyzable(call.Method) {
			continue
		}
		ordered = append(ordered, call.Method)
		st.recordInvocation(call.Method, call)
	}

	deduped := dedupSymbols(ordered)
	out := make([]extractedContributor, 0, len(deduped))
	for _, s := range deduped {
		out = append(out, extractedContributor{symbol: s})
	}
	return out
}
