package insight

// traversalState is the invocation-scoped working memory described in §3's
// "Auxiliary state during traversal". It is owned by one Analyze call and
// discarded when that call returns.
type traversalState struct {
	graph *graphBuilder

	// visited is keyed by symbol identity (nodeID), not node Id, per §3 —
	// for this core the two coincide by construction, since nodeID is
	// derived from the symbol's own display string and location.
	visited map[string]bool

	// invocationOf[method identity] = most recently observed call site for
	// that method, per §3 and the aliasing caveat in §9.
	invocationOf map[string]CallSite

	// virtualExpanded marks methods for which §4.7 has already run, so an
	// override discovered by one pass never re-triggers override
	// resolution on itself (§9, "Override transitive expansion").
	virtualExpanded map[string]bool

	// maxDepth overrides the package-level MaxDepth for this invocation.
	maxDepth int
}

func newTraversalState() *traversalState {
	return &traversalState{
		graph:           newGraphBuilder(),
		visited:         make(map[string]bool),
		invocationOf:    make(map[string]CallSite),
		virtualExpanded: make(map[string]bool),
		maxDepth:        MaxDepth,
	}
}

func (st *traversalState) recordInvocation(method Symbol, call CallSite) {
	st.invocationOf[nodeID(method)] = call
}

func (st *traversalState) invocationFor(method Symbol) (CallSite, bool) {
	call, ok := st.invocationOf[nodeID(method)]
	return call, ok
}
