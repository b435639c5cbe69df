package insight

import "context"

// MaxDepth is the hard traversal depth bound from §4.1. Combined with the
// visited set it guarantees termination; the visited set alone suffices for
// correctness but not for pathological depths in call-heavy code.
const MaxDepth = 15

// Analyze is the entry point from §4.1 and the Driver API in §6:
// analyze(document, position) -> Graph | null. ok is false when the cursor
// does not resolve to an analyzable symbol.
func Analyze(ctx context.Context, oracle Oracle, document string, line, column int) (*VariableInsightGraph, bool) {
	return AnalyzeWithDepth(ctx, oracle, document, line, column, MaxDepth)
}

// AnalyzeWithDepth is Analyze with the traversal depth bound overridden,
// for callers (the CLI's --max-depth flag) that need a different ceiling
// than the package default. maxDepth <= 0 falls back to MaxDepth.
func AnalyzeWithDepth(ctx context.Context, oracle Oracle, document string, line, column, maxDepth int) (*VariableInsightGraph, bool) {
	sym, ok := oracle.SymbolAt(ctx, document, line, column)
	if !ok || !IsAnalyzable(sym) {
		return nil, false
	}

	st := newTraversalState()
	if maxDepth > 0 {
		st.maxDepth = maxDepth
	}
	root, _ := st.graph.nodeFor(sym)
	expand(ctx, oracle, st, sym, root, 0)

	return st.graph.build(root), true
}

// expand is the recursive traversal in §4.1.
func expand(ctx context.Context, oracle Oracle, st *traversalState, s Symbol, n *InsightNode, depth int) {
	if depth > st.maxDepth {
		return
	}
	id := nodeID(s)
	if st.visited[id] {
		return
	}
	st.visited[id] = true

	if ctx != nil {
		select {
		case <-ctx.Done():
			return
		default:
		}
	}

	switch {
	case s.Kind() == Method:
		expandMethod(ctx, oracle, st, s, n, depth)
	case s.Kind() == Parameter:
		expandParameter(ctx, oracle, st, s, n, depth)
	case (s.Kind() == Field || s.Kind() == Property) && !s.IsStatic():
		expandInstanceMember(ctx, oracle, st, s, n, depth)
	default:
		expandAssignmentDriven(ctx, oracle, st, s, n, depth)
	}
}

// emitAndRecurse materializes a node for each contribution not equal to the
// symbol being expanded (§8 property 3: no self-loops), appends the edge if
// not already present, and recurses into it.
func emitAndRecurse(ctx context.Context, oracle Oracle, st *traversalState, self Symbol, n *InsightNode, depth int, contributions []contribution) {
	for _, c := range contributions {
		if c.symbol.Equal(self) {
			continue
		}
		target, _ := st.graph.nodeFor(c.symbol)
		st.graph.addEdge(n, target, c.relation, c.origin)
		expand(ctx, oracle, st, c.symbol, target, depth+1)
	}
}

func expandAssignmentDriven(ctx context.Context, oracle Oracle, st *traversalState, s Symbol, n *InsightNode, depth int) {
	contributions := assignmentContributors(ctx, oracle, st, s)
	emitAndRecurse(ctx, oracle, st, s, n, depth, contributions)
}

func expandMethod(ctx context.Context, oracle Oracle, st *traversalState, m Symbol, n *InsightNode, depth int) {
	if contributions, ok := methodReturnContributors(ctx, oracle, st, m); ok {
		emitAndRecurse(ctx, oracle, st, m, n, depth, contributions)
	}

	id := nodeID(m)
	if !isOverrideTriggering(m) || st.virtualExpanded[id] {
		return
	}
	st.virtualExpanded[id] = true

	base := baseMethodOf(m)
	siblings := overrideSiblings(ctx, oracle, base)
	for _, o := range siblings {
		if o.Equal(m) {
			continue
		}
		oNode, _ := st.graph.nodeFor(o)
		origin, _ := o.PrimaryLocation()
		st.graph.addEdge(n, oNode, Override, origin)

		propagateInvocation(st, m, base, o)
		// The override's own Method-Return Analyzer still needs to run,
		// but it must never re-trigger §4.7 on itself (§9).
		st.virtualExpanded[nodeID(o)] = true
		expand(ctx, oracle, st, o, oNode, depth+1)
	}
}

// propagateInvocation implements §4.7 step 5: if invocationOf[M] or
// invocationOf[B] is set, propagate it onto O iff O has none yet.
func propagateInvocation(st *traversalState, m, base, o Symbol) {
	if st.invocationOf[nodeID(o)].Method != nil {
		return
	}
	if call, ok := st.invocationFor(m); ok {
		st.recordInvocation(o, call)
		return
	}
	if call, ok := st.invocationFor(base); ok {
		st.recordInvocation(o, call)
	}
}

func expandParameter(ctx context.Context, oracle Oracle, st *traversalState, p Symbol, n *InsightNode, depth int) {
	m, ok := p.ContainingMethod()
	if !ok {
		return
	}
	c, ok := parameterArgument(st, m, p)
	if !ok {
		return
	}
	emitAndRecurse(ctx, oracle, st, p, n, depth, []contribution{c})
}

func expandInstanceMember(ctx context.Context, oracle Oracle, st *traversalState, f Symbol, n *InsightNode, depth int) {
	if _, hasCandidate := findCandidateInvocation(st, f); !hasCandidate {
		expandAssignmentDriven(ctx, oracle, st, f, n, depth)
		return
	}

	c, ok, recurse := objectInitializerContribution(ctx, oracle, st, f)
	if !ok {
		return
	}
	if c.symbol.Equal(f) {
		return
	}
	target, _ := st.graph.nodeFor(c.symbol)
	st.graph.addEdge(n, target, c.relation, c.origin)
	if recurse {
		expand(ctx, oracle, st, c.symbol, target, depth+1)
	}
}
