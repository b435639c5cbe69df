package insight

import "context"

// isOverrideTriggering reports whether m should go through §4.7 when
// expanded: virtual, abstract, or an override.
func isOverrideTriggering(m Symbol) bool {
	return m.IsVirtual() || m.IsAbstract() || m.IsOverride()
}

// baseMethodOf walks m's override chain (§'s "repeatedly taking
// overriddenMethod") to the virtual/abstract root.
func baseMethodOf(m Symbol) Symbol {
	base := m
	for {
		parent, ok := base.OverriddenMethod()
		if !ok {
			return base
		}
		base = parent
	}
}

// overrideSiblings implements §4.7 steps 1-4: ask the oracle to enumerate
// the sibling overrides of m's base across the workspace. Steps 5-6
// (invocationOf propagation and recursive Method-Return Analyzer
// application) are performed by the driver, since they need traversal
// state and recursion the oracle has no business holding.
func overrideSiblings(ctx context.Context, oracle Oracle, m Symbol) []Symbol {
	return filterAnalyzable(oracle.OverrideSiblings(ctx, m))
}
