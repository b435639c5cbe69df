package insight

import "context"

// methodReturnContributors implements §4.6 steps 1-3: resolve m's return
// expressions and extract their contributors. Step 4 (emitting edges and
// recursing) is the driver's job, shared with every other dispatch branch.
// ok is false when m has no resolvable declaring syntax.
func methodReturnContributors(ctx context.Context, oracle Oracle, st *traversalState, m Symbol) ([]contribution, bool) {
	exprs, ok := oracle.ReturnExpressions(ctx, m)
	if !ok {
		return nil, false
	}

	origin, _ := m.PrimaryLocation()

	var all []contribution
	seen := make(map[string]bool)

	for _, rhs := range exprs {
		if rhs == nil {
			continue
		}
		for _, c := range extractContributors(st, rhs) {
			id := nodeID(c.symbol)
			if seen[id] {
				continue
			}
			seen[id] = true
			all = append(all, contribution{
				symbol:   c.symbol,
				relation: ReturnContributor,
				origin:   origin,
			})
		}
	}
	return all, true
}
