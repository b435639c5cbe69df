package insight

import "context"

// contribution is one edge-to-be: a contributor symbol, the relation it
// arrived under, and the source location where the influence manifests.
type contribution struct {
	symbol   Symbol
	relation Relation
	origin   Location
}

// assignmentContributors implements §4.2: for a writable storage cell S,
// enumerate its write sites (declaration-with-initializer, and every
// workspace assignment whose LHS binds to S) and extract contributors from
// each site's RHS, deduped by target-symbol identity across all sites.
func assignmentContributors(ctx context.Context, oracle Oracle, st *traversalState, s Symbol) []contribution {
	sites := oracle.WriteSites(ctx, s)

	var all []contribution
	seen := make(map[string]bool)

	for _, site := range sites {
		if site.RHS == nil {
			continue
		}
		for _, c := range extractContributors(st, site.RHS) {
			id := nodeID(c.symbol)
			if seen[id] {
				continue
			}
			seen[id] = true
			all = append(all, contribution{
				symbol:   c.symbol,
				relation: site.Relation,
				origin:   site.Location,
			})
		}
	}
	return all
}
