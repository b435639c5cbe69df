package insight

// IsAnalyzable reports whether a symbol's kind is one the driver will ever
// expand: Local, Parameter, Field, Property, or Method (§4.4).
func IsAnalyzable(s Symbol) bool {
	if s == nil {
		return false
	}
	switch s.Kind() {
	case LocalVariable, Parameter, Field, Property, Method:
		return true
	default:
		return false
	}
}

// filterAnalyzable keeps only the analyzable symbols in order, without
// otherwise deduplicating.
func filterAnalyzable(syms []Symbol) []Symbol {
	out := make([]Symbol, 0, len(syms))
	for _, s := range syms {
		if IsAnalyzable(s) {
			out = append(out, s)
		}
	}
	return out
}

// dedupSymbols keeps the first occurrence of each symbol by identity,
// preserving order (§4.3 step 5).
func dedupSymbols(syms []Symbol) []Symbol {
	out := make([]Symbol, 0, len(syms))
	for _, s := range syms {
		dup := false
		for _, seen := range out {
			if seen.Equal(s) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, s)
		}
	}
	return out
}
