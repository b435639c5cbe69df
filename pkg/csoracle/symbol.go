package csoracle

import "github.com/devlin-oss/varinsight/pkg/insight"

// csSymbol is the concrete insight.Symbol backed by a decl interned in a
// Workspace. Two csSymbols wrapping the same *decl pointer are equal.
type csSymbol struct {
	d *decl
}

func wrap(d *decl) insight.Symbol {
	if d == nil {
		return nil
	}
	return csSymbol{d: d}
}

func (s csSymbol) Kind() insight.SymbolKind { return s.d.kind }
func (s csSymbol) Name() string             { return s.d.name }
func (s csSymbol) TypeString() string       { return s.d.typeStr }
func (s csSymbol) IsStatic() bool           { return s.d.static }
func (s csSymbol) ContainingType() string   { return s.d.containingType }
func (s csSymbol) SourceExcerpt() string    { return s.d.excerpt }

// DisplayString is the fully-qualified rendering used in node Ids (§4.4):
// "Type.Name" for members, bare name for locals/parameters (which already
// disambiguate via their location suffix).
func (s csSymbol) DisplayString() string {
	switch s.d.kind {
	case insight.Field, insight.Property, insight.Method:
		if s.d.containingType != "" {
			return s.d.containingType + "." + s.d.name
		}
	}
	return s.d.name
}

func (s csSymbol) PrimaryLocation() (insight.Location, bool) {
	if s.d.loc.File == "" {
		return insight.Location{}, false
	}
	return s.d.loc, true
}

func (s csSymbol) Equal(other insight.Symbol) bool {
	o, ok := other.(csSymbol)
	return ok && o.d == s.d
}

func (s csSymbol) IsVirtual() bool  { return s.d.virtual }
func (s csSymbol) IsAbstract() bool { return s.d.abstract }
func (s csSymbol) IsOverride() bool { return s.d.override }

func (s csSymbol) OverriddenMethod() (insight.Symbol, bool) {
	if s.d.overridden == nil {
		return nil, false
	}
	return wrap(s.d.overridden), true
}

func (s csSymbol) MethodParameters() []insight.Symbol {
	out := make([]insight.Symbol, 0, len(s.d.params))
	for _, p := range s.d.params {
		out = append(out, wrap(p))
	}
	return out
}

func (s csSymbol) ContainingMethod() (insight.Symbol, bool) {
	if s.d.containingMethod == nil {
		return nil, false
	}
	return wrap(s.d.containingMethod), true
}
