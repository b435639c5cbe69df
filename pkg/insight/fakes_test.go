package insight

import "context"

// fakeSymbol is a hand-constructed Symbol used to drive the driver tests
// against exact, known graphs instead of a real C# parse.
type fakeSymbol struct {
	kind           SymbolKind
	name           string
	display        string
	typeStr        string
	static         bool
	containingType string
	loc            Location
	hasLoc         bool
	excerpt        string

	virtual  bool
	abstract bool
	override bool
	base     *fakeSymbol
	params   []Symbol
	method   *fakeSymbol
}

func (s *fakeSymbol) Kind() SymbolKind       { return s.kind }
func (s *fakeSymbol) Name() string           { return s.name }
func (s *fakeSymbol) DisplayString() string  { return s.display }
func (s *fakeSymbol) TypeString() string     { return s.typeStr }
func (s *fakeSymbol) IsStatic() bool         { return s.static }
func (s *fakeSymbol) ContainingType() string { return s.containingType }
func (s *fakeSymbol) SourceExcerpt() string  { return s.excerpt }

func (s *fakeSymbol) PrimaryLocation() (Location, bool) { return s.loc, s.hasLoc }

func (s *fakeSymbol) Equal(other Symbol) bool {
	o, ok := other.(*fakeSymbol)
	return ok && o == s
}

func (s *fakeSymbol) IsVirtual() bool  { return s.virtual }
func (s *fakeSymbol) IsAbstract() bool { return s.abstract }
func (s *fakeSymbol) IsOverride() bool { return s.override }

func (s *fakeSymbol) OverriddenMethod() (Symbol, bool) {
	if s.base == nil {
		return nil, false
	}
	return s.base, true
}

func (s *fakeSymbol) MethodParameters() []Symbol { return s.params }

func (s *fakeSymbol) ContainingMethod() (Symbol, bool) {
	if s.method == nil {
		return nil, false
	}
	return s.method, true
}

// sym is a convenience constructor for a local variable/field/property/
// parameter/method fake symbol, identified uniquely by name+line so nodeID
// never collides across fixtures in the same test.
func sym(kind SymbolKind, name string, line int) *fakeSymbol {
	return &fakeSymbol{
		kind:    kind,
		name:    name,
		display: name,
		typeStr: "int",
		loc:     Location{File: "Fixture.cs", Line: line, Column: 1},
		hasLoc:  true,
		excerpt: name,
	}
}

func method(name string, line int, static bool) *fakeSymbol {
	m := sym(Method, name, line)
	m.static = static
	return m
}

// fakeRHS is a pre-computed RHSExpression: the oracle has already done the
// excluded-region computation and identifier binding the real csoracle does
// against tree-sitter.
type fakeRHS struct {
	idents      []Symbol
	invocations []CallSite
}

func (r fakeRHS) Identifiers() []Symbol   { return r.idents }
func (r fakeRHS) Invocations() []CallSite { return r.invocations }

// fakeOracle implements Oracle against maps populated per test.
type fakeOracle struct {
	root Symbol

	writeSites   map[Symbol][]WriteSite
	returns      map[Symbol][]RHSExpression
	noReturnSyn  map[Symbol]bool
	overrides    map[Symbol][]Symbol
	initializers map[Symbol]MemberAssignment
}

func newFakeOracle(root Symbol) *fakeOracle {
	return &fakeOracle{
		root:         root,
		writeSites:   make(map[Symbol][]WriteSite),
		returns:      make(map[Symbol][]RHSExpression),
		noReturnSyn:  make(map[Symbol]bool),
		overrides:    make(map[Symbol][]Symbol),
		initializers: make(map[Symbol]MemberAssignment),
	}
}

func (o *fakeOracle) SymbolAt(ctx context.Context, document string, line, column int) (Symbol, bool) {
	return o.root, o.root != nil
}

func (o *fakeOracle) WriteSites(ctx context.Context, sym Symbol) []WriteSite {
	for k, v := range o.writeSites {
		if k.Equal(sym) {
			return v
		}
	}
	return nil
}

func (o *fakeOracle) ReturnExpressions(ctx context.Context, m Symbol) ([]RHSExpression, bool) {
	for k := range o.noReturnSyn {
		if k.Equal(m) {
			return nil, false
		}
	}
	for k, v := range o.returns {
		if k.Equal(m) {
			return v, true
		}
	}
	return nil, true
}

func (o *fakeOracle) OverrideSiblings(ctx context.Context, m Symbol) []Symbol {
	for k, v := range o.overrides {
		if k.Equal(m) {
			return v
		}
	}
	return nil
}

func (o *fakeOracle) InstanceInitializerFor(ctx context.Context, call CallSite, member Symbol) (MemberAssignment, bool) {
	for k, v := range o.initializers {
		if k.Equal(member) {
			return v, true
		}
	}
	return MemberAssignment{}, false
}
