package insight

import "context"

// Reference is one use of a symbol discovered by a workspace-wide search.
type Reference struct {
	Symbol   Symbol
	Location Location
	// IsWrite marks whether this reference is the LHS of an assignment
	// (including compound assignment) or the declarator itself.
	IsWrite bool
}

// Argument is one argument sub-expression at a call site, in source order.
type Argument struct {
	// DirectIdentifier is the symbol the argument expression binds to when
	// the argument is a bare identifier. Zero value (nil) otherwise.
	DirectIdentifier Symbol
	// FirstAnalyzableDescendant is the first analyzable identifier found
	// underneath the argument expression when it is not itself a bare
	// identifier (e.g. `a + 1`, `obj.Field`). Nil if none exists.
	FirstAnalyzableDescendant Symbol
}

// CallSite is an invocation expression: `receiver.Method(args...)` or a
// bare `Method(args...)`. The Receiver* fields are only meaningful for
// instance calls and are used by the Object-Initializer Tracer (§4.8).
type CallSite struct {
	Method    Symbol
	Arguments []Argument
	Location  Location

	// Receiver is the symbol bound to the receiver sub-expression for an
	// instance call (nil for static calls).
	Receiver Symbol
	// ReceiverConcreteType is the statically-known concrete type of the
	// receiver, resolved from a `new T() { ... }` initializer at the
	// receiver's declaration site when that shape is present; empty if
	// unknown (falls back to the receiver's declared type, see §4.8).
	ReceiverConcreteType string
	// ReceiverInitializer, when non-nil, is the object-initializer block
	// attached to the receiver's `new T() { ... }` declaration.
	ReceiverInitializer *ObjectInitializerBlock
}

// ObjectInitializerBlock is the `{ Prop = expr, ... }` block attached to an
// object-creation expression.
type ObjectInitializerBlock struct {
	ConcreteType string
	Assignments  []MemberAssignment
}

// MemberAssignment is one `Prop = expr` entry inside an ObjectInitializer.
type MemberAssignment struct {
	Member Symbol
	// ValueIdentifier is set when the RHS is a single identifier binding
	// to an analyzable symbol (§4.8's "single identifier" case).
	ValueIdentifier Symbol
	// HasAnalyzableValue is false when the RHS is a literal or a complex
	// expression with no analyzable identifier.
	HasAnalyzableValue bool
}

// WriteSite is a declaration-with-initializer or assignment expression that
// stores into a symbol (§4.2).
type WriteSite struct {
	Relation Relation // Initialization or Assignment
	RHS      RHSExpression
	Location Location
}

// RHSExpression is the oracle's handle on an expression the core needs to
// scan for contributors (§4.3). The core never inspects syntax itself; the
// oracle pre-computes the two things §4.3 needs and hands them back.
type RHSExpression interface {
	// Identifiers returns every identifier in the expression that is not
	// inside an excluded region (invocation argument lists, member-access
	// receivers), in source order, already bound and filtered to
	// analyzable symbols.
	Identifiers() []Symbol
	// Invocations returns every invocation expression found anywhere in
	// the expression (including inside excluded regions of a parent call,
	// since an argument can itself be a call), in source order, together
	// with the CallSite describing it.
	Invocations() []CallSite
}

// Oracle is the semantic front-end contract from §6. pkg/insight never
// imports a parser; csoracle is the only implementation this repository
// ships, but the core is written against this interface so it stays a pure
// function of (document, position, Oracle).
type Oracle interface {
	// SymbolAt resolves the token at position to a symbol, referenced-or-
	// declared. Returns ok=false if nothing analyzable binds there.
	SymbolAt(ctx context.Context, document string, line, column int) (Symbol, bool)

	// WriteSites enumerates every write to sym: its declarator (if it has
	// an initializer) and every assignment expression across the
	// workspace whose LHS binds to sym (§4.2). Best-effort: a reference
	// the oracle cannot bind a semantic model for is simply omitted, not
	// reported as an error.
	WriteSites(ctx context.Context, sym Symbol) []WriteSite

	// ReturnExpressions collects every `return` operand in m's body, plus
	// the body expression itself if m is expression-bodied (§4.6). Returns
	// ok=false if m has no resolvable declaring syntax (extern/metadata-only).
	ReturnExpressions(ctx context.Context, m Symbol) ([]RHSExpression, bool)

	// OverrideSiblings enumerates, for a virtual/abstract/override method m,
	// every override O across every type in the workspace whose override
	// chain terminates at m's base declaration (§4.7). Skips (rather than
	// aborting) any compilation it cannot enumerate.
	OverrideSiblings(ctx context.Context, m Symbol) []Symbol

	// InstanceInitializerFor locates a `new T() { ... }` initializer that
	// assigns field/property member a value, reached via the call site's
	// receiver declaration (§4.8). ok=false when no initializer applies.
	InstanceInitializerFor(ctx context.Context, call CallSite, member Symbol) (MemberAssignment, bool)
}
