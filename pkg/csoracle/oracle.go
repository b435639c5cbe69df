package csoracle

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/devlin-oss/varinsight/pkg/insight"
)

// CSOracle is the insight.Oracle backed by a loaded Workspace. It never
// mutates the workspace's decl index; every method is a pure query.
type CSOracle struct {
	ws *Workspace
}

func (o *CSOracle) SymbolAt(ctx context.Context, document string, line, column int) (insight.Symbol, bool) {
	f, ok := o.ws.fileAt(document)
	if !ok {
		return nil, false
	}
	node := nodeAtPosition(f.root, uint32(line-1), uint32(column-1))
	if node == nil || node.Type() != "identifier" {
		return nil, false
	}
	name := nodeText(node, f.content)
	if name == "" {
		return nil, false
	}

	for _, td := range o.ws.types {
		if td.file != f {
			continue
		}
		if td.node != nil && nodeContains(td.node, node) {
			if sym, ok := symbolAtDeclSite(td, node); ok {
				return sym, true
			}
			if m := o.ws.enclosingMethod(f, node); m != nil {
				if sym := wrap(o.ws.resolveName(m, name)); sym != nil {
					return sym, true
				}
			}
			if sym := wrap(o.ws.resolveNameInType(td, name)); sym != nil {
				return sym, true
			}
		}
	}
	return nil, false
}

// symbolAtDeclSite checks whether node is itself the name token of one of
// td's own member declarations (clicking on a declaration, not a use).
func symbolAtDeclSite(td *typeDecl, node *sitter.Node) (insight.Symbol, bool) {
	for _, m := range td.methods {
		if nodeIsNameOf(m.node, node) {
			return wrap(m), true
		}
		for _, p := range m.params {
			if nodeIsNameOf(p.node, node) {
				return wrap(p), true
			}
		}
	}
	for _, f := range td.fields {
		if nodeIsNameOf(f.node, node) {
			return wrap(f), true
		}
	}
	for _, p := range td.properties {
		if nodeIsNameOf(p.node, node) {
			return wrap(p), true
		}
	}
	return nil, false
}

func nodeIsNameOf(declSite, candidate *sitter.Node) bool {
	if declSite == nil || candidate == nil {
		return false
	}
	name := childByField(declSite, "name", "identifier")
	return name != nil && name.StartByte() == candidate.StartByte() && name.EndByte() == candidate.EndByte()
}

func (w *Workspace) enclosingMethod(f *file, node *sitter.Node) *decl {
	var best *decl
	for _, td := range w.types {
		if td.file != f {
			continue
		}
		for _, m := range td.methods {
			if m.node == nil || !nodeContains(m.node, node) {
				continue
			}
			if best == nil || nodeContains(best.node, m.node) {
				best = m
			}
		}
	}
	return best
}

// resolveNameInType resolves a bare field/property name with no method
// context (e.g. inside another field's initializer).
func (w *Workspace) resolveNameInType(td *typeDecl, name string) *decl {
	for _, f := range td.fields {
		if f.name == name {
			return f
		}
	}
	for _, p := range td.properties {
		if p.name == name {
			return p
		}
	}
	return nil
}

func (o *CSOracle) WriteSites(ctx context.Context, sym insight.Symbol) []insight.WriteSite {
	cs, ok := sym.(csSymbol)
	if !ok {
		return nil
	}
	d := cs.d
	var sites []insight.WriteSite

	switch d.kind {
	case shapeLocal:
		if ws := o.ws.declaratorInitSite(d, o.ws.initializerLexicalContext(d)); ws != nil {
			sites = append(sites, *ws)
		}
		if d.containingMethod != nil {
			sites = append(sites, o.ws.assignmentsTo(d.containingMethod, d.name)...)
		}
	case shapeParam:
		if d.containingMethod != nil {
			sites = append(sites, o.ws.assignmentsTo(d.containingMethod, d.name)...)
		}
	case shapeField, shapeProperty:
		td, ok := o.ws.typeByDecl(d)
		if !ok {
			return sites
		}
		initCtx := fieldInitContext(td)
		if ws := o.ws.declaratorInitSite(d, initCtx); ws != nil {
			sites = append(sites, *ws)
		}
		for _, m := range td.methods {
			sites = append(sites, o.ws.assignmentsTo(m, d.name)...)
		}
	}
	return sites
}

// declaratorInitSite builds the Initialization write site for a decl whose
// own declaration carries a `= expr` initializer.
func (w *Workspace) declaratorInitSite(d *decl, ctx *decl) *insight.WriteSite {
	if d.node == nil {
		return nil
	}
	value := childByField(d.node, "value")
	if value == nil {
		return nil
	}
	rhs := w.buildRHS(ctx, value)
	if rhs == nil {
		return nil
	}
	return &insight.WriteSite{
		Relation: insight.Initialization,
		RHS:      rhs,
		Location: d.loc,
	}
}

// assignmentsTo scans m's body for assignment_expression nodes whose LHS
// binds to targetName, either bare or via an explicit this.targetName.
func (w *Workspace) assignmentsTo(m *decl, targetName string) []insight.WriteSite {
	body := m.body
	if body == nil {
		return nil
	}
	var sites []insight.WriteSite
	for _, assign := range findAll(body, "assignment_expression") {
		left := childByField(assign, "left")
		if left == nil {
			continue
		}
		if !lhsMatches(left, targetName, m.file.content) {
			continue
		}
		right := childByField(assign, "right")
		rhs := w.buildRHS(m, right)
		if rhs == nil {
			continue
		}
		sites = append(sites, insight.WriteSite{
			Relation: insight.Assignment,
			RHS:      rhs,
			Location: w.newLocation(m.file, assign),
		})
	}
	return sites
}

func lhsMatches(left *sitter.Node, targetName string, content []byte) bool {
	switch left.Type() {
	case "identifier":
		return nodeText(left, content) == targetName
	case "member_access_expression":
		recv := childByField(left, "expression", "identifier")
		name := childByField(left, "name", "identifier")
		if name == nil || nodeText(name, content) != targetName {
			return false
		}
		return recv == nil || nodeText(recv, content) == "this"
	default:
		return false
	}
}

func (o *CSOracle) ReturnExpressions(ctx context.Context, m insight.Symbol) ([]insight.RHSExpression, bool) {
	cs, ok := m.(csSymbol)
	if !ok {
		return nil, false
	}
	d := cs.d
	if d.arrowBody != nil {
		return []insight.RHSExpression{o.ws.buildRHS(d, d.arrowBody)}, true
	}
	if d.body == nil {
		return nil, false
	}
	var out []insight.RHSExpression
	for _, ret := range findAll(d.body, "return_statement") {
		expr := firstReturnOperand(ret)
		if expr == nil {
			continue
		}
		out = append(out, o.ws.buildRHS(d, expr))
	}
	return out, true
}

func firstReturnOperand(ret *sitter.Node) *sitter.Node {
	for i := 0; i < int(ret.ChildCount()); i++ {
		c := ret.Child(i)
		if c != nil && c.Type() != "return" && c.Type() != ";" {
			return c
		}
	}
	return nil
}

// OverrideSiblings returns every method in m's override chain other than m
// itself, at any depth — not just the methods that override m directly.
// decl.overridden only links to the nearest ancestor (wireOverrides walks
// one base_list hop at a time), so a 3-level chain A <- B <- C has C's
// overridden pointing at B, not A. Comparing chain roots instead of direct
// links is what makes expanding A also reach the grandchild override C.
func (o *CSOracle) OverrideSiblings(ctx context.Context, m insight.Symbol) []insight.Symbol {
	cs, ok := m.(csSymbol)
	if !ok {
		return nil
	}
	base := cs.d
	root := chainRoot(base)
	var out []insight.Symbol
	for _, td := range o.ws.types {
		for _, cand := range td.methods {
			if cand == base {
				continue
			}
			if chainRoot(cand) == root {
				out = append(out, wrap(cand))
			}
		}
	}
	return out
}

// chainRoot follows overridden links to the virtual/abstract declaration
// at the top of the chain.
func chainRoot(d *decl) *decl {
	for d.overridden != nil {
		d = d.overridden
	}
	return d
}

func (o *CSOracle) InstanceInitializerFor(ctx context.Context, call insight.CallSite, member insight.Symbol) (insight.MemberAssignment, bool) {
	if call.ReceiverInitializer == nil {
		return insight.MemberAssignment{}, false
	}
	for _, ma := range call.ReceiverInitializer.Assignments {
		if ma.Member != nil && member != nil && ma.Member.Equal(member) {
			return ma, true
		}
	}
	return insight.MemberAssignment{}, false
}
