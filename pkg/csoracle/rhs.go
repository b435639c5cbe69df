package csoracle

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/devlin-oss/varinsight/pkg/insight"
)

// csRHS is the concrete RHSExpression: an expression node scanned in the
// lexical context of a method (or a synthetic field-initializer context —
// see fieldInitContext).
type csRHS struct {
	ws     *Workspace
	ctx    *decl // containing method, or a synthetic field-init decl
	node   *sitter.Node
}

func (w *Workspace) buildRHS(ctx *decl, node *sitter.Node) insight.RHSExpression {
	if node == nil {
		return nil
	}
	return &csRHS{ws: w, ctx: ctx, node: node}
}

// fieldInitContext returns a decl standing in for "the implicit scope of a
// field or property initializer", so resolveName still works (no locals or
// parameters, only the type's own fields/properties are visible).
func fieldInitContext(td *typeDecl) *decl {
	if td.initCtx == nil {
		td.initCtx = &decl{kind: shapeOther, containingType: td.name, file: td.file}
	}
	return td.initCtx
}

// initializerLexicalContext returns the scope an object-initializer's
// assignment values should resolve in: the lexical scope surrounding the
// `new T(){...}` expression itself, not the constructed type's own
// field-init scope. When owner is a local or parameter, that scope is the
// containing method (so locals/parameters of the caller are visible, per
// the object-initializer tracer's S3 scenario). When owner is a field or
// property, there is no enclosing method — the initializer appears in the
// owner's own declaring type's field-init scope instead.
func (w *Workspace) initializerLexicalContext(owner *decl) *decl {
	switch owner.kind {
	case shapeLocal, shapeParam:
		if owner.containingMethod != nil {
			return owner.containingMethod
		}
	case shapeField, shapeProperty:
		if td, ok := w.typeByDecl(owner); ok {
			return fieldInitContext(td)
		}
	}
	return owner
}

// Identifiers implements insight.RHSExpression. It walks the expression
// skipping invocation-argument lists and member-access receivers (§4.3
// step 2's excluded regions), binding every remaining identifier through
// the enclosing scope and keeping only analyzable symbols.
func (r *csRHS) Identifiers() []insight.Symbol {
	var out []insight.Symbol
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n == nil {
			return
		}
		switch n.Type() {
		case "invocation_expression":
			return
		case "member_access_expression":
			name := childByField(n, "name", "identifier")
			if name != nil && name.Type() == "identifier" {
				if sym := r.ws.bindIdentifier(r.ctx, name); sym != nil && insight.IsAnalyzable(sym) {
					out = append(out, sym)
				}
			}
			return
		case "identifier":
			if sym := r.ws.bindIdentifier(r.ctx, n); sym != nil && insight.IsAnalyzable(sym) {
				out = append(out, sym)
			}
			return
		default:
			for i := 0; i < int(n.ChildCount()); i++ {
				visit(n.Child(i))
			}
		}
	}
	visit(r.node)
	return out
}

// Invocations implements insight.RHSExpression: every invocation_expression
// anywhere under the node, including ones nested inside another call's
// argument list, each resolved to a CallSite.
func (r *csRHS) Invocations() []insight.CallSite {
	var out []insight.CallSite
	for _, n := range findAll(r.node, "invocation_expression") {
		if cs, ok := r.ws.buildCallSite(r.ctx, n); ok {
			out = append(out, cs)
		}
	}
	return out
}

// bindIdentifier resolves a leaf identifier node to a Symbol using ctx's
// scope. "this"/"base" never bind to a symbol themselves.
func (w *Workspace) bindIdentifier(ctx *decl, node *sitter.Node) insight.Symbol {
	if ctx == nil || node == nil {
		return nil
	}
	name := nodeText(node, ctx.file.content)
	if name == "" || name == "this" || name == "base" {
		return nil
	}
	return wrap(w.resolveName(ctx, name))
}

// buildCallSite resolves an invocation_expression to a CallSite in the
// lexical context ctx.
func (w *Workspace) buildCallSite(ctx *decl, inv *sitter.Node) (insight.CallSite, bool) {
	fn := childByField(inv, "function", "identifier", "member_access_expression")
	if fn == nil {
		return insight.CallSite{}, false
	}

	var methodName string
	var receiver insight.Symbol
	var receiverType string

	switch fn.Type() {
	case "identifier":
		methodName = nodeText(fn, ctx.file.content)
	case "member_access_expression":
		recvNode := childByField(fn, "expression", "identifier")
		nameNode := childByField(fn, "name", "identifier")
		if nameNode == nil {
			return insight.CallSite{}, false
		}
		methodName = nodeText(nameNode, ctx.file.content)
		if recvNode != nil {
			if recvText := nodeText(recvNode, ctx.file.content); recvText != "this" && recvText != "base" {
				if rd := w.resolveName(ctx, recvText); rd != nil {
					receiver = wrap(rd)
					receiverType = rd.typeStr
				}
			}
		}
	default:
		return insight.CallSite{}, false
	}

	methodDecl := w.resolveMethodCall(ctx, methodName, simpleTypeNameFromString(receiverType))
	if methodDecl == nil {
		return insight.CallSite{}, false
	}

	call := insight.CallSite{
		Method:   wrap(methodDecl),
		Location: w.newLocation(ctx.file, inv),
		Receiver: receiver,
	}

	if receiver != nil {
		if rd, ok := receiver.(csSymbol); ok {
			if init := w.objectInitializerFor(rd.d); init != nil {
				call.ReceiverConcreteType = init.ConcreteType
				call.ReceiverInitializer = init
			} else {
				call.ReceiverConcreteType = rd.d.typeStr
			}
		}
	}

	argList := childByField(inv, "arguments", "argument_list")
	if argList == nil {
		argList = firstChildOfType(inv, "argument_list")
	}
	for _, argNode := range immediateChildrenOfType(argList, "argument") {
		call.Arguments = append(call.Arguments, w.buildArgument(ctx, argNode))
	}

	return call, true
}

func simpleTypeNameFromString(s string) string {
	last := s
	depth := 0
	start := 0
	for i, r := range s {
		if r == '.' && depth == 0 {
			start = i + 1
		} else if r == '<' {
			depth++
		} else if r == '>' {
			depth--
		}
	}
	last = s[start:]
	if idx := indexByte(last, '<'); idx >= 0 {
		last = last[:idx]
	}
	return last
}

// buildArgument resolves one call argument expression to an
// insight.Argument per §4.5: a bare identifier binds directly, anything
// else is scanned for its first analyzable descendant identifier.
func (w *Workspace) buildArgument(ctx *decl, argNode *sitter.Node) insight.Argument {
	expr := firstArgumentExpr(argNode)
	if expr == nil {
		return insight.Argument{}
	}
	if expr.Type() == "identifier" {
		if sym := w.bindIdentifier(ctx, expr); sym != nil && insight.IsAnalyzable(sym) {
			return insight.Argument{DirectIdentifier: sym}
		}
		return insight.Argument{}
	}
	for _, idNode := range findAll(expr, "identifier") {
		if sym := w.bindIdentifier(ctx, idNode); sym != nil && insight.IsAnalyzable(sym) {
			return insight.Argument{FirstAnalyzableDescendant: sym}
		}
	}
	return insight.Argument{}
}

// firstArgumentExpr returns an `argument` node's expression child, skipping
// any `name:` colon-prefixed label a named argument carries.
func firstArgumentExpr(argNode *sitter.Node) *sitter.Node {
	if argNode == nil {
		return nil
	}
	for i := 0; i < int(argNode.ChildCount()); i++ {
		c := argNode.Child(i)
		if c == nil {
			continue
		}
		switch c.Type() {
		case ":", "name_colon", "argument_name":
			continue
		default:
			return c
		}
	}
	return nil
}

// objectInitializerFor returns the `new T() { ... }` initializer attached
// to receiverDecl's own declaration, if its declarator's value is an
// object_creation_expression (§4.8). A creation without an
// initializer_expression still yields a block carrying only ConcreteType.
func (w *Workspace) objectInitializerFor(receiverDecl *decl) *insight.ObjectInitializerBlock {
	if receiverDecl == nil || receiverDecl.node == nil {
		return nil
	}
	value := childByField(receiverDecl.node, "value", "object_creation_expression")
	if value == nil {
		value = firstChildOfType(receiverDecl.node, "object_creation_expression")
	}
	if value == nil || value.Type() != "object_creation_expression" {
		return nil
	}
	return w.buildObjectInitializer(receiverDecl, value)
}

func (w *Workspace) buildObjectInitializer(owner *decl, creation *sitter.Node) *insight.ObjectInitializerBlock {
	typeNode := firstChildOfType(creation, "identifier", "generic_name", "qualified_name")
	concreteType := ""
	if typeNode != nil {
		concreteType = simpleTypeName(typeNode, owner.file.content)
	}
	init := &insight.ObjectInitializerBlock{ConcreteType: concreteType}

	initBlock := firstChildOfType(creation, "initializer_expression")
	if initBlock == nil {
		return init
	}
	td, ok := w.types[concreteType]
	if !ok {
		return init
	}
	ctx := w.initializerLexicalContext(owner)
	for _, assign := range immediateChildrenOfType(initBlock, "assignment_expression") {
		left := childByField(assign, "left", "identifier")
		right := childByField(assign, "right")
		if left == nil {
			continue
		}
		memberName := nodeText(left, owner.file.content)
		var member *decl
		for _, f := range td.fields {
			if f.name == memberName {
				member = f
			}
		}
		if member == nil {
			for _, p := range td.properties {
				if p.name == memberName {
					member = p
				}
			}
		}
		if member == nil {
			continue
		}
		ma := insight.MemberAssignment{Member: wrap(member)}
		if right != nil && right.Type() == "identifier" {
			if sym := w.bindIdentifier(ctx, right); sym != nil && insight.IsAnalyzable(sym) {
				ma.ValueIdentifier = sym
				ma.HasAnalyzableValue = true
			}
		}
		init.Assignments = append(init.Assignments, ma)
	}
	return init
}
