package csoracle

import sitter "github.com/smacker/go-tree-sitter"

// methodScope is the lazily-built symbol table for one method: its
// parameters (already known from the signature pass) plus every local
// variable declared in its body, keyed by name. Locals are resolved once
// per method and cached on the Workspace so repeated lookups return
// identical *decl pointers.
//
// Scoping is intentionally coarse: a name is visible to the whole method
// body regardless of block nesting, matching C#'s "no two locals with the
// same name in overlapping scopes" rule closely enough that the distinction
// rarely matters for backward data-flow (see DESIGN.md).
type methodScope struct {
	method *decl
	locals map[string]*decl
	params map[string]*decl
}

func (w *Workspace) scopeFor(m *decl) *methodScope {
	if sc, ok := w.scopes[m]; ok {
		return sc
	}
	sc := &methodScope{
		method: m,
		locals: make(map[string]*decl),
		params: make(map[string]*decl),
	}
	for _, p := range m.params {
		sc.params[p.name] = p
	}
	body := m.body
	if body == nil {
		body = m.arrowBody
	}
	if body != nil {
		w.collectLocals(m, body, sc)
	}
	w.scopes[m] = sc
	return sc
}

func (w *Workspace) collectLocals(m *decl, body *sitter.Node, sc *methodScope) {
	for _, vd := range findAll(body, "variable_declaration") {
		typeStr := ""
		if t := firstChildOfType(vd, "predefined_type", "builtin_type", "generic_name", "nullable_type", "identifier", "qualified_name"); t != nil {
			typeStr = nodeText(t, m.file.content)
		}
		for _, declr := range findAllShallow(vd, "variable_declarator") {
			nameNode := firstChildOfType(declr, "identifier")
			if nameNode == nil {
				continue
			}
			name := nodeText(nameNode, m.file.content)
			if name == "" {
				continue
			}
			sc.locals[name] = &decl{
				kind:             shapeLocal,
				name:             name,
				node:             declr,
				file:             m.file,
				loc:              w.newLocation(m.file, declr),
				excerpt:          lineExcerpt(declr, m.file.content),
				typeStr:          typeStr,
				containingType:   m.containingType,
				containingMethod: m,
			}
		}
	}
}

// resolveName looks up an identifier's binding inside m's scope: locals,
// then parameters, then (for an unqualified name) fields/properties
// declared on m's containing type. Returns nil if nothing binds.
func (w *Workspace) resolveName(m *decl, name string) *decl {
	sc := w.scopeFor(m)
	if d, ok := sc.locals[name]; ok {
		return d
	}
	if d, ok := sc.params[name]; ok {
		return d
	}
	if td, ok := w.typeByDecl(m); ok {
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
	}
	return nil
}

// resolveMethodCall looks up a method by simple name on m's containing
// type (instance/static calls with an implicit receiver), falling back to
// a workspace-wide by-name search for a qualified or cross-type call
// (receiver type resolution is name-based, not full overload resolution —
// see DESIGN.md).
func (w *Workspace) resolveMethodCall(m *decl, name string, receiverType string) *decl {
	if receiverType != "" {
		if td, ok := w.types[receiverType]; ok {
			if d := findMethodByName(td, name); d != nil {
				return d
			}
		}
	}
	if td, ok := w.typeByDecl(m); ok {
		if d := findMethodByName(td, name); d != nil {
			return d
		}
	}
	for _, td := range w.types {
		if d := findMethodByName(td, name); d != nil {
			return d
		}
	}
	return nil
}

func findMethodByName(td *typeDecl, name string) *decl {
	for _, cand := range td.methods {
		if cand.name == name {
			return cand
		}
	}
	return nil
}
