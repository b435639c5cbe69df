package csoracle

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/devlin-oss/varinsight/pkg/insight"
)

// indexFile extracts every class/struct declaration's member signatures
// (methods, fields, properties) without descending into method bodies —
// bodies are resolved lazily per method by scopeFor.
func (w *Workspace) indexFile(f *file) {
	for _, classNode := range findAll(f.root, "class_declaration", "struct_declaration") {
		w.indexType(f, classNode)
	}
}

func (w *Workspace) indexType(f *file, typeNode *sitter.Node) {
	name := nodeText(firstChildOfType(typeNode, "identifier"), f.content)
	if name == "" {
		return
	}

	td := &typeDecl{name: name, file: f, node: typeNode}
	if baseList := firstChildOfType(typeNode, "base_list"); baseList != nil {
		for _, t := range findAllShallow(baseList, "identifier", "generic_name", "qualified_name") {
			td.baseNames = append(td.baseNames, simpleTypeName(t, f.content))
		}
	}

	body := firstChildOfType(typeNode, "class_body", "struct_body")
	if body != nil {
		for _, m := range immediateChildrenOfType(body, "method_declaration") {
			td.methods = append(td.methods, w.methodSig(f, td, m))
		}
		for _, fd := range immediateChildrenOfType(body, "field_declaration") {
			td.fields = append(td.fields, w.fieldSigs(f, td, fd)...)
		}
		for _, pd := range immediateChildrenOfType(body, "property_declaration") {
			td.properties = append(td.properties, w.propertySig(f, td, pd))
		}
	}

	w.types[name] = td
}

// simpleTypeName strips a namespace-qualified name down to its last
// segment: the type index is keyed by simple name only (§ DESIGN.md).
func simpleTypeName(node *sitter.Node, content []byte) string {
	text := nodeText(node, content)
	last := text
	depth := 0
	start := 0
	for i, r := range text {
		if r == '.' && depth == 0 {
			start = i + 1
		} else if r == '<' {
			depth++
		} else if r == '>' {
			depth--
		}
	}
	last = text[start:]
	if idx := indexByte(last, '<'); idx >= 0 {
		last = last[:idx]
	}
	return last
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

func (w *Workspace) methodSig(f *file, td *typeDecl, node *sitter.Node) *decl {
	// childByField's "name" lookup disambiguates a method's own identifier
	// from a same-shaped return-type identifier (e.g. "Person GetManager()");
	// firstChildOfType(node, "identifier") alone would pick whichever comes
	// first, which is the return type in that case.
	name := nodeText(childByField(node, "name", "identifier"), f.content)
	returnType := ""
	if t := firstChildOfType(node, "predefined_type", "builtin_type", "generic_name", "nullable_type"); t != nil {
		returnType = nodeText(t, f.content)
	}

	d := &decl{
		kind:           insight.Method,
		name:           name,
		node:           node,
		file:           f,
		loc:            w.newLocation(f, node),
		excerpt:        lineExcerpt(node, f.content),
		typeStr:        returnType,
		containingType: td.name,
		static:         hasModifier(node, "static"),
		virtual:        hasModifier(node, "virtual"),
		abstract:       hasModifier(node, "abstract"),
		override:       hasModifier(node, "override"),
		body:           firstChildOfType(node, "block"),
	}
	if arrow := firstChildOfType(node, "arrow_expression_clause"); arrow != nil {
		d.arrowBody = arrowBodyExpr(arrow)
	}
	if paramList := firstChildOfType(node, "parameter_list"); paramList != nil {
		d.params = w.parameterSigs(f, d, paramList)
	}
	return d
}

func (w *Workspace) parameterSigs(f *file, method *decl, paramList *sitter.Node) []*decl {
	var out []*decl
	for _, p := range immediateChildrenOfType(paramList, "parameter") {
		nameNode := firstChildOfType(p, "identifier")
		if nameNode == nil {
			continue
		}
		out = append(out, &decl{
			kind:             insight.Parameter,
			name:             nodeText(nameNode, f.content),
			node:             p,
			file:             f,
			loc:              w.newLocation(f, p),
			excerpt:          lineExcerpt(p, f.content),
			containingType:   method.containingType,
			containingMethod: method,
		})
	}
	return out
}

func (w *Workspace) fieldSigs(f *file, td *typeDecl, node *sitter.Node) []*decl {
	static := hasModifier(node, "static")
	typeStr := ""
	if vd := firstChildOfType(node, "variable_declaration"); vd != nil {
		if t := firstChildOfType(vd, "predefined_type", "builtin_type", "generic_name", "nullable_type", "identifier", "qualified_name"); t != nil {
			typeStr = nodeText(t, f.content)
		}
	}
	var out []*decl
	for _, declr := range findAllShallow(node, "variable_declarator") {
		nameNode := firstChildOfType(declr, "identifier")
		if nameNode == nil {
			continue
		}
		out = append(out, &decl{
			kind:           insight.Field,
			name:           nodeText(nameNode, f.content),
			node:           declr,
			file:           f,
			loc:            w.newLocation(f, declr),
			excerpt:        lineExcerpt(declr, f.content),
			typeStr:        typeStr,
			containingType: td.name,
			static:         static,
		})
	}
	return out
}

func (w *Workspace) propertySig(f *file, td *typeDecl, node *sitter.Node) *decl {
	name := nodeText(childByField(node, "name", "identifier"), f.content)
	typeStr := ""
	if t := firstChildOfType(node, "predefined_type", "builtin_type", "generic_name", "nullable_type"); t != nil {
		typeStr = nodeText(t, f.content)
	}
	d := &decl{
		kind:           insight.Property,
		name:           name,
		node:           node,
		file:           f,
		loc:            w.newLocation(f, node),
		excerpt:        lineExcerpt(node, f.content),
		typeStr:        typeStr,
		containingType: td.name,
		static:         hasModifier(node, "static"),
	}
	if arrow := firstChildOfType(node, "arrow_expression_clause"); arrow != nil {
		d.arrowBody = arrowBodyExpr(arrow)
	}
	return d
}

// arrowBodyExpr returns the expression under a `=> expr` clause: its only
// non-token child.
func arrowBodyExpr(arrow *sitter.Node) *sitter.Node {
	for i := 0; i < int(arrow.ChildCount()); i++ {
		c := arrow.Child(i)
		if c != nil && c.Type() != "=>" {
			return c
		}
	}
	return nil
}
