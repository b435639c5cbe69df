package csoracle

import sitter "github.com/smacker/go-tree-sitter"

// findAll collects every descendant of node (at any depth, including node
// itself) whose grammar type matches one of typeNames. This mirrors the
// recursive-walk idiom pkg/extractor/csharp.go uses (walkForClasses,
// walkForUsing) rather than relying on a tree-sitter query object.
func findAll(node *sitter.Node, typeNames ...string) []*sitter.Node {
	var out []*sitter.Node
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if matchesType(n, typeNames) {
			out = append(out, n)
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			visit(n.Child(i))
		}
	}
	visit(node)
	return out
}

// findAllShallow is findAll but does not descend into children of a node
// once it matches, so nested declarations of the same kind (e.g. a local
// class inside a method) are not picked up as siblings.
func findAllShallow(node *sitter.Node, typeNames ...string) []*sitter.Node {
	var out []*sitter.Node
	var visit func(n *sitter.Node)
	visit = func(n *sitter.Node) {
		if n == nil {
			return
		}
		if matchesType(n, typeNames) {
			out = append(out, n)
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			visit(n.Child(i))
		}
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		visit(node.Child(i))
	}
	return out
}

// immediateChildrenOfType returns node's direct children matching typeNames.
func immediateChildrenOfType(node *sitter.Node, typeNames ...string) []*sitter.Node {
	var out []*sitter.Node
	if node == nil {
		return out
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if matchesType(c, typeNames) {
			out = append(out, c)
		}
	}
	return out
}

// firstChildOfType returns the first direct child matching any of typeNames.
func firstChildOfType(node *sitter.Node, typeNames ...string) *sitter.Node {
	children := immediateChildrenOfType(node, typeNames...)
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

func matchesType(n *sitter.Node, typeNames []string) bool {
	if n == nil {
		return false
	}
	t := n.Type()
	for _, want := range typeNames {
		if t == want {
			return true
		}
	}
	return false
}

// nodeText slices the source text covered by node out of content.
func nodeText(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	start, end := node.StartByte(), node.EndByte()
	if start >= uint32(len(content)) || end > uint32(len(content)) || start > end {
		return ""
	}
	return string(content[start:end])
}

// nodeLocation returns node's start point as a 1-based (line, column) pair.
func nodeLocation(node *sitter.Node, path string) (line, column int) {
	if node == nil {
		return 0, 0
	}
	p := node.StartPoint()
	return int(p.Row) + 1, int(p.Column) + 1
}

// lineExcerpt returns the single source line node starts on.
func lineExcerpt(node *sitter.Node, content []byte) string {
	if node == nil {
		return ""
	}
	line, _ := nodeLocation(node, "")
	return sourceLine(content, line)
}

func sourceLine(content []byte, line int) string {
	if line <= 0 {
		return ""
	}
	start := 0
	current := 1
	for i := 0; i < len(content); i++ {
		if current == line {
			start = i
			break
		}
		if content[i] == '\n' {
			current++
		}
	}
	if current != line {
		return ""
	}
	end := start
	for end < len(content) && content[end] != '\n' {
		end++
	}
	return trimCR(string(content[start:end]))
}

func trimCR(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\r' {
		return s[:len(s)-1]
	}
	return s
}

var modifierKeywords = map[string]bool{
	"public": true, "private": true, "protected": true, "internal": true,
	"static": true, "virtual": true, "abstract": true, "override": true,
	"sealed": true, "readonly": true, "async": true, "partial": true,
	"new": true, "const": true,
}

// childByField tries the grammar's named field first (tree-sitter-c-sharp
// exposes "left"/"right" on assignment_expression, "function"/"arguments"
// on invocation_expression, "expression"/"name" on member_access_expression,
// the way pkg/dfg/python.go relies on field names for its own assignment
// targets) and falls back to the first child whose type is in
// fallbackTypes if the field lookup comes back empty, since this package
// has no ground-truth grammar source to confirm every field name against.
func childByField(node *sitter.Node, field string, fallbackTypes ...string) *sitter.Node {
	if node == nil {
		return nil
	}
	if f := node.ChildByFieldName(field); f != nil {
		return f
	}
	if len(fallbackTypes) == 0 {
		return nil
	}
	return firstChildOfType(node, fallbackTypes...)
}

// pointLE reports whether point a is <= point b in (row, column)
// lexicographic order.
func pointLE(a, b sitter.Point) bool {
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Column <= b.Column
}

// nodeAtPosition returns the smallest descendant of node (including node
// itself) whose byte range contains the 0-based (row, column) point, or nil
// if the point falls outside node entirely. Identifiers are grammar leaves,
// so this naturally bottoms out at the identifier token under the cursor.
func nodeAtPosition(node *sitter.Node, row, column uint32) *sitter.Node {
	if node == nil {
		return nil
	}
	point := sitter.Point{Row: row, Column: column}
	if !pointLE(node.StartPoint(), point) || !pointLE(point, node.EndPoint()) {
		return nil
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		if r := nodeAtPosition(node.Child(i), row, column); r != nil {
			return r
		}
	}
	return node
}

// nodeContains reports whether outer's byte range fully contains inner's.
func nodeContains(outer, inner *sitter.Node) bool {
	if outer == nil || inner == nil {
		return false
	}
	return outer.StartByte() <= inner.StartByte() && inner.EndByte() <= outer.EndByte()
}

// hasModifier reports whether node (a *_declaration node) carries kw among
// its modifiers. tree-sitter-c-sharp exposes modifiers either as direct
// keyword-typed children or wrapped in a "modifier" node one level down;
// this checks both shapes.
func hasModifier(node *sitter.Node, kw string) bool {
	if node == nil {
		return false
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		c := node.Child(i)
		if c == nil {
			continue
		}
		if c.Type() == kw {
			return true
		}
		if c.Type() == "modifier" && int(c.ChildCount()) > 0 && c.Child(0) != nil && c.Child(0).Type() == kw {
			return true
		}
	}
	return false
}
