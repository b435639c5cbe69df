// Package csoracle implements insight.Oracle against real C# source using
// the tree-sitter C# grammar already vendored for pkg/extractor. It is the
// one concrete semantic front-end this repository ships; pkg/insight itself
// never imports it.
package csoracle

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/devlin-oss/varinsight/pkg/insight"
)

// decl is one declared entity: a class member, a method parameter, or a
// local variable. It is the concrete backing of a csSymbol. Declarations
// are interned in the Workspace so the same logical symbol always yields
// the same *decl pointer, which is what makes csSymbol.Equal and the
// driver's visited-set semantics work.
type decl struct {
	kind SymbolShape

	name    string
	node    *sitter.Node
	file    *file
	loc     insight.Location
	excerpt string
	typeStr string

	containingType string
	static         bool

	// Method-only.
	virtual    bool
	abstract   bool
	override   bool
	overridden *decl // nil unless resolved during override-chain wiring
	params     []*decl
	body       *sitter.Node // block, or nil if expression-bodied/abstract
	arrowBody  *sitter.Node // arrow_expression_clause's expression, if any

	// Parameter/local-only.
	containingMethod *decl
}

// SymbolShape aliases insight.SymbolKind for readability inside this package.
type SymbolShape = insight.SymbolKind

const (
	shapeLocal    = insight.LocalVariable
	shapeParam    = insight.Parameter
	shapeField    = insight.Field
	shapeProperty = insight.Property
	shapeMethod   = insight.Method
	shapeOther    = insight.Other
)
