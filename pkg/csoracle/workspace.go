package csoracle

import (
	"fmt"
	"os"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/devlin-oss/varinsight/internal/log"
	"github.com/devlin-oss/varinsight/internal/scanner"
	"github.com/devlin-oss/varinsight/pkg/extractor"
	"github.com/devlin-oss/varinsight/pkg/insight"
)

// file is one parsed compilation unit.
type file struct {
	path    string
	content []byte
	tree    *sitter.Tree
	root    *sitter.Node
}

// typeDecl is a class/struct's signature: its members, already
// extracted as decls, and the simple names in its base_list (no namespace
// qualification — see DESIGN.md for the scope this drops).
type typeDecl struct {
	name       string
	baseNames  []string
	file       *file
	node       *sitter.Node
	methods    []*decl
	fields     []*decl
	properties []*decl

	initCtx *decl // lazily built by fieldInitContext
}

// Workspace indexes every .cs/.csx file under a root directory and answers
// the structural questions csoracle's Oracle methods need: symbol lookup,
// type hierarchy, cross-file references. It is built once per CLI
// invocation and is not safe for concurrent mutation (matches §5: the
// oracle is thread-compatible read-only for the invocation's duration).
type Workspace struct {
	root   string
	logger log.Logger

	files  []*file
	byPath map[string]*file

	types map[string]*typeDecl // keyed by simple type name

	// scopes caches the per-method local/parameter resolution built lazily
	// by scopeFor, so repeated oracle calls against the same
	// method return identical decl pointers.
	scopes map[*decl]*methodScope

	cache *parseCache
}

// NewWorkspace creates an empty workspace rooted at dir. Call Load before
// using it as an Oracle.
func NewWorkspace(dir string, logger log.Logger) *Workspace {
	return &Workspace{
		root:   dir,
		logger: logger,
		byPath: make(map[string]*file),
		types:  make(map[string]*typeDecl),
		scopes: make(map[*decl]*methodScope),
	}
}

// WithCache attaches a disk-backed signature cache (see cache.go). Optional.
func (w *Workspace) WithCache(c *parseCache) *Workspace {
	w.cache = c
	return w
}

// Load scans the workspace root, parses every C# file, and builds the type
// index (class/struct members, base lists). Method and local-variable
// bodies are resolved lazily on first access (see scope.go).
func (w *Workspace) Load() error {
	sc := scanner.New(scanner.DefaultOptions())
	found, err := sc.Scan(w.root)
	if err != nil {
		return fmt.Errorf("scanning workspace %s: %w", w.root, err)
	}

	parser := extractor.NewCSharpParser()
	for _, fi := range found {
		if fi.Language != "csharp" {
			continue
		}
		content, err := os.ReadFile(fi.FullPath)
		if err != nil {
			if w.logger != nil {
				w.logger.Warn("skipping unreadable file", "path", fi.FullPath, "error", err)
			}
			continue
		}
		tree := parser.Parse(nil, content)
		if tree == nil {
			if w.logger != nil {
				w.logger.Warn("skipping unparsable file", "path", fi.FullPath)
			}
			continue
		}
		f := &file{path: fi.FullPath, content: content, tree: tree, root: tree.RootNode()}
		w.files = append(w.files, f)
		w.byPath[f.path] = f

		w.indexFile(f)

		if w.cache != nil && w.logger != nil {
			if w.cache.checkAndUpdate(f, w.typeNamesIn(f)) {
				w.logger.Debug("type signature changed since last run", "path", f.path)
			}
		}
	}

	w.wireOverrides()
	return nil
}

func (w *Workspace) typeNamesIn(f *file) []string {
	var names []string
	for name, td := range w.types {
		if td.file == f {
			names = append(names, name)
		}
	}
	return names
}

// fileAt returns the parsed file for an exact path, if loaded.
func (w *Workspace) fileAt(path string) (*file, bool) {
	f, ok := w.byPath[path]
	return f, ok
}

func (w *Workspace) newLocation(f *file, node *sitter.Node) insight.Location {
	line, col := nodeLocation(node, f.path)
	return insight.Location{File: f.path, Line: line, Column: col}
}

// NewOracle returns this workspace as an insight.Oracle.
func (w *Workspace) NewOracle() insight.Oracle {
	return &CSOracle{ws: w}
}

// wireOverrides sets decl.overridden on every override method by walking
// each type's base_list and matching name+arity against the base type's
// methods. Full overload resolution isn't attempted (see DESIGN.md): a
// name+arity collision is treated as the overridden method.
func (w *Workspace) wireOverrides() {
	for _, td := range w.types {
		for _, m := range td.methods {
			if !m.override {
				continue
			}
			if base := w.findOverriddenMethod(td, m); base != nil {
				m.overridden = base
			}
		}
	}
}

func (w *Workspace) findOverriddenMethod(td *typeDecl, m *decl) *decl {
	seen := map[string]bool{td.name: true}
	queue := append([]string{}, td.baseNames...)
	for len(queue) > 0 {
		baseName := queue[0]
		queue = queue[1:]
		if seen[baseName] {
			continue
		}
		seen[baseName] = true
		baseType, ok := w.types[baseName]
		if !ok {
			continue
		}
		for _, candidate := range baseType.methods {
			if candidate.name == m.name && len(candidate.params) == len(m.params) {
				return candidate
			}
		}
		queue = append(queue, baseType.baseNames...)
	}
	return nil
}

// typeByDecl returns the typeDecl a member decl belongs to.
func (w *Workspace) typeByDecl(d *decl) (*typeDecl, bool) {
	td, ok := w.types[d.containingType]
	return td, ok
}
