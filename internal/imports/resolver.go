// Package imports resolves `import` declarations against a workspace's
// known packages, producing the binding each imported local name refers to.
package imports

import (
	"strings"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/symbols"
)

// Registry maps a fully-qualified package path ("workspace", "workspace/lib",
// "std/io", "external/foo") to that package's symbol table. Workspace
// packages are populated by the caller from discovery + symbol collection;
// std/external packages are stubs the caller seeds ahead of time (lumen
// does not ship a standard library implementation of its own — see
// Non-goals).
type Registry struct {
	byPath map[string]*symbols.Table
}

// NewRegistry returns an empty package registry.
func NewRegistry() *Registry {
	return &Registry{byPath: map[string]*symbols.Table{}}
}

// Register associates a package path with its symbol table.
func (r *Registry) Register(path string, table *symbols.Table) {
	r.byPath[path] = table
}

// ResolvedBinding is one local name introduced by an import, pointing at
// the exported symbol it refers to.
type ResolvedBinding struct {
	LocalName string
	Symbol    *symbols.Symbol
}

// ResolvedImport is one import declaration's resolved bindings.
type ResolvedImport struct {
	PackagePath string
	Bindings    []ResolvedBinding
}

// originPrefixes are the recognized roots an import path may begin with:
// "workspace" for same-workspace packages (optionally followed by
// "::segment"s), or "std"/"external" for packages outside the workspace.
var originPrefixes = map[string]bool{"workspace": true, "std": true, "external": true}

// Resolve resolves every `import` declaration in file, using reg to look up
// target packages and localNames to detect same-file name collisions
// across multiple imports (and pre-seeded with any names already declared
// by the file itself).
func Resolve(file *ast.File, reg *Registry, localNames map[string]bool, bag *diag.Bag) []ResolvedImport {
	var out []ResolvedImport
	for _, declID := range file.Decls {
		d := file.DeclArena.Get(declID)
		if d.Kind != ast.DeclImport {
			continue
		}

		segments := strings.Split(d.PackagePath, "::")
		if !originPrefixes[segments[0]] {
			bag.Add(diag.New(diag.PhaseImports, diag.CodeImportUnknownPackage, diag.Error, d.Span,
				"import path must start with 'workspace', 'std', or 'external'"))
			continue
		}
		lookupPath := strings.Join(segments, "/")

		table, ok := reg.byPath[lookupPath]
		if !ok {
			bag.Add(diag.New(diag.PhaseImports, diag.CodeImportUnknownPackage, diag.Error, d.Span,
				"unknown package '"+d.PackagePath+"'"))
			continue
		}

		resolved := ResolvedImport{PackagePath: lookupPath}
		for _, b := range d.Bindings {
			sym, ok := table.Lookup(b.Name)
			if !ok || sym.Visibility != symbols.Exported {
				bag.Add(diag.New(diag.PhaseImports, diag.CodeImportUnknownBinding, diag.Error, b.Span,
					"package '"+d.PackagePath+"' does not export '"+b.Name+"'"))
				continue
			}
			if localNames[b.Alias] {
				bag.Add(diag.New(diag.PhaseImports, diag.CodeImportNameCollision, diag.Error, b.Span,
					"'"+b.Alias+"' collides with another name already in scope"))
				continue
			}
			localNames[b.Alias] = true
			resolved.Bindings = append(resolved.Bindings, ResolvedBinding{LocalName: b.Alias, Symbol: sym})
		}
		out = append(out, resolved)
	}
	return out
}
