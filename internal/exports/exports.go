// Package exports validates a package's `exports {}` manifest declarations
// against its collected symbol table and promotes the named symbols to
// Exported visibility.
package exports

import (
	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/symbols"
)

// Resolve validates every `exports {}` declaration across a package's
// files against table, raising diagnostics for names exported twice, names
// that don't exist, and names that exist but aren't declared `public`.
func Resolve(files []*ast.File, table *symbols.Table, bag *diag.Bag) {
	seen := map[string]bool{}
	for _, file := range files {
		for _, declID := range file.Decls {
			d := file.DeclArena.Get(declID)
			if d.Kind != ast.DeclExports {
				continue
			}
			for _, name := range d.Exported {
				if seen[name] {
					bag.Add(diag.New(diag.PhaseExports, diag.CodeExportsDuplicate, diag.Error, d.Span,
						"'"+name+"' is exported more than once"))
					continue
				}
				seen[name] = true

				sym, ok := table.Lookup(name)
				if !ok {
					bag.Add(diag.New(diag.PhaseExports, diag.CodeExportsUndeclared, diag.Error, d.Span,
						"exported name '"+name+"' has no matching declaration in this package"))
					continue
				}
				if sym.Visibility == symbols.Declared {
					bag.Add(diag.New(diag.PhaseExports, diag.CodeExportsNotPublic, diag.Error, d.Span,
						"'"+name+"' must be declared 'public' before it can be exported"))
					continue
				}
				table.MarkExported(name)
			}
		}
	}
}
