package symbols

import (
	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/source"
)

// Collect walks every declaration in file and records its name in table.
// Only a duplicate `public` name within a package is a diagnostic, raised
// on the second occurrence: a non-public name merely marks its name as
// declared, so two files each declaring an unrelated private helper under
// the same name is valid. Declarations that can't carry visibility at the
// top level (imports, exports, tests, groups) are skipped: they aren't
// symbols other files can reference by name.
func Collect(file *ast.File, pkg source.PackageID, table *Table, bag *diag.Bag) {
	for _, declID := range file.Decls {
		d := file.DeclArena.Get(declID)
		switch d.Kind {
		case ast.DeclImport, ast.DeclExports, ast.DeclTest, ast.DeclGroup, ast.DeclRecovered:
			continue
		}
		vis := Declared
		if d.Public {
			vis = PackageVisible
		}
		sym := Symbol{
			Name:       d.Name,
			Decl:       declID,
			File:       file.ID,
			Package:    pkg,
			Visibility: vis,
			Kind:       d.Kind,
		}
		if !d.Public {
			table.Declare(sym)
			continue
		}
		if existing, inserted := table.Insert(sym); !inserted && existing.Visibility == PackageVisible {
			bag.Add(diag.New(diag.PhaseSymbols, diag.CodeSymbolDuplicateDeclaration, diag.Error, d.Span,
				"'"+d.Name+"' is already declared in this package"))
		} else if !inserted {
			table.Declare(sym)
		}
	}
}
