package imports

import (
	"testing"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/lexer"
	"lumen/internal/parser"
	"lumen/internal/source"
	"lumen/internal/symbols"
)

func parseForTest(t *testing.T, src string) *ast.File {
	t.Helper()
	raw := lexer.New(source.FileID(0), src).Tokenize()
	toks := lexer.InsertStatementTerminators(raw)
	bag := diag.NewBag()
	file := parser.Parse(source.FileID(0), toks, bag)
	if bag.HasErrors() {
		t.Fatalf("parse errors: %+v", bag.Diagnostics())
	}
	return file
}

func TestResolve_ImportsExportedSymbol(t *testing.T) {
	target := parseForTest(t, "public fn helper() {}\nexports { helper }\n")
	targetTable := symbols.NewTable(1)
	symbols.Collect(target, 1, targetTable, diag.NewBag())
	exportBag := diag.NewBag()
	resolveExports(t, target, targetTable, exportBag)

	reg := NewRegistry()
	reg.Register("workspace/lib", targetTable)

	importer := parseForTest(t, "import workspace::lib { helper }\n")
	bag := diag.NewBag()
	resolved := Resolve(importer, reg, map[string]bool{}, bag)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Diagnostics())
	}
	if len(resolved) != 1 || len(resolved[0].Bindings) != 1 {
		t.Fatalf("got %+v", resolved)
	}
}

func TestResolve_UnknownPackageIsDiagnosed(t *testing.T) {
	importer := parseForTest(t, "import workspace::nope { thing }\n")
	bag := diag.NewBag()
	Resolve(importer, NewRegistry(), map[string]bool{}, bag)
	if !bag.HasErrors() {
		t.Fatal("expected an unknown-package diagnostic")
	}
}

func TestResolve_NonExportedBindingIsDiagnosed(t *testing.T) {
	target := parseForTest(t, "fn helper() {}\n")
	targetTable := symbols.NewTable(1)
	symbols.Collect(target, 1, targetTable, diag.NewBag())

	reg := NewRegistry()
	reg.Register("workspace/lib", targetTable)

	importer := parseForTest(t, "import workspace::lib { helper }\n")
	bag := diag.NewBag()
	Resolve(importer, reg, map[string]bool{}, bag)
	if !bag.HasErrors() {
		t.Fatal("expected an unknown-binding diagnostic since 'helper' was never exported")
	}
}

func resolveExports(t *testing.T, file *ast.File, table *symbols.Table, bag *diag.Bag) {
	t.Helper()
	for _, declID := range file.Decls {
		d := file.DeclArena.Get(declID)
		if d.Kind != ast.DeclExports {
			continue
		}
		for _, name := range d.Exported {
			table.MarkExported(name)
		}
	}
}
