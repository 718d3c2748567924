package exports

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

func TestResolve_ExportsPublicSymbol(t *testing.T) {
	file := parseForTest(t, "public fn f() {}\nexports { f }\n")
	table := symbols.NewTable(0)
	cbag := diag.NewBag()
	symbols.Collect(file, 0, table, cbag)

	bag := diag.NewBag()
	Resolve([]*ast.File{file}, table, bag)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Diagnostics())
	}
	sym, _ := table.Lookup("f")
	if sym.Visibility != symbols.Exported {
		t.Fatalf("want Exported, got %v", sym.Visibility)
	}
}

func TestResolve_NonPublicExportIsDiagnosed(t *testing.T) {
	file := parseForTest(t, "fn f() {}\nexports { f }\n")
	table := symbols.NewTable(0)
	cbag := diag.NewBag()
	symbols.Collect(file, 0, table, cbag)

	bag := diag.NewBag()
	Resolve([]*ast.File{file}, table, bag)
	if !bag.HasErrors() {
		t.Fatal("expected a not-public diagnostic")
	}
}

func TestResolve_UndeclaredExportIsDiagnosed(t *testing.T) {
	file := parseForTest(t, "exports { nope }\n")
	table := symbols.NewTable(0)
	bag := diag.NewBag()
	Resolve([]*ast.File{file}, table, bag)
	if !bag.HasErrors() {
		t.Fatal("expected an undeclared-export diagnostic")
	}
}
