package symbols

import (
	"testing"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/lexer"
	"lumen/internal/parser"
	"lumen/internal/source"
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

func TestCollect_InsertsSymbols(t *testing.T) {
	file := parseForTest(t, "public fn f() {}\nstruct S { x: int }\n")
	table := NewTable(0)
	bag := diag.NewBag()
	Collect(file, 0, table, bag)

	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Diagnostics())
	}
	if _, ok := table.Lookup("f"); !ok {
		t.Fatal("expected symbol 'f'")
	}
	if sym, _ := table.Lookup("f"); sym.Visibility != PackageVisible {
		t.Fatalf("public fn should be PackageVisible, got %v", sym.Visibility)
	}
	if sym, _ := table.Lookup("S"); sym.Visibility != Declared {
		t.Fatalf("non-public struct should be Declared, got %v", sym.Visibility)
	}
}

func TestCollect_DuplicatePublicDeclarationIsDiagnosed(t *testing.T) {
	file := parseForTest(t, "public fn f() {}\npublic fn f() {}\n")
	table := NewTable(0)
	bag := diag.NewBag()
	Collect(file, 0, table, bag)

	if !bag.HasErrors() {
		t.Fatal("expected a duplicate-declaration diagnostic")
	}
}

func TestCollect_DuplicatePrivateDeclarationIsNotDiagnosed(t *testing.T) {
	file := parseForTest(t, "fn f() {}\nfn f() {}\n")
	table := NewTable(0)
	bag := diag.NewBag()
	Collect(file, 0, table, bag)

	if bag.HasErrors() {
		t.Fatalf("unexpected errors for duplicate private names: %+v", bag.Diagnostics())
	}
}
