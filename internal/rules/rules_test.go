package rules

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

func TestCheckFileRole_ExportsOutsideManifestIsDiagnosed(t *testing.T) {
	file := parseForTest(t, "exports { f }\n")
	bag := diag.NewBag()
	CheckFileRole(file, source.RoleLibrary, false, bag)
	if !bag.HasErrors() {
		t.Fatal("expected exports-outside-manifest diagnostic")
	}
}

func TestCheckFileRole_BinaryRequiresSingleMain(t *testing.T) {
	file := parseForTest(t, "fn helper() {}\n")
	bag := diag.NewBag()
	CheckFileRole(file, source.RoleBinary, false, bag)
	if !bag.HasErrors() {
		t.Fatal("expected missing-main diagnostic")
	}
}

func TestCheckFileRole_BinaryMainOK(t *testing.T) {
	file := parseForTest(t, "fn main() {}\n")
	bag := diag.NewBag()
	CheckFileRole(file, source.RoleBinary, false, bag)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Diagnostics())
	}
}

func TestCheckFileRole_BadMainSignatureReportsTwoDiagnostics(t *testing.T) {
	file := parseForTest(t, "fn main(x: int) -> int { return x }\n")
	bag := diag.NewBag()
	CheckFileRole(file, source.RoleBinary, false, bag)
	if len(bag.Diagnostics()) != 2 {
		t.Fatalf("expected 2 diagnostics, got %d: %+v", len(bag.Diagnostics()), bag.Diagnostics())
	}
}

func TestCheckFileRole_MainOnlyAllowedInBinary(t *testing.T) {
	file := parseForTest(t, "fn main() {}\n")
	bag := diag.NewBag()
	CheckFileRole(file, source.RoleLibrary, false, bag)
	if !bag.HasErrors() {
		t.Fatal("expected main-only-in-binary diagnostic")
	}
}

func TestCheckDocCommentPlacement_AdjacentCommentOK(t *testing.T) {
	file := parseForTest(t, "/// does a thing\nfn f() {}\n")
	bag := diag.NewBag()
	CheckDocCommentPlacement(file, bag)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Diagnostics())
	}
}

func TestCheckDocCommentPlacement_BlankLineBeforeDeclIsDiagnosed(t *testing.T) {
	file := parseForTest(t, "/// does a thing\n\nfn f() {}\n")
	bag := diag.NewBag()
	CheckDocCommentPlacement(file, bag)
	if !bag.HasErrors() {
		t.Fatal("expected a misplaced-doc-comment diagnostic")
	}
}

func TestCheckImportOrder_ImportAfterDeclIsDiagnosed(t *testing.T) {
	file := parseForTest(t, "fn f() {}\nimport workspace::lib { g }\n")
	bag := diag.NewBag()
	CheckImportOrder(file, bag)
	if !bag.HasErrors() {
		t.Fatal("expected import-order diagnostic")
	}
}
