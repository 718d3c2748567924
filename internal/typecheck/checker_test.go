package typecheck

import (
	"testing"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/lexer"
	"lumen/internal/parser"
	"lumen/internal/source"
)

func checkSource(t *testing.T, src string) *diag.Bag {
	t.Helper()
	raw := lexer.New(source.FileID(0), src).Tokenize()
	toks := lexer.InsertStatementTerminators(raw)
	parseBag := diag.NewBag()
	file := parser.Parse(source.FileID(0), toks, parseBag)
	if parseBag.HasErrors() {
		t.Fatalf("parse errors: %+v", parseBag.Diagnostics())
	}

	names := map[string]bool{}
	for _, id := range file.Decls {
		d := file.DeclArena.Get(id)
		switch d.Kind {
		case ast.DeclStruct, ast.DeclEnum, ast.DeclInterface, ast.DeclUnion, ast.DeclTypeAlias:
			names[d.Name] = true
		}
	}
	registry := NewTypeRegistry(source.PackageID(0), names)
	bag := diag.NewBag()
	checker := NewChecker(file, source.PackageID(0), registry, bag)
	checker.CheckFile()
	return bag
}

func TestCheck_SimpleFunctionNoErrors(t *testing.T) {
	bag := checkSource(t, "fn add(a: int, b: int) -> int {\n return a + b\n}\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Diagnostics())
	}
}

func TestCheck_MismatchedReturnType(t *testing.T) {
	bag := checkSource(t, "fn f() -> int {\n return \"nope\"\n}\n")
	if !bag.HasErrors() {
		t.Fatalf("expected a type mismatch error")
	}
}

func TestCheck_MissingFinalReturn(t *testing.T) {
	bag := checkSource(t, "fn f() -> int {\n let x = 1\n}\n")
	if !bag.HasErrors() {
		t.Fatalf("expected a missing-return error")
	}
}

func TestCheck_UndefinedName(t *testing.T) {
	bag := checkSource(t, "fn f() {\n let x = y\n}\n")
	found := false
	for _, d := range bag.Diagnostics() {
		if d.Code == diag.CodeTypeUnknownName {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeTypeUnknownName, got %+v", bag.Diagnostics())
	}
}

func TestCheck_AssignToImmutableLet(t *testing.T) {
	bag := checkSource(t, "fn f() {\n let x = 1\n x = 2\n}\n")
	found := false
	for _, d := range bag.Diagnostics() {
		if d.Code == diag.CodeTypeMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a reassignment-to-let diagnostic, got %+v", bag.Diagnostics())
	}
}

func TestCheck_NilNarrowingInIf(t *testing.T) {
	src := "fn f(x: int?) -> int {\n" +
		" if x != nil {\n" +
		"  return x\n" +
		" }\n" +
		" return 0\n" +
		"}\n"
	bag := checkSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Diagnostics())
	}
}

func TestCheck_UnreachableCodeAfterReturn(t *testing.T) {
	bag := checkSource(t, "fn f() -> int {\n return 1\n let x = 2\n}\n")
	found := false
	for _, d := range bag.Diagnostics() {
		if d.Code == diag.CodeTypeUnreachableCode {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeTypeUnreachableCode, got %+v", bag.Diagnostics())
	}
}

func TestCheck_UnusedBinding(t *testing.T) {
	bag := checkSource(t, "fn f() {\n let x = 1\n}\n")
	found := false
	for _, d := range bag.Diagnostics() {
		if d.Code == diag.CodeTypeUnusedBinding {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeTypeUnusedBinding, got %+v", bag.Diagnostics())
	}
}

func TestCheck_StructMethodCallResolvesAndTypeChecks(t *testing.T) {
	src := `
struct Counter {
	count: int,

	fn get(self) -> int {
		return self.count
	}

	fn increment(mut self) {
		self.count = self.count + 1
	}
}

fn use(c: Counter) -> int {
	c.increment()
	return c.get()
}
`
	bag := checkSource(t, src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Diagnostics())
	}
}

func TestCheck_StructMethodBadReturnTypeIsDiagnosed(t *testing.T) {
	src := `
struct Counter {
	count: int,

	fn get(self) -> int {
		return "nope"
	}
}
`
	bag := checkSource(t, src)
	found := false
	for _, d := range bag.Diagnostics() {
		if d.Code == diag.CodeTypeMismatch {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a type mismatch inside the method body, got %+v", bag.Diagnostics())
	}
}

func TestCheck_UnknownTypeNameIsDiagnosed(t *testing.T) {
	bag := checkSource(t, "fn f(x: Bogus) {\n}\n")
	found := false
	for _, d := range bag.Diagnostics() {
		if d.Code == diag.CodeTypeUnknownName {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected CodeTypeUnknownName, got %+v", bag.Diagnostics())
	}
}

func TestCheck_TypeParamInScopeIsNotUnknown(t *testing.T) {
	bag := checkSource(t, "fn identity[T](x: T) -> T {\n return x\n}\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Diagnostics())
	}
}
