package parser

import (
	"testing"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/lexer"
	"lumen/internal/source"
)

func parseSource(t *testing.T, src string) (*ast.File, *diag.Bag) {
	t.Helper()
	raw := lexer.New(source.FileID(0), src).Tokenize()
	toks := lexer.InsertStatementTerminators(raw)
	bag := diag.NewBag()
	file := Parse(source.FileID(0), toks, bag)
	return file, bag
}

func TestParse_SimpleFunction(t *testing.T) {
	file, bag := parseSource(t, `
fn add(a: int, b: int) -> int {
	return a + b
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Diagnostics())
	}
	if len(file.Decls) != 1 {
		t.Fatalf("want 1 decl, got %d", len(file.Decls))
	}
	d := file.DeclArena.Get(file.Decls[0])
	if d.Kind != ast.DeclFunction || d.Name != "add" {
		t.Fatalf("got %+v", d)
	}
	if len(d.Params) != 2 {
		t.Fatalf("want 2 params, got %d", len(d.Params))
	}
}

func TestParse_StructAndLiteral(t *testing.T) {
	file, bag := parseSource(t, `
struct Point {
	x: int,
	y: int,
}

fn origin() -> Point {
	return Point { x: 0, y: 0 }
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Diagnostics())
	}
	if len(file.Decls) != 2 {
		t.Fatalf("want 2 decls, got %d", len(file.Decls))
	}
}

func TestParse_IfConditionNotMisreadAsStructLiteral(t *testing.T) {
	file, bag := parseSource(t, `
fn check(ok: bool) -> int {
	if ok {
		return 1
	}
	return 0
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Diagnostics())
	}
	fn := file.DeclArena.Get(file.Decls[0])
	body := file.Stmts.Get(fn.Body)
	if len(body.Statements) != 2 {
		t.Fatalf("want 2 statements in body, got %d", len(body.Statements))
	}
}

func TestParse_ImportAndExports(t *testing.T) {
	file, bag := parseSource(t, `
import workspace::lib::collections { List, Map as M }

exports { add, Point }
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Diagnostics())
	}
	imp := file.DeclArena.Get(file.Decls[0])
	if imp.Kind != ast.DeclImport || imp.PackagePath != "workspace::lib::collections" {
		t.Fatalf("got %+v", imp)
	}
	if len(imp.Bindings) != 2 || imp.Bindings[1].Alias != "M" {
		t.Fatalf("got bindings %+v", imp.Bindings)
	}
	exp := file.DeclArena.Get(file.Decls[1])
	if exp.Kind != ast.DeclExports || len(exp.Exported) != 2 {
		t.Fatalf("got %+v", exp)
	}
}

func TestParse_GenericFunctionUsesBracketTypeParams(t *testing.T) {
	file, bag := parseSource(t, `
fn first[T implements Comparable](xs: [T]) -> T {
	return xs[0]
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Diagnostics())
	}
	d := file.DeclArena.Get(file.Decls[0])
	if len(d.TypeParams) != 1 || d.TypeParams[0].Name != "T" || d.TypeParams[0].Bound == ast.NoType {
		t.Fatalf("got type params %+v", d.TypeParams)
	}
}

func TestParse_GenericTypeApplicationUsesBrackets(t *testing.T) {
	file, bag := parseSource(t, `
fn wrap(x: int) -> Box[int] {
	return Box { value: x }
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Diagnostics())
	}
	d := file.DeclArena.Get(file.Decls[0])
	result := file.Types.Get(d.Result)
	if len(result.Segments) != 1 || result.Segments[0].Name != "Box" || len(result.Segments[0].Args) != 1 {
		t.Fatalf("got result type %+v", result)
	}
}

func TestParse_CallTypeArgsUseBracketsNotIndex(t *testing.T) {
	file, bag := parseSource(t, `
fn use() -> int {
	return first[int](xs)
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Diagnostics())
	}
	fn := file.DeclArena.Get(file.Decls[0])
	body := file.Stmts.Get(fn.Body)
	ret := file.Stmts.Get(body.Statements[0])
	call := file.Exprs.Get(ret.ReturnValue)
	if call.Kind != ast.ExprCall || len(call.TypeArgs) != 1 {
		t.Fatalf("got %+v", call)
	}
}

func TestParse_PlainIndexAccessStillWorks(t *testing.T) {
	file, bag := parseSource(t, `
fn first(xs: [int]) -> int {
	return xs[0]
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Diagnostics())
	}
	fn := file.DeclArena.Get(file.Decls[0])
	body := file.Stmts.Get(fn.Body)
	ret := file.Stmts.Get(body.Statements[0])
	idx := file.Exprs.Get(ret.ReturnValue)
	if idx.Kind != ast.ExprIndex {
		t.Fatalf("got %+v", idx)
	}
}

func TestParse_StructMethodWithSelf(t *testing.T) {
	file, bag := parseSource(t, `
struct Counter {
	count: int,

	fn get(self) -> int {
		return self.count
	}

	fn increment(mut self) {
		self.count = self.count + 1
	}
}
`)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Diagnostics())
	}
	d := file.DeclArena.Get(file.Decls[0])
	if len(d.Fields) != 1 {
		t.Fatalf("want 1 field, got %d", len(d.Fields))
	}
	if len(d.StructMethods) != 2 {
		t.Fatalf("want 2 methods, got %d: %+v", len(d.StructMethods), d.StructMethods)
	}
	if d.StructMethods[0].Name != "get" || d.StructMethods[0].Mut {
		t.Fatalf("got %+v", d.StructMethods[0])
	}
	if d.StructMethods[1].Name != "increment" || !d.StructMethods[1].Mut {
		t.Fatalf("got %+v", d.StructMethods[1])
	}
}

func TestParse_RecoversFromInvalidDeclaration(t *testing.T) {
	file, bag := parseSource(t, `
@@@ garbage

fn f() {}
`)
	if !bag.HasErrors() {
		t.Fatal("expected a recovery diagnostic for the garbage line")
	}
	found := false
	for _, d := range file.Decls {
		if file.DeclArena.Get(d).Kind == ast.DeclFunction {
			found = true
		}
	}
	if !found {
		t.Fatal("parser should still recover and parse the function after garbage input")
	}
}
