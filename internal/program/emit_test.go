package program

import (
	"testing"

	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/lexer"
	"lumen/internal/parser"
	"lumen/internal/source"
	"lumen/internal/typecheck"
)

func checkAndEmit(t *testing.T, src string) *Program {
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
		if d.Kind == ast.DeclStruct {
			names[d.Name] = true
		}
	}
	registry := typecheck.NewTypeRegistry(source.PackageID(0), names)
	bag := diag.NewBag()
	checker := typecheck.NewChecker(file, source.PackageID(0), registry, bag)
	checker.CheckFile()
	if bag.HasErrors() {
		t.Fatalf("type errors: %+v", bag.Diagnostics())
	}
	return Emit(file, checker, "workspace/main")
}

func TestEmit_SimpleFunction(t *testing.T) {
	prog := checkAndEmit(t, "fn add(a: int, b: int) -> int {\n return a + b\n}\n")
	if len(prog.Functions) != 1 {
		t.Fatalf("want 1 function, got %d", len(prog.Functions))
	}
	fn := prog.Functions[0]
	if fn.Ref.SymbolName != "add" || fn.Ref.PackagePath != "workspace/main" {
		t.Fatalf("unexpected ref: %+v", fn.Ref)
	}
	if len(fn.Body) != 1 || fn.Body[0].Kind != SReturn {
		t.Fatalf("expected a single return statement, got %+v", fn.Body)
	}
}

func TestEmit_ConstantPoolDeduplicates(t *testing.T) {
	prog := checkAndEmit(t, "fn f() -> int {\n let a = 1\n let b = 1\n return a + b\n}\n")
	count := 0
	for _, c := range prog.Constants {
		if c.Kind == TInt && c.Int == 1 {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("want constant 1 interned once, found %d entries", count)
	}
}

func TestEmit_BuiltinCallRecognized(t *testing.T) {
	prog := checkAndEmit(t, "fn f() {\n print(\"hi\")\n}\n")
	fn := prog.Functions[0]
	if len(fn.Body) != 1 || fn.Body[0].Kind != SExpr {
		t.Fatalf("expected a single expression statement, got %+v", fn.Body)
	}
	call := fn.Body[0].Expr
	if call.Kind != ECall || call.Target.Kind != CallBuiltin || call.Target.Name != "print" {
		t.Fatalf("expected a builtin call to print, got %+v", call)
	}
}

func TestMarshalUnmarshal_RoundTrips(t *testing.T) {
	prog := checkAndEmit(t, "fn f() -> int {\n return 1\n}\n")
	data, err := Marshal(prog)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got.Functions) != len(prog.Functions) {
		t.Fatalf("round-trip lost functions: want %d, got %d", len(prog.Functions), len(got.Functions))
	}
}
