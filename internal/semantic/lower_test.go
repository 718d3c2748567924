package semantic

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

func TestLower_DropsImportsAndExports(t *testing.T) {
	file := parseForTest(t, "import workspace::lib { helper }\nexports { f }\npublic fn f() {}\n")
	m := Lower(file, nil)
	if len(m.Functions) != 1 {
		t.Fatalf("want 1 function, got %d", len(m.Functions))
	}
}

func TestLower_TagsBuiltinVsUserDefined(t *testing.T) {
	file := parseForTest(t, "fn f() { len(x) }\n")
	m := Lower(file, map[string]bool{"len": true})

	var sawBuiltin, sawUser bool
	for _, ref := range m.NameRefs {
		if ref.Name == "len" && ref.Kind == Builtin {
			sawBuiltin = true
		}
		if ref.Name == "x" && ref.Kind == UserDefined {
			sawUser = true
		}
	}
	if !sawBuiltin || !sawUser {
		t.Fatalf("expected both a builtin and a user-defined ref, got %+v", m.NameRefs)
	}
}

func TestLower_ClassifiesAssignTargets(t *testing.T) {
	file := parseForTest(t, "fn f() { x = 1\n y.field = 2\n z[0] = 3 }\n")
	m := Lower(file, nil)
	if len(m.AssignTargets) != 3 {
		t.Fatalf("want 3 assign targets, got %d", len(m.AssignTargets))
	}
	var kinds []AssignTargetKind
	for _, at := range m.AssignTargets {
		kinds = append(kinds, at.Kind)
	}
	var hasID, hasField, hasIndex bool
	for _, k := range kinds {
		switch k {
		case AssignIdentifier:
			hasID = true
		case AssignField:
			hasField = true
		case AssignIndex:
			hasIndex = true
		}
	}
	if !hasID || !hasField || !hasIndex {
		t.Fatalf("expected all three assign target kinds, got %+v", kinds)
	}
}
