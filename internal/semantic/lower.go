// Package semantic lowers a parsed ast.File into a semantic Module: import
// and export declarations are dropped (they've already done their job by
// the symbols/exports/imports phases), every name reference is tagged
// UserDefined or Builtin, and every assignment target is classified into
// an AssignTarget sum instead of staying a bare expression.
package semantic

import (
	"lumen/internal/ast"
)

// SemanticExpressionID is the stable identifier a semantic expression
// keeps across every later phase (type checking, emission). It is the
// originating ast.ExprID: syntax and semantic IR share one arena, so a
// diagnostic raised during type checking can still point at the exact
// source span the parser recorded, without a second ID space to keep in
// sync with the first.
type SemanticExpressionID = ast.ExprID

// NameRefKind tags whether an identifier reference resolves to something
// the program defines, or to a compiler-provided builtin.
type NameRefKind uint8

const (
	UserDefined NameRefKind = iota
	Builtin
)

// NameRef is the resolution recorded for one ExprIdentifier node.
type NameRef struct {
	Kind NameRefKind
	Name string
}

// AssignTargetKind tags the variant of an AssignTarget.
type AssignTargetKind uint8

const (
	AssignIdentifier AssignTargetKind = iota
	AssignIndex
	AssignField
)

// AssignTarget replaces a bare `Assign.Target` expression with an explicit
// sum: only these three expression shapes are ever valid to assign into,
// and classifying them up front means the type checker never has to
// re-inspect a general Expr node to figure out what kind of assignment
// it's looking at.
type AssignTarget struct {
	Kind AssignTargetKind

	// AssignIdentifier
	Name string

	// AssignIndex
	IndexTarget SemanticExpressionID
	IndexKey    SemanticExpressionID

	// AssignField
	FieldBase SemanticExpressionID
	FieldName string
}

// Module is one file's lowered semantic representation.
type Module struct {
	File *ast.File

	Functions  []ast.DeclID
	Structs    []ast.DeclID
	Enums      []ast.DeclID
	Interfaces []ast.DeclID
	Unions     []ast.DeclID
	Aliases    []ast.DeclID
	Tests      []ast.DeclID

	// NameRefs maps each ExprIdentifier node's ExprID to its resolution.
	NameRefs map[SemanticExpressionID]NameRef
	// AssignTargets maps each StmtAssign node's StmtID to its classified
	// target.
	AssignTargets map[ast.StmtID]AssignTarget
}

// Lower builds a Module from file. builtins names the compiler-provided
// identifiers (e.g. "len", "print") that resolve to Builtin instead of
// UserDefined.
func Lower(file *ast.File, builtins map[string]bool) *Module {
	m := &Module{
		File:          file,
		NameRefs:      map[SemanticExpressionID]NameRef{},
		AssignTargets: map[ast.StmtID]AssignTarget{},
	}

	for _, declID := range file.Decls {
		d := file.DeclArena.Get(declID)
		switch d.Kind {
		case ast.DeclImport, ast.DeclExports:
			continue // already fully consumed by earlier phases
		case ast.DeclFunction:
			m.Functions = append(m.Functions, declID)
			m.lowerStmt(d.Body, builtins)
		case ast.DeclStruct:
			m.Structs = append(m.Structs, declID)
		case ast.DeclEnum:
			m.Enums = append(m.Enums, declID)
		case ast.DeclInterface:
			m.Interfaces = append(m.Interfaces, declID)
		case ast.DeclUnion:
			m.Unions = append(m.Unions, declID)
		case ast.DeclTypeAlias:
			m.Aliases = append(m.Aliases, declID)
		case ast.DeclTest:
			m.Tests = append(m.Tests, declID)
			m.lowerStmt(d.TestBody, builtins)
		case ast.DeclGroup:
			for _, testID := range d.GroupTests {
				m.Tests = append(m.Tests, testID)
				m.lowerStmt(file.DeclArena.Get(testID).TestBody, builtins)
			}
		}
	}
	return m
}

func (m *Module) lowerStmt(id ast.StmtID, builtins map[string]bool) {
	if id == ast.NoStmt {
		return
	}
	s := m.File.Stmts.Get(id)
	switch s.Kind {
	case ast.StmtBlock:
		for _, child := range s.Statements {
			m.lowerStmt(child, builtins)
		}
	case ast.StmtLet, ast.StmtVar:
		m.lowerExpr(s.Init, builtins)
	case ast.StmtAssign:
		m.lowerExpr(s.Value, builtins)
		m.AssignTargets[id] = m.classifyAssignTarget(s.Target, builtins)
	case ast.StmtExpr:
		m.lowerExpr(s.Expr, builtins)
	case ast.StmtReturn:
		m.lowerExpr(s.ReturnValue, builtins)
	case ast.StmtIf:
		m.lowerExpr(s.Cond, builtins)
		m.lowerStmt(s.Then, builtins)
		m.lowerStmt(s.Else, builtins)
	case ast.StmtWhile:
		m.lowerExpr(s.Cond, builtins)
		m.lowerStmt(s.Then, builtins)
	case ast.StmtForIn:
		m.lowerExpr(s.Iterable, builtins)
		m.lowerStmt(s.Body, builtins)
	}
}

func (m *Module) lowerExpr(id ast.ExprID, builtins map[string]bool) {
	if id == ast.NoExpr {
		return
	}
	e := m.File.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprIdentifier:
		kind := UserDefined
		if builtins[e.Name] {
			kind = Builtin
		}
		m.NameRefs[id] = NameRef{Kind: kind, Name: e.Name}
	case ast.ExprListLiteral:
		for _, el := range e.Elements {
			m.lowerExpr(el, builtins)
		}
	case ast.ExprStructLiteral:
		for _, f := range e.Fields {
			m.lowerExpr(f.Value, builtins)
		}
	case ast.ExprBinary:
		m.lowerExpr(e.Left, builtins)
		m.lowerExpr(e.Right, builtins)
	case ast.ExprUnary:
		m.lowerExpr(e.Operand, builtins)
	case ast.ExprCall:
		m.lowerExpr(e.Callee, builtins)
		for _, a := range e.Arguments {
			m.lowerExpr(a, builtins)
		}
	case ast.ExprIndex:
		m.lowerExpr(e.Target, builtins)
		m.lowerExpr(e.Index, builtins)
	case ast.ExprFieldAccess:
		m.lowerExpr(e.Base, builtins)
	case ast.ExprMatch:
		m.lowerExpr(e.Subject, builtins)
		for _, arm := range e.Arms {
			if arm.Pattern.Kind == ast.PatternLiteral {
				m.lowerExpr(arm.Pattern.Literal, builtins)
			}
			m.lowerExpr(arm.Result, builtins)
		}
	case ast.ExprMatches:
		m.lowerExpr(e.Subject, builtins)
	}
}

func (m *Module) classifyAssignTarget(id ast.ExprID, builtins map[string]bool) AssignTarget {
	e := m.File.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprIndex:
		m.lowerExpr(e.Target, builtins)
		m.lowerExpr(e.Index, builtins)
		return AssignTarget{Kind: AssignIndex, IndexTarget: e.Target, IndexKey: e.Index}
	case ast.ExprFieldAccess:
		m.lowerExpr(e.Base, builtins)
		return AssignTarget{Kind: AssignField, FieldBase: e.Base, FieldName: e.Field}
	default:
		return AssignTarget{Kind: AssignIdentifier, Name: e.Name}
	}
}
