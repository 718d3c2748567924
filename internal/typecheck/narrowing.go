package typecheck

import (
	"lumen/internal/ast"
	"lumen/internal/semtypes"
)

// conditionNarrowing is what a condition expression implies about a single
// variable's type in its truthy and falsy branches. Only one variable at a
// time is ever narrowed (spec's single scope-entry slot): a condition that
// doesn't match one of the recognized nil-test or `matches`-test shapes
// narrows nothing.
type conditionNarrowing struct {
	name       string
	hasNarrow  bool
	truthyType semtypes.Type
	falsyType  semtypes.Type
}

// deriveConditionNarrowing inspects cond for one of the two recognized
// narrowing shapes:
//
//	x != nil / x == nil            (nil-test)
//	x matches T                    (`matches` test, with optional `name : T` binding)
func (c *Checker) deriveConditionNarrowing(cond ast.ExprID) conditionNarrowing {
	e := c.file.Exprs.Get(cond)

	if e.Kind == ast.ExprBinary && (e.BinOp == ast.OpNotEq || e.BinOp == ast.OpEq) {
		left := c.file.Exprs.Get(e.Left)
		right := c.file.Exprs.Get(e.Right)
		var nameExpr, otherExpr *ast.Expr
		if left.Kind == ast.ExprIdentifier && right.Kind == ast.ExprNilLiteral {
			nameExpr, otherExpr = left, right
		} else if right.Kind == ast.ExprIdentifier && left.Kind == ast.ExprNilLiteral {
			nameExpr, otherExpr = right, left
		}
		if nameExpr != nil && otherExpr != nil {
			b, ok := c.scope.lookup(nameExpr.Name)
			if !ok {
				return conditionNarrowing{}
			}
			withoutNil := semtypes.WithoutMember(b.declaredType, semtypes.Type{Kind: semtypes.Nil})
			nilType := semtypes.Type{Kind: semtypes.Nil}
			if e.BinOp == ast.OpNotEq {
				return conditionNarrowing{name: nameExpr.Name, hasNarrow: true, truthyType: withoutNil, falsyType: nilType}
			}
			return conditionNarrowing{name: nameExpr.Name, hasNarrow: true, truthyType: nilType, falsyType: withoutNil}
		}
	}

	if e.Kind == ast.ExprMatches {
		subject := c.file.Exprs.Get(e.Subject)
		if subject.Kind == ast.ExprIdentifier && len(e.Arms) == 1 && e.Arms[0].Pattern.Kind == ast.PatternType {
			b, ok := c.scope.lookup(subject.Name)
			if !ok {
				return conditionNarrowing{}
			}
			matched := c.types.ResolveType(c.file, e.Arms[0].Pattern.Type)
			remainder := semtypes.WithoutMember(b.declaredType, matched)
			return conditionNarrowing{name: subject.Name, hasNarrow: true, truthyType: matched, falsyType: remainder}
		}
	}

	return conditionNarrowing{}
}

// applyVariableNarrowing mutates the named binding's type in place and
// returns a restore function that must be called when leaving the branch
// the narrowing applied to. This is the scoped mutate/save/restore
// handshake on a single scope-entry slot: there is deliberately no second
// "narrowed types" environment shadowing Scope.
func (c *Checker) applyVariableNarrowing(name string, newType semtypes.Type) func() {
	b, ok := c.scope.lookup(name)
	if !ok {
		return func() {}
	}
	old := b.declaredType
	b.declaredType = newType
	return func() { b.declaredType = old }
}
