package typecheck

import (
	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/semtypes"
	"lumen/internal/source"
)

// InferExpr computes the type of expr, recording diagnostics for any type
// error found along the way and recovering to Unknown so a single bad
// sub-expression doesn't cascade into unrelated errors higher up the tree.
func (c *Checker) InferExpr(id ast.ExprID) semtypes.Type {
	t := c.inferExprUncached(id)
	c.ExprTypes[id] = t
	return t
}

func (c *Checker) inferExprUncached(id ast.ExprID) semtypes.Type {
	e := c.file.Exprs.Get(id)
	switch e.Kind {
	case ast.ExprIntLiteral:
		return semtypes.Type{Kind: semtypes.Int}
	case ast.ExprFloatLiteral:
		return semtypes.Type{Kind: semtypes.Float}
	case ast.ExprStringLiteral:
		return semtypes.Type{Kind: semtypes.String}
	case ast.ExprBoolLiteral:
		return semtypes.Type{Kind: semtypes.Bool}
	case ast.ExprNilLiteral:
		return semtypes.Type{Kind: semtypes.Nil}
	case ast.ExprIdentifier:
		return c.inferIdentifier(e)
	case ast.ExprListLiteral:
		return c.inferListLiteral(e)
	case ast.ExprStructLiteral:
		return c.inferStructLiteral(e)
	case ast.ExprBinary:
		return c.inferBinary(e)
	case ast.ExprUnary:
		return c.inferUnary(e)
	case ast.ExprCall:
		return c.inferCall(e)
	case ast.ExprIndex:
		return c.inferIndex(e)
	case ast.ExprFieldAccess:
		return c.inferFieldAccess(e)
	case ast.ExprMatch:
		return c.inferMatch(e)
	case ast.ExprMatches:
		c.InferExpr(e.Subject)
		return semtypes.Type{Kind: semtypes.Bool}
	default:
		return semtypes.Type{Kind: semtypes.Unknown}
	}
}

func (c *Checker) inferIdentifier(e *ast.Expr) semtypes.Type {
	b, ok := c.scope.lookup(e.Name)
	if !ok {
		if ft, ok := c.funcTypes[e.Name]; ok {
			return ft
		}
		str, boolean, never := semtypes.Type{Kind: semtypes.String}, semtypes.Type{Kind: semtypes.Bool}, semtypes.Type{Kind: semtypes.Never}
		switch e.Name {
		case "print":
			return semtypes.Type{Kind: semtypes.Function, Params: []semtypes.Type{str}}
		case "abort":
			return semtypes.Type{Kind: semtypes.Function, Params: []semtypes.Type{str}, Result: &never}
		case "assert":
			return semtypes.Type{Kind: semtypes.Function, Params: []semtypes.Type{boolean}}
		}
		c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeUnknownName, diag.Error, e.Span,
			"undefined name '"+e.Name+"'"))
		return semtypes.Type{Kind: semtypes.Unknown}
	}
	b.used = true
	return b.narrowedType()
}

func (c *Checker) inferListLiteral(e *ast.Expr) semtypes.Type {
	if len(e.Elements) == 0 {
		unknown := semtypes.Type{Kind: semtypes.Unknown}
		return semtypes.Type{Kind: semtypes.List, Element: &unknown}
	}
	elem := c.InferExpr(e.Elements[0])
	for _, el := range e.Elements[1:] {
		t := c.InferExpr(el)
		if !semtypes.IsAssignable(t, elem) {
			c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeMismatch, diag.Error, e.Span,
				"list elements must share a common type: found '"+t.Display()+"' alongside '"+elem.Display()+"'"))
		}
	}
	return semtypes.Type{Kind: semtypes.List, Element: &elem}
}

func (c *Checker) inferStructLiteral(e *ast.Expr) semtypes.Type {
	fields, ok := c.structFields[e.TypeName]
	if !ok {
		c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeUnknownName, diag.Error, e.Span,
			"unknown struct type '"+e.TypeName+"'"))
		for _, f := range e.Fields {
			c.InferExpr(f.Value)
		}
		return semtypes.Type{Kind: semtypes.Unknown}
	}
	for _, f := range e.Fields {
		got := c.InferExpr(f.Value)
		want, ok := fields[f.Name]
		if !ok {
			c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeUnknownName, diag.Error, f.Span,
				"struct '"+e.TypeName+"' has no field '"+f.Name+"'"))
			continue
		}
		if !semtypes.IsAssignable(got, want) {
			c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeMismatch, diag.Error, f.Span,
				"field '"+f.Name+"' expects '"+want.Display()+"', found '"+got.Display()+"'"))
		}
	}
	return semtypes.Type{
		Kind:        semtypes.Nominal,
		Nominal:     semtypes.NominalID{Package: c.pkg, Name: e.TypeName},
		DisplayName: e.TypeName,
	}
}

func (c *Checker) inferBinary(e *ast.Expr) semtypes.Type {
	left := c.InferExpr(e.Left)
	right := c.InferExpr(e.Right)
	switch e.BinOp {
	case ast.OpAnd, ast.OpOr:
		return semtypes.Type{Kind: semtypes.Bool}
	case ast.OpEq, ast.OpNotEq:
		if !semtypes.AreComparableForEquality(left, right) {
			c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeMismatch, diag.Error, e.Span,
				"cannot compare '"+left.Display()+"' with '"+right.Display()+"'"))
		}
		return semtypes.Type{Kind: semtypes.Bool}
	case ast.OpLt, ast.OpLtEq, ast.OpGt, ast.OpGtEq:
		c.requireNumeric(left, e.Span)
		c.requireNumeric(right, e.Span)
		return semtypes.Type{Kind: semtypes.Bool}
	default: // arithmetic
		if left.Kind == semtypes.String && right.Kind == semtypes.String && e.BinOp == ast.OpAdd {
			return semtypes.Type{Kind: semtypes.String}
		}
		c.requireNumeric(left, e.Span)
		c.requireNumeric(right, e.Span)
		if left.Kind == semtypes.Float || right.Kind == semtypes.Float {
			return semtypes.Type{Kind: semtypes.Float}
		}
		return semtypes.Type{Kind: semtypes.Int}
	}
}

func (c *Checker) requireNumeric(t semtypes.Type, span source.Span) {
	if t.Kind == semtypes.Unknown || t.Kind == semtypes.Int || t.Kind == semtypes.Float {
		return
	}
	c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeMismatch, diag.Error, span,
		"expected a numeric type, found '"+t.Display()+"'"))
}

func (c *Checker) inferUnary(e *ast.Expr) semtypes.Type {
	operand := c.InferExpr(e.Operand)
	if e.UnOp == ast.OpNot {
		return semtypes.Type{Kind: semtypes.Bool}
	}
	return operand
}

func (c *Checker) inferCall(e *ast.Expr) semtypes.Type {
	calleeType := c.InferExpr(e.Callee)
	for _, a := range e.Arguments {
		c.InferExpr(a)
	}
	if calleeType.Kind == semtypes.Unknown {
		return semtypes.Type{Kind: semtypes.Unknown}
	}
	if calleeType.Kind != semtypes.Function {
		c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeMismatch, diag.Error, e.Span,
			"'"+calleeType.Display()+"' is not callable"))
		return semtypes.Type{Kind: semtypes.Unknown}
	}
	if len(e.Arguments) != len(calleeType.Params) {
		c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeMismatch, diag.Error, e.Span,
			"wrong number of arguments"))
	}
	if calleeType.Result == nil {
		return semtypes.Type{Kind: semtypes.Nil}
	}
	return *calleeType.Result
}

func (c *Checker) inferIndex(e *ast.Expr) semtypes.Type {
	target := c.InferExpr(e.Target)
	c.InferExpr(e.Index)
	if target.Kind == semtypes.Unknown {
		return semtypes.Type{Kind: semtypes.Unknown}
	}
	if target.Kind != semtypes.List {
		c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeMismatch, diag.Error, e.Span,
			"cannot index into '"+target.Display()+"'"))
		return semtypes.Type{Kind: semtypes.Unknown}
	}
	return *target.Element
}

func (c *Checker) inferFieldAccess(e *ast.Expr) semtypes.Type {
	base := c.InferExpr(e.Base)
	if base.Kind == semtypes.Unknown {
		return semtypes.Type{Kind: semtypes.Unknown}
	}
	if base.Kind != semtypes.Nominal {
		c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeMismatch, diag.Error, e.Span,
			"'"+base.Display()+"' has no field '"+e.Field+"'"))
		return semtypes.Type{Kind: semtypes.Unknown}
	}
	fields, fieldsOk := c.structFields[base.Nominal.Name]
	if fieldsOk {
		if ft, ok := fields[e.Field]; ok {
			return ft
		}
	}
	if methods, ok := c.methods[base.Nominal.Name]; ok {
		if mt, ok := methods[e.Field]; ok {
			return mt
		}
	}
	if !fieldsOk {
		return semtypes.Type{Kind: semtypes.Unknown}
	}
	c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeMismatch, diag.Error, e.Span,
		"'"+base.Display()+"' has no field '"+e.Field+"'"))
	return semtypes.Type{Kind: semtypes.Unknown}
}

func (c *Checker) inferMatch(e *ast.Expr) semtypes.Type {
	c.InferExpr(e.Subject)
	var armTypes []semtypes.Type
	for _, arm := range e.Arms {
		restore := func() {}
		if arm.Pattern.Kind == ast.PatternType && arm.Pattern.Binding != "" {
			subject := c.file.Exprs.Get(e.Subject)
			matched := c.types.ResolveType(c.file, arm.Pattern.Type)
			if subject.Kind == ast.ExprIdentifier {
				restore = c.applyVariableNarrowing(subject.Name, matched)
			} else {
				c.scope.declare(arm.Pattern.Binding, matched, false)
			}
		}
		if arm.Pattern.Kind == ast.PatternLiteral {
			c.InferExpr(arm.Pattern.Literal)
		}
		armTypes = append(armTypes, c.InferExpr(arm.Result))
		restore()
	}
	if len(armTypes) == 0 {
		return semtypes.Type{Kind: semtypes.Unknown}
	}
	return semtypes.NormalizeUnion(armTypes)
}
