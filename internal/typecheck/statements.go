package typecheck

import (
	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/semtypes"
)

// checkBlock type-checks a StmtBlock in its own child scope and reports any
// statement that follows one that unconditionally ends control flow
// (return/break/continue, or an if whose every branch does). It
// returns whether control can still reach the statement after the block.
func (c *Checker) checkBlock(id ast.StmtID) bool {
	block := c.file.Stmts.Get(id)
	outer := c.scope
	c.scope = newScope(outer)

	reachable := true
	reportedDead := false
	for _, stmtID := range block.Statements {
		if !reachable && !reportedDead {
			s := c.file.Stmts.Get(stmtID)
			c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeUnreachableCode, diag.Warning, s.Span,
				"unreachable code"))
			reportedDead = true
		}
		reachable = c.checkStmt(stmtID)
	}

	c.reportUnusedIn(c.scope)
	c.scope = outer
	return reachable
}

func (c *Checker) reportUnusedIn(s *Scope) {
	for name, b := range s.vars {
		if !b.used {
			c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeUnusedBinding, diag.Warning, b.declaredAt,
				"'"+name+"' is declared but never used"))
		}
	}
}

// checkStmt type-checks one statement and returns whether control can reach
// the statement following it.
func (c *Checker) checkStmt(id ast.StmtID) bool {
	s := c.file.Stmts.Get(id)
	switch s.Kind {
	case ast.StmtLet:
		c.checkLetOrVar(s, false)
		return true
	case ast.StmtVar:
		c.checkLetOrVar(s, true)
		return true
	case ast.StmtAssign:
		c.checkAssign(s)
		return true
	case ast.StmtExpr:
		c.InferExpr(s.Expr)
		return true
	case ast.StmtReturn:
		c.checkReturn(s)
		return false
	case ast.StmtIf:
		return c.checkIf(s)
	case ast.StmtWhile:
		c.checkWhile(s)
		return true
	case ast.StmtForIn:
		c.checkForIn(s)
		return true
	case ast.StmtBreak, ast.StmtContinue:
		return false
	case ast.StmtBlock:
		return c.checkBlock(id)
	default: // StmtRecovered
		return true
	}
}

func (c *Checker) checkLetOrVar(s *ast.Stmt, mutable bool) {
	var declared semtypes.Type
	hasAnnotation := s.Annotation != ast.NoType
	if hasAnnotation {
		declared = c.types.ResolveType(c.file, s.Annotation)
	}

	if s.Init == ast.NoExpr {
		if !hasAnnotation {
			declared = semtypes.Type{Kind: semtypes.Unknown}
		}
		c.scope.declareAt(s.Name, declared, mutable, s.Span)
		return
	}

	initType := c.InferExpr(s.Init)
	if !hasAnnotation {
		declared = initType
	} else if !semtypes.IsAssignable(initType, declared) {
		c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeMismatch, diag.Error, s.Span,
			"cannot assign '"+initType.Display()+"' to '"+declared.Display()+"'"))
	}
	c.scope.declareAt(s.Name, declared, mutable, s.Span)
}

func (c *Checker) checkAssign(s *ast.Stmt) {
	target := c.file.Exprs.Get(s.Target)
	valueType := c.InferExpr(s.Value)

	if target.Kind == ast.ExprIdentifier {
		b, ok := c.scope.lookup(target.Name)
		if !ok {
			c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeUnknownName, diag.Error, s.Span,
				"undefined name '"+target.Name+"'"))
			return
		}
		if !b.mutable {
			c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeMismatch, diag.Error, s.Span,
				"cannot assign to '"+target.Name+"': declared with 'let'"))
		}
		if !semtypes.IsAssignable(valueType, b.declaredType) {
			c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeMismatch, diag.Error, s.Span,
				"cannot assign '"+valueType.Display()+"' to '"+b.declaredType.Display()+"'"))
		}
		return
	}

	targetType := c.InferExpr(s.Target)
	if !semtypes.IsAssignable(valueType, targetType) {
		c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeMismatch, diag.Error, s.Span,
			"cannot assign '"+valueType.Display()+"' to '"+targetType.Display()+"'"))
	}
}

func (c *Checker) checkReturn(s *ast.Stmt) {
	var got semtypes.Type
	if s.ReturnValue == ast.NoExpr {
		got = semtypes.Type{Kind: semtypes.Nil}
	} else {
		got = c.InferExpr(s.ReturnValue)
	}
	if c.currentFunc.Result == nil {
		return
	}
	want := *c.currentFunc.Result
	if !semtypes.IsAssignable(got, want) {
		c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeMismatch, diag.Error, s.Span,
			"cannot return '"+got.Display()+"', function declares result '"+want.Display()+"'"))
	}
}

func (c *Checker) checkIf(s *ast.Stmt) bool {
	narrowing := c.deriveConditionNarrowing(s.Cond)
	condType := c.InferExpr(s.Cond)
	if condType.Kind != semtypes.Bool && condType.Kind != semtypes.Unknown {
		c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeMismatch, diag.Error, s.Span,
			"condition must be 'bool', found '"+condType.Display()+"'"))
	}

	restoreThen := func() {}
	if narrowing.hasNarrow {
		restoreThen = c.applyVariableNarrowing(narrowing.name, narrowing.truthyType)
	}
	thenReachable := c.checkBlock(s.Then)
	restoreThen()

	if s.Else == ast.NoStmt {
		return true
	}

	restoreElse := func() {}
	if narrowing.hasNarrow {
		restoreElse = c.applyVariableNarrowing(narrowing.name, narrowing.falsyType)
	}
	var elseReachable bool
	elseStmt := c.file.Stmts.Get(s.Else)
	if elseStmt.Kind == ast.StmtIf {
		elseReachable = c.checkStmt(s.Else)
	} else {
		elseReachable = c.checkBlock(s.Else)
	}
	restoreElse()

	return thenReachable || elseReachable
}

func (c *Checker) checkWhile(s *ast.Stmt) {
	narrowing := c.deriveConditionNarrowing(s.Cond)
	condType := c.InferExpr(s.Cond)
	if condType.Kind != semtypes.Bool && condType.Kind != semtypes.Unknown {
		c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeMismatch, diag.Error, s.Span,
			"condition must be 'bool', found '"+condType.Display()+"'"))
	}
	restore := func() {}
	if narrowing.hasNarrow {
		restore = c.applyVariableNarrowing(narrowing.name, narrowing.truthyType)
	}
	c.checkBlock(s.Then)
	restore()
}

func (c *Checker) checkForIn(s *ast.Stmt) {
	iterType := c.InferExpr(s.Iterable)
	var elemType semtypes.Type
	if iterType.Kind == semtypes.List {
		elemType = *iterType.Element
	} else if iterType.Kind != semtypes.Unknown {
		c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeMismatch, diag.Error, s.Span,
			"cannot iterate over '"+iterType.Display()+"'"))
		elemType = semtypes.Type{Kind: semtypes.Unknown}
	} else {
		elemType = semtypes.Type{Kind: semtypes.Unknown}
	}

	outer := c.scope
	c.scope = newScope(outer)
	c.scope.declareAt(s.LoopVar, elemType, false, s.Span)
	c.checkBlock(s.Body)
	c.reportUnusedIn(c.scope)
	c.scope = outer
}
