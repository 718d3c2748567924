package parser

import (
	"lumen/internal/ast"
	"lumen/internal/token"
)

func (p *Parser) parseBlock() ast.StmtID {
	start := p.expect(token.LBrace).Span
	var stmts []ast.StmtID
	for {
		p.skipTerminators()
		if p.at(token.RBrace) || p.atEOF() {
			break
		}
		stmts = append(stmts, p.parseStmt())
		p.skipTerminators()
	}
	end := p.expect(token.RBrace)
	return p.file.Stmts.Add(ast.Stmt{Span: start.Join(end.Span), Kind: ast.StmtBlock, Statements: stmts})
}

func (p *Parser) parseStmt() ast.StmtID {
	switch p.cur().Kind {
	case token.KwLet:
		return p.parseLetOrVar(ast.StmtLet)
	case token.KwVar:
		return p.parseLetOrVar(ast.StmtVar)
	case token.KwReturn:
		return p.parseReturn()
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseForIn()
	case token.KwBreak:
		t := p.advance()
		return p.file.Stmts.Add(ast.Stmt{Span: t.Span, Kind: ast.StmtBreak})
	case token.KwContinue:
		t := p.advance()
		return p.file.Stmts.Add(ast.Stmt{Span: t.Span, Kind: ast.StmtContinue})
	case token.LBrace:
		return p.parseBlock()
	default:
		return p.parseExprOrAssignStmt()
	}
}

func (p *Parser) parseLetOrVar(kind ast.StmtKind) ast.StmtID {
	start := p.advance().Span // 'let' / 'var'
	nameTok := p.expect(token.Identifier)
	annotation := ast.NoType
	if _, ok := p.accept(token.Colon); ok {
		annotation = p.parseType()
	}
	init := ast.NoExpr
	if _, ok := p.accept(token.Assign); ok {
		init = p.parseExpr()
	}
	return p.file.Stmts.Add(ast.Stmt{
		Span:       start,
		Kind:       kind,
		Name:       nameTok.Text,
		Annotation: annotation,
		Init:       init,
	})
}

func (p *Parser) parseReturn() ast.StmtID {
	start := p.advance().Span // 'return'
	value := ast.NoExpr
	if !p.at(token.StatementTerminator) && !p.at(token.Semicolon) && !p.at(token.RBrace) && !p.atEOF() {
		value = p.parseExpr()
	}
	return p.file.Stmts.Add(ast.Stmt{Span: start, Kind: ast.StmtReturn, ReturnValue: value})
}

func (p *Parser) parseCondition() ast.ExprID {
	p.noStructLiteral = true
	cond := p.parseExpr()
	p.noStructLiteral = false
	return cond
}

func (p *Parser) parseIf() ast.StmtID {
	start := p.advance().Span // 'if'
	cond := p.parseCondition()
	then := p.parseBlock()
	elseBranch := ast.NoStmt
	if _, ok := p.accept(token.KwElse); ok {
		if p.at(token.KwIf) {
			elseBranch = p.parseIf()
		} else {
			elseBranch = p.parseBlock()
		}
	}
	return p.file.Stmts.Add(ast.Stmt{Span: start, Kind: ast.StmtIf, Cond: cond, Then: then, Else: elseBranch})
}

func (p *Parser) parseWhile() ast.StmtID {
	start := p.advance().Span // 'while'
	cond := p.parseCondition()
	body := p.parseBlock()
	return p.file.Stmts.Add(ast.Stmt{Span: start, Kind: ast.StmtWhile, Cond: cond, Then: body})
}

func (p *Parser) parseForIn() ast.StmtID {
	start := p.advance().Span // 'for'
	loopVar := p.expect(token.Identifier).Text
	p.expect(token.KwIn)
	iterable := p.parseExpr()
	body := p.parseBlock()
	return p.file.Stmts.Add(ast.Stmt{Span: start, Kind: ast.StmtForIn, LoopVar: loopVar, Iterable: iterable, Body: body})
}

// parseExprOrAssignStmt parses an expression statement, promoting it to an
// assignment statement if the expression is immediately followed by '='.
func (p *Parser) parseExprOrAssignStmt() ast.StmtID {
	start := p.cur().Span
	expr := p.parseExpr()
	if _, ok := p.accept(token.Assign); ok {
		value := p.parseExpr()
		return p.file.Stmts.Add(ast.Stmt{Span: start, Kind: ast.StmtAssign, Target: expr, Value: value})
	}
	return p.file.Stmts.Add(ast.Stmt{Span: start, Kind: ast.StmtExpr, Expr: expr})
}
