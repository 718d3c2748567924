package parser

import (
	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/token"
)

func (p *Parser) parseExpr() ast.ExprID {
	return p.parseOr()
}

func (p *Parser) parseOr() ast.ExprID {
	left := p.parseAnd()
	for {
		if _, ok := p.accept(token.OrOr); !ok {
			return left
		}
		right := p.parseAnd()
		left = p.file.Exprs.Add(ast.Expr{Kind: ast.ExprBinary, BinOp: ast.OpOr, Left: left, Right: right})
	}
}

func (p *Parser) parseAnd() ast.ExprID {
	left := p.parseEquality()
	for {
		if _, ok := p.accept(token.AndAnd); !ok {
			return left
		}
		right := p.parseEquality()
		left = p.file.Exprs.Add(ast.Expr{Kind: ast.ExprBinary, BinOp: ast.OpAnd, Left: left, Right: right})
	}
}

var equalityOps = map[token.Kind]ast.BinaryOp{token.Eq: ast.OpEq, token.NotEq: ast.OpNotEq}

func (p *Parser) parseEquality() ast.ExprID {
	left := p.parseMatches()
	for {
		op, ok := equalityOps[p.cur().Kind]
		if !ok {
			return left
		}
		p.advance()
		right := p.parseMatches()
		left = p.file.Exprs.Add(ast.Expr{Kind: ast.ExprBinary, BinOp: op, Left: left, Right: right})
	}
}

// parseMatches handles the `expr matches pattern` infix test, which binds
// tighter than equality but looser than relational comparison.
func (p *Parser) parseMatches() ast.ExprID {
	left := p.parseRelational()
	for {
		if _, ok := p.accept(token.KwMatches); !ok {
			return left
		}
		pattern := p.parseMatchPattern()
		left = p.file.Exprs.Add(ast.Expr{Kind: ast.ExprMatches, Subject: left, Arms: []ast.MatchArm{{Pattern: pattern}}})
	}
}

var relationalOps = map[token.Kind]ast.BinaryOp{
	token.Lt: ast.OpLt, token.LtEq: ast.OpLtEq, token.Gt: ast.OpGt, token.GtEq: ast.OpGtEq,
}

func (p *Parser) parseRelational() ast.ExprID {
	left := p.parseAdditive()
	for {
		op, ok := relationalOps[p.cur().Kind]
		if !ok {
			return left
		}
		p.advance()
		right := p.parseAdditive()
		left = p.file.Exprs.Add(ast.Expr{Kind: ast.ExprBinary, BinOp: op, Left: left, Right: right})
	}
}

var additiveOps = map[token.Kind]ast.BinaryOp{token.Plus: ast.OpAdd, token.Minus: ast.OpSub}

func (p *Parser) parseAdditive() ast.ExprID {
	left := p.parseMultiplicative()
	for {
		op, ok := additiveOps[p.cur().Kind]
		if !ok {
			return left
		}
		p.advance()
		right := p.parseMultiplicative()
		left = p.file.Exprs.Add(ast.Expr{Kind: ast.ExprBinary, BinOp: op, Left: left, Right: right})
	}
}

var multiplicativeOps = map[token.Kind]ast.BinaryOp{token.Star: ast.OpMul, token.Slash: ast.OpDiv, token.Percent: ast.OpMod}

func (p *Parser) parseMultiplicative() ast.ExprID {
	left := p.parseUnary()
	for {
		op, ok := multiplicativeOps[p.cur().Kind]
		if !ok {
			return left
		}
		p.advance()
		right := p.parseUnary()
		left = p.file.Exprs.Add(ast.Expr{Kind: ast.ExprBinary, BinOp: op, Left: left, Right: right})
	}
}

func (p *Parser) parseUnary() ast.ExprID {
	start := p.cur().Span
	switch p.cur().Kind {
	case token.Minus:
		p.advance()
		operand := p.parseUnary()
		return p.file.Exprs.Add(ast.Expr{Span: start, Kind: ast.ExprUnary, UnOp: ast.OpNeg, Operand: operand})
	case token.Not:
		p.advance()
		operand := p.parseUnary()
		return p.file.Exprs.Add(ast.Expr{Span: start, Kind: ast.ExprUnary, UnOp: ast.OpNot, Operand: operand})
	default:
		return p.parsePostfix()
	}
}

func (p *Parser) parsePostfix() ast.ExprID {
	expr := p.parsePrimary()
	for {
		switch p.cur().Kind {
		case token.LParen:
			expr = p.parseCallArgs(expr, nil)
		case token.LBracket:
			if args, ok := p.tryParseCallTypeArgs(); ok {
				expr = p.parseCallArgs(expr, args)
				continue
			}
			p.advance()
			idx := p.parseExpr()
			p.expect(token.RBracket)
			expr = p.file.Exprs.Add(ast.Expr{Kind: ast.ExprIndex, Target: expr, Index: idx})
		case token.Dot:
			p.advance()
			field := p.expect(token.Identifier)
			expr = p.file.Exprs.Add(ast.Expr{Kind: ast.ExprFieldAccess, Base: expr, Field: field.Text})
		default:
			return expr
		}
	}
}

// tryParseCallTypeArgs speculatively parses a `[T, U]` explicit
// type-argument list ahead of a call, backtracking if what follows doesn't
// look like a call (disambiguating from plain index access, e.g. `xs[0]`).
// The attempt runs against a scratch diagnostic bag so a failed guess never
// leaks spurious parse errors into the real one.
func (p *Parser) tryParseCallTypeArgs() ([]ast.TypeID, bool) {
	mark := p.pos
	realBag := p.bag
	scratch := diag.NewBag()
	p.bag = scratch
	defer func() { p.bag = realBag }()

	p.advance() // '['
	var args []ast.TypeID
	for !p.at(token.RBracket) && !p.atEOF() {
		args = append(args, p.parseType())
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	if scratch.HasErrors() {
		p.pos = mark
		return nil, false
	}
	if _, ok := p.accept(token.RBracket); !ok || !p.at(token.LParen) {
		p.pos = mark
		return nil, false
	}
	return args, true
}

func (p *Parser) parseCallArgs(callee ast.ExprID, typeArgs []ast.TypeID) ast.ExprID {
	p.expect(token.LParen)
	var args []ast.ExprID
	for !p.at(token.RParen) && !p.atEOF() {
		args = append(args, p.parseExpr())
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RParen)
	return p.file.Exprs.Add(ast.Expr{Kind: ast.ExprCall, Callee: callee, TypeArgs: typeArgs, Arguments: args})
}

func (p *Parser) parsePrimary() ast.ExprID {
	start := p.cur().Span
	switch p.cur().Kind {
	case token.IntLiteral:
		t := p.advance()
		return p.file.Exprs.Add(ast.Expr{Span: start, Kind: ast.ExprIntLiteral, Literal: t.Text})
	case token.FloatLiteral:
		t := p.advance()
		return p.file.Exprs.Add(ast.Expr{Span: start, Kind: ast.ExprFloatLiteral, Literal: t.Text})
	case token.StringLiteral:
		t := p.advance()
		return p.file.Exprs.Add(ast.Expr{Span: start, Kind: ast.ExprStringLiteral, Literal: t.Text})
	case token.BoolLiteral, token.KwTrue, token.KwFalse:
		t := p.advance()
		return p.file.Exprs.Add(ast.Expr{Span: start, Kind: ast.ExprBoolLiteral, Literal: t.Text})
	case token.KwNil:
		p.advance()
		return p.file.Exprs.Add(ast.Expr{Span: start, Kind: ast.ExprNilLiteral})
	case token.LBracket:
		return p.parseListLiteral()
	case token.LParen:
		p.advance()
		inner := p.parseExpr()
		p.expect(token.RParen)
		return inner
	case token.KwMatch:
		return p.parseMatchExpr()
	case token.KwSelf:
		t := p.advance()
		return p.file.Exprs.Add(ast.Expr{Span: start, Kind: ast.ExprIdentifier, Name: t.Text})
	case token.Identifier:
		return p.parseIdentifierOrStructLiteral()
	default:
		p.unexpected("an expression")
		p.advance()
		return p.file.Exprs.Add(ast.Expr{Span: start, Kind: ast.ExprNilLiteral})
	}
}

func (p *Parser) parseListLiteral() ast.ExprID {
	start := p.advance().Span // '['
	var elems []ast.ExprID
	for !p.at(token.RBracket) && !p.atEOF() {
		elems = append(elems, p.parseExpr())
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	end := p.expect(token.RBracket)
	return p.file.Exprs.Add(ast.Expr{Span: start.Join(end.Span), Kind: ast.ExprListLiteral, Elements: elems})
}

func (p *Parser) parseIdentifierOrStructLiteral() ast.ExprID {
	nameTok := p.advance()
	if p.noStructLiteral || !p.at(token.LBrace) {
		return p.file.Exprs.Add(ast.Expr{Span: nameTok.Span, Kind: ast.ExprIdentifier, Name: nameTok.Text})
	}
	p.advance() // '{'
	var fields []ast.StructFieldInit
	for !p.at(token.RBrace) && !p.atEOF() {
		fNameTok := p.expect(token.Identifier)
		p.expect(token.Colon)
		value := p.parseExpr()
		fields = append(fields, ast.StructFieldInit{Name: fNameTok.Text, Span: fNameTok.Span, Value: value})
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	end := p.expect(token.RBrace)
	return p.file.Exprs.Add(ast.Expr{Span: nameTok.Span.Join(end.Span), Kind: ast.ExprStructLiteral, TypeName: nameTok.Text, Fields: fields})
}

func (p *Parser) parseMatchExpr() ast.ExprID {
	start := p.advance().Span // 'match'
	subject := p.parseCondition()
	p.expect(token.LBrace)
	var arms []ast.MatchArm
	for !p.at(token.RBrace) && !p.atEOF() {
		p.skipTerminators()
		if p.at(token.RBrace) {
			break
		}
		pattern := p.parseMatchPattern()
		p.expect(token.FatArrow)
		result := p.parseExpr()
		arms = append(arms, ast.MatchArm{Pattern: pattern, Result: result})
		if _, ok := p.accept(token.Comma); !ok {
			p.skipTerminators()
		}
	}
	end := p.expect(token.RBrace)
	return p.file.Exprs.Add(ast.Expr{Span: start.Join(end.Span), Kind: ast.ExprMatch, Subject: subject, Arms: arms})
}

func (p *Parser) parseMatchPattern() ast.MatchPattern {
	start := p.cur().Span
	if p.at(token.Identifier) && p.cur().Text == "_" {
		p.advance()
		return ast.MatchPattern{Kind: ast.PatternWildcard, Span: start}
	}
	if p.at(token.Identifier) && p.peek(1).Kind == token.Colon {
		nameTok := p.advance()
		p.advance() // ':'
		typ := p.parseType()
		return ast.MatchPattern{Kind: ast.PatternType, Span: start, Binding: nameTok.Text, Type: typ}
	}
	if p.at(token.Colon) {
		p.advance()
		typ := p.parseType()
		return ast.MatchPattern{Kind: ast.PatternType, Span: start, Type: typ}
	}
	lit := p.parseExpr()
	return ast.MatchPattern{Kind: ast.PatternLiteral, Span: start, Literal: lit}
}
