package parser

import (
	"lumen/internal/ast"
	"lumen/internal/token"
)

// parseType parses a full type expression, including top-level unions
// written with '|' (e.g. `int | nil`).
func (p *Parser) parseType() ast.TypeID {
	start := p.cur().Span
	first := p.parseTypePrimary()
	if !p.at(token.Pipe) {
		return first
	}
	members := []ast.TypeID{first}
	for {
		if _, ok := p.accept(token.Pipe); !ok {
			break
		}
		members = append(members, p.parseTypePrimary())
	}
	return p.file.Types.Add(ast.Type{Span: start, Kind: ast.TypeUnion, Members: members})
}

// parseTypePrimary parses one non-union type form: a dotted/generic name,
// a list type, an optional suffix, or a function type.
func (p *Parser) parseTypePrimary() ast.TypeID {
	start := p.cur().Span

	if _, ok := p.accept(token.LBracket); ok {
		elem := p.parseType()
		p.expect(token.RBracket)
		return p.wrapOptional(p.file.Types.Add(ast.Type{Span: start, Kind: ast.TypeList, Element: elem}))
	}

	if _, ok := p.accept(token.KwFn); ok {
		p.expect(token.LParen)
		var params []ast.TypeID
		for !p.at(token.RParen) && !p.atEOF() {
			params = append(params, p.parseType())
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
		p.expect(token.RParen)
		result := ast.NoType
		if _, ok := p.accept(token.Arrow); ok {
			result = p.parseType()
		}
		return p.wrapOptional(p.file.Types.Add(ast.Type{Span: start, Kind: ast.TypeFunction, Params: params, Result: result}))
	}

	var segments []ast.TypeNameSegment
	for {
		nameTok := p.expect(token.Identifier)
		seg := ast.TypeNameSegment{Name: nameTok.Text}
		if _, ok := p.accept(token.LBracket); ok {
			for !p.at(token.RBracket) && !p.atEOF() {
				seg.Args = append(seg.Args, p.parseType())
				if _, ok := p.accept(token.Comma); !ok {
					break
				}
			}
			p.expect(token.RBracket)
		}
		segments = append(segments, seg)
		if _, ok := p.accept(token.Colon2); !ok {
			break
		}
	}
	return p.wrapOptional(p.file.Types.Add(ast.Type{Span: start, Kind: ast.TypeName, Segments: segments}))
}

// wrapOptional wraps inner in a TypeOptional node if a trailing '?' follows,
// e.g. `int?`.
func (p *Parser) wrapOptional(inner ast.TypeID) ast.TypeID {
	if _, ok := p.accept(token.Question); ok {
		return p.file.Types.Add(ast.Type{Kind: ast.TypeOptional, Inner: inner})
	}
	return inner
}
