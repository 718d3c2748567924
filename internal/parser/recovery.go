package parser

import (
	"lumen/internal/diag"
	"lumen/internal/token"
)

// declStartKinds are the token kinds that can begin a top-level
// declaration; synchronizeDecl skips forward until it sees one of these
// (or a statement terminator), so one malformed declaration
// never derails the rest of the file.
var declStartKinds = map[token.Kind]bool{
	token.KwImport:    true,
	token.KwExports:   true,
	token.KwFn:        true,
	token.KwStruct:    true,
	token.KwEnum:      true,
	token.KwInterface: true,
	token.KwUnion:     true,
	token.KwType:      true,
	token.KwTest:      true,
	token.KwGroup:     true,
	token.KwPublic:    true,
	token.DocComment:  true,
}

// synchronizeDecl advances past tokens until the next plausible
// declaration start, a statement terminator, or EOF, reporting an
// InvalidConstruct at the first skipped token.
func (p *Parser) synchronizeDecl() {
	start := p.cur().Span
	for !p.atEOF() && !declStartKinds[p.cur().Kind] {
		if p.at(token.StatementTerminator) {
			p.advance()
			break
		}
		p.advance()
	}
	p.bag.Add(diag.New(diag.PhaseParse, diag.CodeParseInvalidConstruct, diag.Error, start,
		"could not parse a declaration here; skipping to the next one"))
}

// stmtStartKinds mirrors declStartKinds for statement-level recovery inside
// a block.
var stmtStartKinds = map[token.Kind]bool{
	token.KwLet:      true,
	token.KwVar:      true,
	token.KwReturn:   true,
	token.KwIf:       true,
	token.KwWhile:    true,
	token.KwFor:      true,
	token.KwBreak:    true,
	token.KwContinue: true,
	token.LBrace:     true,
	token.RBrace:     true,
}

func (p *Parser) synchronizeStmt() {
	start := p.cur().Span
	for !p.atEOF() && !stmtStartKinds[p.cur().Kind] {
		if p.at(token.StatementTerminator) {
			p.advance()
			break
		}
		p.advance()
	}
	p.bag.Add(diag.New(diag.PhaseParse, diag.CodeParseInvalidConstruct, diag.Error, start,
		"could not parse a statement here; skipping to the next one"))
}
