// Package parser turns a lexed token stream into an ast.File using
// recursive descent with explicit, synchronize-set-based error recovery —
// never exceptions or panics for ordinary malformed input.
package parser

import (
	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/source"
	"lumen/internal/token"
)

// Parser holds the mutable state of one file's parse: the token cursor, the
// syntax tree under construction, and the diagnostic collector every
// production appends to directly.
type Parser struct {
	file   *ast.File
	tokens []token.Token
	pos    int
	bag    *diag.Bag
	// noStructLiteral suppresses `Name { ... }` struct-literal parsing while
	// parsing an if/while condition, so `if cond {` isn't misread as a
	// struct literal swallowing the block that should follow it.
	noStructLiteral bool
}

// Parse parses the given (already terminator-inserted) token stream into a
// syntax tree for fileID, collecting diagnostics into bag.
func Parse(fileID source.FileID, tokens []token.Token, bag *diag.Bag) *ast.File {
	p := &Parser{
		file:   ast.NewFile(fileID),
		tokens: tokens,
		bag:    bag,
	}
	p.parseFile()
	return p.file
}

func (p *Parser) parseFile() {
	for !p.atEOF() {
		p.skipTerminators()
		if p.atEOF() {
			break
		}
		id := p.parseDecl()
		if id != ast.NoDecl {
			p.file.Decls = append(p.file.Decls, id)
		}
	}
}

// --- token cursor helpers ---

func (p *Parser) cur() token.Token {
	if p.pos >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1] // EOF
	}
	return p.tokens[p.pos]
}

func (p *Parser) peek(ahead int) token.Token {
	i := p.pos + ahead
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) at(kind token.Kind) bool {
	return p.cur().Kind == kind
}

func (p *Parser) atEOF() bool {
	return p.cur().Kind == token.EOF
}

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

// accept consumes and returns the current token if it matches kind.
func (p *Parser) accept(kind token.Kind) (token.Token, bool) {
	if p.at(kind) {
		return p.advance(), true
	}
	return token.Token{}, false
}

// expect consumes a token of the given kind, or records a MissingToken
// diagnostic and synthesizes a zero-width token so the caller can keep
// building a tree without special-casing the failure.
func (p *Parser) expect(kind token.Kind) token.Token {
	if t, ok := p.accept(kind); ok {
		return t
	}
	p.bag.Add(diag.New(diag.PhaseParse, diag.CodeParseMissingToken, diag.Error, p.cur().Span,
		"expected "+kind.String()+", found "+p.cur().Kind.String()))
	return token.Token{Kind: kind, Span: p.cur().Span}
}

func (p *Parser) skipTerminators() {
	for p.at(token.StatementTerminator) || p.at(token.Semicolon) {
		p.advance()
	}
}

// unexpected records an UnexpectedToken diagnostic for the current token
// without consuming it, so the caller can decide what to do next
// (synchronize, or try another production).
func (p *Parser) unexpected(context string) {
	p.bag.Add(diag.New(diag.PhaseParse, diag.CodeParseUnexpectedToken, diag.Error, p.cur().Span,
		"unexpected "+p.cur().Kind.String()+" while parsing "+context))
}
