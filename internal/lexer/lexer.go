// Package lexer turns lumen source text into a token stream. Statement
// terminator insertion is intentionally a separate pass (terminators.go),
// never interleaved with scanning, so each concern stays independently
// testable.
package lexer

import (
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"

	"lumen/internal/source"
	"lumen/internal/token"
)

// Lexer scans one file's text into raw tokens (no terminator insertion yet).
type Lexer struct {
	file   source.FileID
	text   string
	offset int
	line   uint32
	column uint32
}

// New returns a Lexer over text belonging to file.
func New(file source.FileID, text string) *Lexer {
	return &Lexer{file: file, text: text, line: 1, column: 1}
}

// Tokenize scans the whole file and returns its raw token stream, including
// a trailing EOF token. Doc comments are emitted as DocComment tokens;
// ordinary comments are discarded.
func (l *Lexer) Tokenize() []token.Token {
	var out []token.Token
	for {
		tok := l.next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

func (l *Lexer) next() token.Token {
	l.skipInsignificantWhitespace()

	startOffset, startLine, startCol := l.offset, l.line, l.column

	r, width := l.peekRune()
	if width == 0 {
		return l.makeToken(token.EOF, startOffset, startLine, startCol, "")
	}

	switch {
	case r == '/' && l.peekAt(1) == '/':
		return l.scanComment(startOffset, startLine, startCol)
	case isIdentStart(r):
		return l.scanIdentifier(startOffset, startLine, startCol)
	case unicode.IsDigit(r):
		return l.scanNumber(startOffset, startLine, startCol)
	case r == '"':
		return l.scanString(startOffset, startLine, startCol)
	default:
		return l.scanSymbol(startOffset, startLine, startCol, r, width)
	}
}

func (l *Lexer) skipInsignificantWhitespace() {
	for {
		r, width := l.peekRune()
		if width == 0 {
			return
		}
		if r == '\n' {
			// Newlines are significant for terminator insertion; the raw
			// lexer still skips them here but the newline itself is
			// recovered later by re-deriving line breaks from the span
			// table during the terminator pass, see terminators.go.
			l.advance(width)
			continue
		}
		if unicode.IsSpace(r) {
			l.advance(width)
			continue
		}
		return
	}
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (l *Lexer) scanIdentifier(startOffset int, startLine, startCol uint32) token.Token {
	for {
		r, width := l.peekRune()
		if width == 0 || !isIdentContinue(r) {
			break
		}
		l.advance(width)
	}
	text := l.text[startOffset:l.offset]
	kind := token.Identifier
	if kw, ok := token.Keywords[text]; ok {
		kind = kw
	} else if text == "true" || text == "false" {
		kind = token.BoolLiteral
	}
	return l.makeToken(kind, startOffset, startLine, startCol, text)
}

func (l *Lexer) scanNumber(startOffset int, startLine, startCol uint32) token.Token {
	isFloat := false
	for {
		r, width := l.peekRune()
		if width == 0 {
			break
		}
		if unicode.IsDigit(r) {
			l.advance(width)
			continue
		}
		if r == '.' && !isFloat && unicode.IsDigit(l.peekAt(1)) {
			isFloat = true
			l.advance(width)
			continue
		}
		break
	}
	kind := token.IntLiteral
	if isFloat {
		kind = token.FloatLiteral
	}
	text := l.text[startOffset:l.offset]
	return l.makeToken(kind, startOffset, startLine, startCol, text)
}

func (l *Lexer) scanString(startOffset int, startLine, startCol uint32) token.Token {
	l.advance(1) // opening quote
	for {
		r, width := l.peekRune()
		if width == 0 || r == '"' {
			if width != 0 {
				l.advance(width)
			}
			break
		}
		if r == '\\' {
			l.advance(width)
			if _, w2 := l.peekRune(); w2 != 0 {
				l.advance(w2)
			}
			continue
		}
		l.advance(width)
	}
	text := l.text[startOffset:l.offset]
	return l.makeToken(token.StringLiteral, startOffset, startLine, startCol, text)
}

func (l *Lexer) scanComment(startOffset int, startLine, startCol uint32) token.Token {
	isDoc := l.peekAt(2) == '/'
	for {
		r, width := l.peekRune()
		if width == 0 || r == '\n' {
			break
		}
		l.advance(width)
	}
	if !isDoc {
		// Plain comments are insignificant trivia: recurse to find the next
		// real token.
		return l.next()
	}
	text := l.text[startOffset:l.offset]
	return l.makeToken(token.DocComment, startOffset, startLine, startCol, text)
}

type symbolRule struct {
	match string
	kind  token.Kind
}

var symbolRules = []symbolRule{
	{"->", token.Arrow},
	{"=>", token.FatArrow},
	{"==", token.Eq},
	{"!=", token.NotEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"::", token.Colon2},
	{"(", token.LParen},
	{")", token.RParen},
	{"{", token.LBrace},
	{"}", token.RBrace},
	{"[", token.LBracket},
	{"]", token.RBracket},
	{",", token.Comma},
	{":", token.Colon},
	{";", token.Semicolon},
	{".", token.Dot},
	{"=", token.Assign},
	{"+", token.Plus},
	{"-", token.Minus},
	{"*", token.Star},
	{"/", token.Slash},
	{"%", token.Percent},
	{"<", token.Lt},
	{">", token.Gt},
	{"!", token.Not},
	{"?", token.Question},
	{"|", token.Pipe},
}

func (l *Lexer) scanSymbol(startOffset int, startLine, startCol uint32, r rune, width int) token.Token {
	remaining := l.text[startOffset:]
	for _, rule := range symbolRules {
		if len(remaining) >= len(rule.match) && remaining[:len(rule.match)] == rule.match {
			l.advanceBytes(len(rule.match))
			return l.makeToken(rule.kind, startOffset, startLine, startCol, rule.match)
		}
	}
	l.advance(width)
	return l.makeToken(token.Invalid, startOffset, startLine, startCol, string(r))
}

func (l *Lexer) peekRune() (rune, int) {
	if l.offset >= len(l.text) {
		return 0, 0
	}
	r, w := utf8.DecodeRuneInString(l.text[l.offset:])
	return r, w
}

func (l *Lexer) peekAt(runesAhead int) rune {
	off := l.offset
	var r rune
	for i := 0; i <= runesAhead; i++ {
		if off >= len(l.text) {
			return 0
		}
		var w int
		r, w = utf8.DecodeRuneInString(l.text[off:])
		off += w
	}
	return r
}

func (l *Lexer) advance(width int) {
	r, _ := utf8.DecodeRuneInString(l.text[l.offset:])
	l.offset += width
	if r == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
}

func (l *Lexer) advanceBytes(n int) {
	for n > 0 {
		_, w := utf8.DecodeRuneInString(l.text[l.offset:])
		if w == 0 || w > n {
			w = n
		}
		l.advance(w)
		n -= w
	}
}

func (l *Lexer) makeToken(kind token.Kind, startOffset int, startLine, startCol uint32, text string) token.Token {
	so, _ := safecast.Convert[uint32](startOffset)
	eo, _ := safecast.Convert[uint32](l.offset)
	return token.Token{
		Kind: kind,
		Span: source.Span{
			File:        l.file,
			StartOffset: so,
			EndOffset:   eo,
			StartLine:   startLine,
			StartColumn: startCol,
			EndLine:     l.line,
			EndColumn:   l.column,
		},
		Text: text,
	}
}
