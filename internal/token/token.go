package token

import "lumen/internal/source"

// Token is one lexed unit: a kind, its source span, and its literal text
// (the exact slice of source covered by Span, kept so the parser never has
// to re-slice the file to recover an identifier or literal value).
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsKeyword reports whether kind is one of the reserved-word kinds.
func IsKeyword(kind Kind) bool {
	return kind >= KwLet && kind <= KwImplements
}
