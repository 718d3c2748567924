package lexer

import "lumen/internal/token"

// InsertStatementTerminators runs the automatic statement-terminator pass
// over a raw token stream. It never touches the lexer itself: it is a pure
// function from one token slice to another, kept deliberately separate from
// scanning so the trigger/boundary rules can be tested without a lexer in
// the loop.
//
// The rule: whenever a line break separates two tokens and the token before
// the break is one that could legally end a statement (an identifier, a
// literal, a closing bracket, or one of break/continue/return), a
// StatementTerminator token is inserted at the break. An explicit ';' in the
// source is left as-is and never duplicated.
func InsertStatementTerminators(tokens []token.Token) []token.Token {
	out := make([]token.Token, 0, len(tokens)+len(tokens)/4)
	for i, tok := range tokens {
		if i > 0 {
			prev := tokens[i-1]
			if tok.Span.StartLine > prev.Span.EndLine &&
				isStatementTerminatorTrigger(prev.Kind) &&
				tok.Kind != token.Semicolon &&
				tok.Kind != token.StatementTerminator {
				out = append(out, token.Token{
					Kind: token.StatementTerminator,
					Span: prev.Span,
					Text: "",
				})
			}
		}
		out = append(out, tok)
	}
	return out
}

// isStatementTerminatorTrigger reports whether a line break following a
// token of this kind should imply an inserted statement terminator.
func isStatementTerminatorTrigger(kind token.Kind) bool {
	switch kind {
	case token.Identifier,
		token.IntLiteral,
		token.FloatLiteral,
		token.StringLiteral,
		token.BoolLiteral,
		token.NilLiteral,
		token.RParen,
		token.RBracket,
		token.RBrace,
		token.KwBreak,
		token.KwContinue,
		token.KwReturn,
		token.KwTrue,
		token.KwFalse,
		token.KwNil:
		return true
	default:
		return false
	}
}
