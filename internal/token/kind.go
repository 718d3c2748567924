// Package token defines the lexical token vocabulary lexer and parser share.
package token

// Kind identifies a lexical token category.
type Kind uint8

const (
	EOF Kind = iota
	Invalid

	Identifier
	IntLiteral
	FloatLiteral
	StringLiteral
	BoolLiteral
	NilLiteral

	DocComment
	StatementTerminator // automatically inserted, or an explicit ';'

	// Keywords
	KwLet
	KwVar
	KwFn
	KwReturn
	KwIf
	KwElse
	KwWhile
	KwFor
	KwIn
	KwBreak
	KwContinue
	KwStruct
	KwEnum
	KwInterface
	KwUnion
	KwType
	KwImport
	KwExports
	KwAs
	KwMatch
	KwMatches
	KwTest
	KwGroup
	KwTrue
	KwFalse
	KwNil
	KwPublic
	KwSelf
	KwMut
	KwImplements

	// Symbols
	LParen
	RParen
	LBrace
	RBrace
	LBracket
	RBracket
	Comma
	Colon
	Semicolon
	Dot
	Arrow      // ->
	FatArrow   // =>
	Assign     // =
	Plus
	Minus
	Star
	Slash
	Percent
	Eq         // ==
	NotEq      // !=
	Lt
	LtEq
	Gt
	GtEq
	AndAnd
	OrOr
	Not
	Question
	Colon2 // ::
	Pipe   // |
)

var names = map[Kind]string{
	EOF:                 "EOF",
	Invalid:              "invalid",
	Identifier:           "identifier",
	IntLiteral:           "int literal",
	FloatLiteral:         "float literal",
	StringLiteral:        "string literal",
	BoolLiteral:          "bool literal",
	NilLiteral:           "nil literal",
	DocComment:           "doc comment",
	StatementTerminator:  "statement terminator",
	KwLet:                "'let'",
	KwVar:                "'var'",
	KwFn:                 "'fn'",
	KwReturn:             "'return'",
	KwIf:                 "'if'",
	KwElse:               "'else'",
	KwWhile:              "'while'",
	KwFor:                "'for'",
	KwIn:                 "'in'",
	KwBreak:              "'break'",
	KwContinue:           "'continue'",
	KwStruct:             "'struct'",
	KwEnum:               "'enum'",
	KwInterface:          "'interface'",
	KwUnion:              "'union'",
	KwType:                "'type'",
	KwImport:             "'import'",
	KwExports:            "'exports'",
	KwAs:                 "'as'",
	KwMatch:              "'match'",
	KwMatches:            "'matches'",
	KwTest:               "'test'",
	KwGroup:              "'group'",
	KwTrue:               "'true'",
	KwFalse:              "'false'",
	KwNil:                "'nil'",
	KwPublic:             "'public'",
	KwSelf:               "'self'",
	KwMut:                "'mut'",
	KwImplements:         "'implements'",
	LParen:               "'('",
	RParen:               "')'",
	LBrace:               "'{'",
	RBrace:               "'}'",
	LBracket:             "'['",
	RBracket:             "']'",
	Comma:                "','",
	Colon:                "':'",
	Semicolon:            "';'",
	Dot:                  "'.'",
	Arrow:                "'->'",
	FatArrow:             "'=>'",
	Assign:               "'='",
	Plus:                 "'+'",
	Minus:                "'-'",
	Star:                 "'*'",
	Slash:                "'/'",
	Percent:              "'%'",
	Eq:                   "'=='",
	NotEq:                "'!='",
	Lt:                   "'<'",
	LtEq:                 "'<='",
	Gt:                   "'>'",
	GtEq:                 "'>='",
	AndAnd:               "'&&'",
	OrOr:                 "'||'",
	Not:                  "'!'",
	Question:             "'?'",
	Colon2:               "'::'",
	Pipe:                 "'|'",
}

// String renders the token kind's display form, as used in parser error
// messages ("expected ';', found ...").
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown token"
}

// Keywords maps lumen's reserved identifiers to their keyword kind.
var Keywords = map[string]Kind{
	"let":       KwLet,
	"var":       KwVar,
	"fn":        KwFn,
	"return":    KwReturn,
	"if":        KwIf,
	"else":      KwElse,
	"while":     KwWhile,
	"for":       KwFor,
	"in":        KwIn,
	"break":     KwBreak,
	"continue":  KwContinue,
	"struct":    KwStruct,
	"enum":      KwEnum,
	"interface": KwInterface,
	"union":     KwUnion,
	"type":      KwType,
	"import":    KwImport,
	"exports":   KwExports,
	"as":        KwAs,
	"match":     KwMatch,
	"matches":   KwMatches,
	"test":      KwTest,
	"group":     KwGroup,
	"true":      KwTrue,
	"false":     KwFalse,
	"nil":        KwNil,
	"public":     KwPublic,
	"self":       KwSelf,
	"mut":        KwMut,
	"implements": KwImplements,
}
