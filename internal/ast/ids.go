// Package ast defines lumen's syntax tree: a tagged-union node model stored
// in per-kind arenas and addressed by small integer IDs rather than
// pointers, so that every cross-reference (a call's callee, a type's
// arguments, a block's statements) survives tree mutation during error
// recovery without invalidating a borrowed reference.
package ast

// DeclID addresses a top-level declaration within a File.
type DeclID uint32

// ExprID addresses an expression node within a File's expression arena.
type ExprID uint32

// StmtID addresses a statement node within a File's statement arena.
type StmtID uint32

// TypeID addresses a type-reference node within a File's type arena.
type TypeID uint32

// NoExpr/NoStmt/NoType/NoDecl are sentinel IDs meaning "absent", used for
// optional children (an `if` with no `else`, a `return` with no value).
const (
	NoExpr ExprID = ^ExprID(0)
	NoStmt StmtID = ^StmtID(0)
	NoType TypeID = ^TypeID(0)
	NoDecl DeclID = ^DeclID(0)
)
