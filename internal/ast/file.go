package ast

import "lumen/internal/source"

// File is the parsed syntax tree of one source file: a flat list of
// top-level declarations plus the shared arenas every Decl/Stmt/Expr/Type
// ID indexes into.
type File struct {
	ID    source.FileID
	Decls []DeclID

	DeclArena DeclArena
	Stmts     StmtArena
	Exprs     ExprArena
	Types     TypeArena
}

// DeclArena stores the top-level declaration nodes of one file.
type DeclArena struct {
	nodes []Decl
}

func (a *DeclArena) Add(d Decl) DeclID {
	id := DeclID(len(a.nodes))
	a.nodes = append(a.nodes, d)
	return id
}

func (a *DeclArena) Get(id DeclID) *Decl {
	return &a.nodes[id]
}

func (a *DeclArena) Len() int {
	return len(a.nodes)
}

// NewFile returns an empty syntax tree for file id.
func NewFile(id source.FileID) *File {
	return &File{ID: id}
}
