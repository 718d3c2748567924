package ast

import "lumen/internal/source"

// TypeArgs is the (possibly empty) list of generic type arguments attached
// to one segment of a dotted type name, e.g. the `[int]` in `List[int]` or
// the per-segment arguments in `pkg::Map[K, V]`.
type TypeArgs []TypeID

// TypeNameSegment is one `::`-separated component of a type name, carrying
// its own generic arguments (lumen allows `Outer[T]::Inner[U]`).
type TypeNameSegment struct {
	Name string
	Args TypeArgs
}

// Type is a reference to a type as written in source: a dotted name with
// optional per-segment generic arguments, or one of the built-in
// constructed forms (list, optional, function).
type Type struct {
	Span source.Span
	Kind TypeKind

	// Kind == TypeName
	Segments []TypeNameSegment

	// Kind == TypeList
	Element TypeID

	// Kind == TypeOptional
	Inner TypeID

	// Kind == TypeFunction
	Params []TypeID
	Result TypeID

	// Kind == TypeUnion
	Members []TypeID
}

// TypeKind tags the variant of a Type node.
type TypeKind uint8

const (
	TypeName TypeKind = iota
	TypeList
	TypeOptional
	TypeFunction
	TypeUnion
)

// TypeArena stores the type nodes of one file.
type TypeArena struct {
	nodes []Type
}

func (a *TypeArena) Add(t Type) TypeID {
	id := TypeID(len(a.nodes))
	a.nodes = append(a.nodes, t)
	return id
}

func (a *TypeArena) Get(id TypeID) *Type {
	return &a.nodes[id]
}
