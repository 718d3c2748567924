package ast

import "lumen/internal/source"

// DeclKind tags the variant of a top-level Decl node.
type DeclKind uint8

const (
	DeclImport DeclKind = iota
	DeclExports
	DeclFunction
	DeclStruct
	DeclEnum
	DeclInterface
	DeclUnion
	DeclTypeAlias
	DeclTest
	DeclGroup
	// DeclRecovered marks a top-level span the parser could not parse as
	// any known declaration; later declarations still parse normally.
	DeclRecovered
)

// ImportBinding is one `Name` or `Name as Alias` entry in an import list.
type ImportBinding struct {
	Name  string
	Alias string // equal to Name when no alias was given
	Span  source.Span
}

// TypeParam is one entry in a generic declaration's `[T, U implements Bound]` list.
type TypeParam struct {
	Name  string
	Bound TypeID // NoType if unconstrained
}

// Param is one function parameter.
type Param struct {
	Name       string
	Annotation TypeID
	Span       source.Span
}

// StructField is one field of a `struct` declaration.
type StructField struct {
	Name       string
	Annotation TypeID
	Doc        string
	DocSpan    source.Span // span of the Doc comment block itself; zero value when Doc == ""
	Span       source.Span
}

// EnumVariant is one variant of an `enum` declaration. Variants with no
// Fields are simple tags; variants with Fields carry associated data.
type EnumVariant struct {
	Name   string
	Fields []StructField
	Span   source.Span
}

// StructMethod is one `fn` declared inside a `struct` body, alongside its
// fields. Its first parameter is always the implicit receiver: Mut records
// whether it was written `mut self` (and so may mutate the receiver's
// fields) as opposed to plain `self`.
type StructMethod struct {
	Name       string
	Mut        bool
	TypeParams []TypeParam
	Params     []Param
	Result     TypeID
	Body       StmtID
	Doc        string
	DocSpan    source.Span
	Span       source.Span
}

// InterfaceMethod is one method signature declared by an `interface`.
type InterfaceMethod struct {
	Name    string
	Params  []Param
	Result  TypeID // NoType for no return value
	Span    source.Span
}

// Decl is one top-level declaration node.
type Decl struct {
	Span source.Span
	Kind DeclKind
	Name string
	Doc  string      // doc comment text immediately preceding the declaration, if any
	DocSpan source.Span // span of the Doc comment block itself; zero value when Doc == ""
	Public bool

	// DeclImport
	PackagePath string
	Bindings    []ImportBinding

	// DeclExports
	Exported []string

	// DeclFunction
	TypeParams []TypeParam
	Params     []Param
	Result     TypeID // NoType means no declared return type
	Body       StmtID // StmtBlock

	// DeclStruct
	Fields        []StructField
	StructMethods []StructMethod

	// DeclEnum
	Variants []EnumVariant

	// DeclInterface
	Methods []InterfaceMethod

	// DeclUnion
	Members []TypeID

	// DeclTypeAlias
	Aliased TypeID

	// DeclTest
	TestBody StmtID // StmtBlock; only present on DeclTest

	// DeclGroup
	GroupTests []DeclID // nested DeclTest entries
}
