// Package program is lumen's target-independent executable-program IR: the
// typed tree a backend consumes after a binary target passes type checking,
// with no remaining knowledge of lumen's own syntax. It is the only IR that
// crosses a process boundary, serialized with
// github.com/vmihailenco/msgpack/v5 the same way the teacher serializes its
// on-disk module-cache payloads.
package program

// TypeRef identifies a nominal type by the package that declared it and the
// name it was declared under — the serializable counterpart of
// semtypes.NominalID.
type TypeRef struct {
	PackagePath string
	SymbolName  string
}

// ValueType tags the shape of a Program-level type reference.
type ValueType uint8

const (
	TInt ValueType = iota
	TFloat
	TString
	TBool
	TNil
	TNever
	TNominal
	TList
	TOptional
	TFunction
	TUnion
)

// Type is the serializable form of a checked expression's result type.
type Type struct {
	Kind ValueType

	Nominal TypeRef // Kind == TNominal

	Element *Type // Kind == TList / TOptional

	Params []Type // Kind == TFunction
	Result *Type  // Kind == TFunction

	Members []Type // Kind == TUnion
}

// CallTargetKind tags what a Call instruction invokes.
type CallTargetKind uint8

const (
	// CallBuiltin invokes one of the fixed runtime builtins (print, abort,
	// assert) by name.
	CallBuiltin CallTargetKind = iota
	// CallListBuiltin invokes a list-value builtin method (len, push, ...).
	CallListBuiltin
	// CallUser invokes a user-defined function by its TypeRef.
	CallUser
	// CallMethod invokes a struct method on a receiver value.
	CallMethod
)

// CallTarget names what a Call expression invokes.
type CallTarget struct {
	Kind     CallTargetKind
	Name     string  // CallBuiltin / CallListBuiltin / CallMethod (method name)
	Target   TypeRef // CallUser
	Receiver *Expr   // CallMethod
}

// Constant is one entry of a Program's constant pool: literal values
// referenced by index from function bodies, deduplicated at emission time.
type Constant struct {
	Kind  ValueType // TInt / TFloat / TString / TBool / TNil
	Int   int64
	Float float64
	Str   string
	Bool  bool
}

// Param is one function parameter's name and type.
type Param struct {
	Name string
	Type Type
}

// Field is one struct field's name and type.
type Field struct {
	Name string
	Type Type
}

// Method is one interface method's signature.
type Method struct {
	Name   string
	Params []Param
	Result *Type
}

// StructDef is one struct type's field layout and compiled method set.
type StructDef struct {
	Ref     TypeRef
	Fields  []Field
	Methods []MethodDef
}

// MethodDef is one struct method's compiled body, with its implicit `self`
// receiver's declared mutability recorded alongside the rest of its
// signature.
type MethodDef struct {
	Name    string
	SelfMut bool
	Params  []Param
	Result  *Type
	Body    []Stmt
}

// InterfaceDef is one interface type's method set.
type InterfaceDef struct {
	Ref     TypeRef
	Methods []Method
}

// FunctionDef is one function's typed, compiled body.
type FunctionDef struct {
	Ref    TypeRef
	Params []Param
	Result *Type
	Body   []Stmt
}

// Program is the complete target-independent executable program emitted
// for one binary target: `{ entrypoint, constants, interfaces, structs,
// functions }`.
type Program struct {
	Entrypoint TypeRef
	Constants  []Constant
	Interfaces []InterfaceDef
	Structs    []StructDef
	Functions  []FunctionDef
}
