// Package semtypes is lumen's semantic type lattice: the types the
// checker reasons about, as distinct from the syntactic ast.Type nodes a
// file's source spells them as.
package semtypes

import (
	"sort"
	"strings"

	"lumen/internal/source"
)

// Kind tags the variant of a Type.
type Kind uint8

const (
	Int Kind = iota
	Float
	String
	Bool
	Nil
	// Unknown absorbs into any assignability check: it means "a prior
	// error already broke this expression's type", and propagating it
	// silently avoids cascading unrelated diagnostics from one root cause.
	Unknown
	// Never is the type of an expression that can't produce a value (an
	// unconditional `return`/`break`/`continue` branch). It is assignable
	// to anything and nothing is assignable to it except itself.
	Never
	Nominal
	List
	Optional
	Function
	Union
	// TypeParam is an unresolved reference to a generic declaration's own
	// type parameter (the `T` in `fn first[T](xs: [T]) -> T`). It behaves
	// like Unknown for assignability purposes, since lumen doesn't
	// instantiate generics at check time, but keeps its own DisplayName so
	// diagnostics still show "T" instead of "unknown".
	TypeParam
)

// NominalID identifies a nominal (struct/enum/interface/type-alias) type by
// the only two things that actually distinguish it: the package that
// declared it and the name it was declared under. Two NominalIDs are the
// same type if and only if both fields match — a type's DisplayName is
// informational only and never participates in equality.
type NominalID struct {
	Package source.PackageID
	Name    string
}

// Type is one node of the semantic type lattice.
type Type struct {
	Kind Kind

	// Kind == Nominal
	Nominal     NominalID
	DisplayName string
	TypeArgs    []Type

	// Kind == List / Optional
	Element *Type

	// Kind == Function
	Params []Type
	Result *Type

	// Kind == Union
	Members []Type
}

// Name returns the type's identity string, used for equality/lookup
// purposes (nominal types compare by package+name, not DisplayName).
func (t Type) Name() string {
	switch t.Kind {
	case Nominal:
		return t.Nominal.Name
	default:
		return t.display()
	}
}

// Display renders the type's human-readable form for diagnostics.
func (t Type) Display() string {
	return t.display()
}

func (t Type) display() string {
	switch t.Kind {
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Nil:
		return "nil"
	case Unknown:
		return "unknown"
	case TypeParam:
		return t.DisplayName
	case Never:
		return "never"
	case Nominal:
		if t.DisplayName != "" {
			return t.DisplayName
		}
		return t.Nominal.Name
	case List:
		return "[" + t.Element.display() + "]"
	case Optional:
		return t.Element.display() + "?"
	case Function:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.display()
		}
		res := "nil"
		if t.Result != nil {
			res = t.Result.display()
		}
		return "fn(" + strings.Join(parts, ", ") + ") -> " + res
	case Union:
		parts := make([]string, len(t.Members))
		for i, m := range t.Members {
			parts[i] = m.display()
		}
		return strings.Join(parts, " | ")
	default:
		return "?"
	}
}

// builtinByName maps lumen's primitive type-name keywords to their Type.
var builtinByName = map[string]Type{
	"int":    {Kind: Int},
	"float":  {Kind: Float},
	"string": {Kind: String},
	"bool":   {Kind: Bool},
	"nil":    {Kind: Nil},
}

// FromBuiltinName returns the primitive type named by name, if any.
func FromBuiltinName(name string) (Type, bool) {
	t, ok := builtinByName[name]
	return t, ok
}

// NormalizeUnion flattens nested unions, removes duplicate members (by
// display string — two Unknown or two identically-named nominal members
// collapse to one), and collapses a single-member union down to that
// member, matching the assignability algorithm's expectations.
func NormalizeUnion(members []Type) Type {
	var flat []Type
	var flatten func([]Type)
	flatten = func(ms []Type) {
		for _, m := range ms {
			if m.Kind == Union {
				flatten(m.Members)
			} else {
				flat = append(flat, m)
			}
		}
	}
	flatten(members)

	seen := map[string]bool{}
	var deduped []Type
	for _, m := range flat {
		key := m.display()
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, m)
	}
	sort.Slice(deduped, func(i, j int) bool { return deduped[i].display() < deduped[j].display() })

	if len(deduped) == 1 {
		return deduped[0]
	}
	return Type{Kind: Union, Members: deduped}
}
