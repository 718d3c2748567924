package typecheck

import (
	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/semtypes"
	"lumen/internal/source"
)

// TypeRegistry maps declared nominal type names (struct/enum/interface/
// type-alias declarations) visible to one package to their NominalID, so
// ResolveType can turn a syntactic `ast.Type` reference into a
// `semtypes.Type`. It also tracks the stack of generic type-parameter
// scopes currently in effect (pushed/popped around the signature and body
// of whichever function, struct, or method declared them), and the
// diagnostic bag for the file currently being resolved against.
type TypeRegistry struct {
	pkg   source.PackageID
	names map[string]bool

	typeParamStack []map[string]bool
	bag            *diag.Bag
}

// NewTypeRegistry returns a registry for package pkg with the given set of
// locally-visible nominal type names (declared in this package, or
// imported).
func NewTypeRegistry(pkg source.PackageID, names map[string]bool) *TypeRegistry {
	return &TypeRegistry{pkg: pkg, names: names}
}

// SetBag points the registry at the diagnostic bag that unresolvable type
// references should be reported to. A package's files are checked
// sequentially, so it's safe to repoint this per file.
func (r *TypeRegistry) SetBag(bag *diag.Bag) {
	r.bag = bag
}

// PushTypeParams opens a new generic scope containing params' names, used
// while checking the signature and body of the declaration that introduced
// them. Scopes nest: a method's type parameters are visible alongside its
// enclosing struct's.
func (r *TypeRegistry) PushTypeParams(params []ast.TypeParam) {
	scope := make(map[string]bool, len(params))
	for _, p := range params {
		scope[p.Name] = true
	}
	r.typeParamStack = append(r.typeParamStack, scope)
}

// PopTypeParams closes the innermost generic scope opened by PushTypeParams.
func (r *TypeRegistry) PopTypeParams() {
	r.typeParamStack = r.typeParamStack[:len(r.typeParamStack)-1]
}

func (r *TypeRegistry) isTypeParam(name string) bool {
	for i := len(r.typeParamStack) - 1; i >= 0; i-- {
		if r.typeParamStack[i][name] {
			return true
		}
	}
	return false
}

// ResolveType converts a syntax-level type reference into the semantic
// type it denotes. An unresolvable name (neither a builtin, an in-scope
// type parameter, nor a known nominal declaration) raises a
// CodeTypeUnknownName diagnostic at the reference site and resolves to
// Unknown.
func (r *TypeRegistry) ResolveType(file *ast.File, id ast.TypeID) semtypes.Type {
	if id == ast.NoType {
		return semtypes.Type{Kind: semtypes.Nil}
	}
	t := file.Types.Get(id)
	switch t.Kind {
	case ast.TypeName:
		return r.resolveTypeName(file, t)
	case ast.TypeList:
		elem := r.ResolveType(file, t.Element)
		return semtypes.Type{Kind: semtypes.List, Element: &elem}
	case ast.TypeOptional:
		inner := r.ResolveType(file, t.Inner)
		return semtypes.Type{Kind: semtypes.Optional, Element: &inner}
	case ast.TypeFunction:
		params := make([]semtypes.Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = r.ResolveType(file, p)
		}
		var result *semtypes.Type
		if t.Result != ast.NoType {
			rt := r.ResolveType(file, t.Result)
			result = &rt
		}
		return semtypes.Type{Kind: semtypes.Function, Params: params, Result: result}
	case ast.TypeUnion:
		members := make([]semtypes.Type, len(t.Members))
		for i, m := range t.Members {
			members[i] = r.ResolveType(file, m)
		}
		return semtypes.NormalizeUnion(members)
	default:
		return semtypes.Type{Kind: semtypes.Unknown}
	}
}

func (r *TypeRegistry) resolveTypeName(file *ast.File, t *ast.Type) semtypes.Type {
	if len(t.Segments) == 1 {
		seg := t.Segments[0]
		if builtin, ok := semtypes.FromBuiltinName(seg.Name); ok && len(seg.Args) == 0 {
			return builtin
		}
		if len(seg.Args) == 0 && r.isTypeParam(seg.Name) {
			return semtypes.Type{Kind: semtypes.TypeParam, DisplayName: seg.Name}
		}
		if r.names[seg.Name] {
			args := make([]semtypes.Type, len(seg.Args))
			for i, a := range seg.Args {
				args[i] = r.ResolveType(file, a)
			}
			return semtypes.Type{
				Kind:        semtypes.Nominal,
				Nominal:     semtypes.NominalID{Package: r.pkg, Name: seg.Name},
				DisplayName: seg.Name,
				TypeArgs:    args,
			}
		}
	}
	if r.bag != nil {
		r.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeUnknownName, diag.Error, t.Span,
			"unknown type '"+t.Segments[len(t.Segments)-1].Name+"'"))
	}
	return semtypes.Type{Kind: semtypes.Unknown}
}
