package typecheck

import (
	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/semtypes"
	"lumen/internal/source"
)

// Checker holds the state threaded through one file's flow-sensitive type
// check: the syntax tree being walked, the current lexical scope, the type
// registry resolving annotations to semtypes.Type, and the diagnostic bag
// every check contributes to.
type Checker struct {
	file  *ast.File
	pkg   source.PackageID
	scope *Scope
	types *TypeRegistry
	bag   *diag.Bag

	structFields map[string]map[string]semtypes.Type
	funcTypes    map[string]semtypes.Type
	// methods maps a struct's name to its methods' names to their Function
	// type, with the implicit `self` receiver excluded from Params.
	methods      map[string]map[string]semtypes.Type
	methodBodies []methodBody
	currentFunc  semtypes.Type // Function type of the enclosing function, for return-type checks

	// ExprTypes records every expression's inferred type as CheckFile walks
	// the tree, so a later emission pass (internal/program) can read back a
	// checked file's result types without re-running inference.
	ExprTypes map[ast.ExprID]semtypes.Type
}

// methodBody carries what checkMethodBody needs to check one struct method's
// body, gathered once up front by collectDeclaredTypes so CheckFile can
// check every method after every file-level function's signature has
// already been collected.
type methodBody struct {
	structTypeParams []ast.TypeParam
	method           *ast.StructMethod
	selfType         semtypes.Type
	funcType         semtypes.Type
}

// NewChecker builds a Checker for file, with pkg identifying the package it
// belongs to (for nominal type identity) and types resolving this package's
// visible type names.
func NewChecker(file *ast.File, pkg source.PackageID, types *TypeRegistry, bag *diag.Bag) *Checker {
	c := &Checker{
		file:         file,
		pkg:          pkg,
		scope:        newScope(nil),
		types:        types,
		bag:          bag,
		structFields: map[string]map[string]semtypes.Type{},
		funcTypes:    map[string]semtypes.Type{},
		methods:      map[string]map[string]semtypes.Type{},
		ExprTypes:    map[ast.ExprID]semtypes.Type{},
	}
	types.SetBag(bag)
	c.collectDeclaredTypes()
	return c
}

// collectDeclaredTypes populates structFields and funcTypes from the file's
// top-level declarations, so forward references (a function calling another
// function declared later in the same file) resolve correctly.
func (c *Checker) collectDeclaredTypes() {
	for _, id := range c.file.Decls {
		d := c.file.DeclArena.Get(id)
		switch d.Kind {
		case ast.DeclStruct:
			c.types.PushTypeParams(d.TypeParams)
			fields := map[string]semtypes.Type{}
			for _, f := range d.Fields {
				fields[f.Name] = c.types.ResolveType(c.file, f.Annotation)
			}
			c.structFields[d.Name] = fields

			selfType := c.selfType(d)
			methodSet := map[string]semtypes.Type{}
			for mi := range d.StructMethods {
				m := &d.StructMethods[mi]
				c.types.PushTypeParams(m.TypeParams)
				ft := c.methodType(m)
				c.types.PopTypeParams()
				methodSet[m.Name] = ft
				c.methodBodies = append(c.methodBodies, methodBody{
					structTypeParams: d.TypeParams,
					method:           m,
					selfType:         selfType,
					funcType:         ft,
				})
			}
			c.methods[d.Name] = methodSet

			c.types.PopTypeParams()
		case ast.DeclFunction:
			c.types.PushTypeParams(d.TypeParams)
			c.funcTypes[d.Name] = c.functionType(d)
			c.types.PopTypeParams()
		}
	}
}

func (c *Checker) functionType(d *ast.Decl) semtypes.Type {
	params := make([]semtypes.Type, len(d.Params))
	for i, p := range d.Params {
		params[i] = c.types.ResolveType(c.file, p.Annotation)
	}
	var result *semtypes.Type
	if d.Result != ast.NoType {
		rt := c.types.ResolveType(c.file, d.Result)
		result = &rt
	}
	return semtypes.Type{Kind: semtypes.Function, Params: params, Result: result}
}

// methodType resolves a struct method's signature into a Function type,
// excluding the implicit `self` receiver from Params.
func (c *Checker) methodType(m *ast.StructMethod) semtypes.Type {
	params := make([]semtypes.Type, len(m.Params))
	for i, p := range m.Params {
		params[i] = c.types.ResolveType(c.file, p.Annotation)
	}
	var result *semtypes.Type
	if m.Result != ast.NoType {
		rt := c.types.ResolveType(c.file, m.Result)
		result = &rt
	}
	return semtypes.Type{Kind: semtypes.Function, Params: params, Result: result}
}

// selfType returns the type a method declared on struct d binds its
// implicit `self` parameter to: d's own nominal type, applied to its own
// type parameters (each standing for itself, since a generic struct's
// methods aren't instantiated at check time).
func (c *Checker) selfType(d *ast.Decl) semtypes.Type {
	args := make([]semtypes.Type, len(d.TypeParams))
	for i, tp := range d.TypeParams {
		args[i] = semtypes.Type{Kind: semtypes.TypeParam, DisplayName: tp.Name}
	}
	return semtypes.Type{
		Kind:        semtypes.Nominal,
		Nominal:     semtypes.NominalID{Package: c.pkg, Name: d.Name},
		DisplayName: d.Name,
		TypeArgs:    args,
	}
}

// CheckFile type-checks every function declaration, test body and struct
// method body in the file. Otherwise struct, enum, interface, union, and
// type-alias declarations contribute only their shape (already captured by
// collectDeclaredTypes).
func (c *Checker) CheckFile() {
	for _, id := range c.file.Decls {
		d := c.file.DeclArena.Get(id)
		switch d.Kind {
		case ast.DeclFunction:
			c.CheckFunction(d)
		case ast.DeclTest:
			c.checkTestBody(d)
		case ast.DeclGroup:
			for _, tid := range d.GroupTests {
				c.checkTestBody(c.file.DeclArena.Get(tid))
			}
		}
	}
	for _, mb := range c.methodBodies {
		c.checkMethodBody(mb)
	}
}

func (c *Checker) checkTestBody(d *ast.Decl) {
	if d.TestBody == ast.NoStmt {
		return
	}
	c.currentFunc = semtypes.Type{Kind: semtypes.Nil}
	c.scope = newScope(nil)
	c.checkBlock(d.TestBody)
}

// CheckFunction checks one function's parameter scope and body, reporting a
// missing final return when the declared result type isn't nil-compatible.
func (c *Checker) CheckFunction(d *ast.Decl) {
	c.types.PushTypeParams(d.TypeParams)
	defer c.types.PopTypeParams()

	c.currentFunc = c.funcTypes[d.Name]
	c.scope = newScope(nil)
	for _, p := range d.Params {
		c.scope.declare(p.Name, c.types.ResolveType(c.file, p.Annotation), true)
	}

	reachable := c.checkBlock(d.Body)

	if d.Result != ast.NoType && reachable {
		resultType := c.types.ResolveType(c.file, d.Result)
		if !semtypes.IsAssignable(semtypes.Type{Kind: semtypes.Nil}, resultType) {
			c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeMismatch, diag.Error, d.Span,
				"function '"+d.Name+"' does not return a value on all paths"))
		}
	}

	c.reportUnused()
}

// checkMethodBody checks one struct method's parameter scope and body with
// `self` bound to the receiver's type and the method's declared mutability,
// reporting a missing final return the same way CheckFunction does.
func (c *Checker) checkMethodBody(mb methodBody) {
	c.types.PushTypeParams(mb.structTypeParams)
	c.types.PushTypeParams(mb.method.TypeParams)
	defer func() {
		c.types.PopTypeParams()
		c.types.PopTypeParams()
	}()

	m := mb.method
	c.currentFunc = mb.funcType
	c.scope = newScope(nil)
	c.scope.declare("self", mb.selfType, m.Mut)
	for _, p := range m.Params {
		c.scope.declare(p.Name, c.types.ResolveType(c.file, p.Annotation), true)
	}

	reachable := c.checkBlock(m.Body)

	if m.Result != ast.NoType && reachable {
		resultType := c.types.ResolveType(c.file, m.Result)
		if !semtypes.IsAssignable(semtypes.Type{Kind: semtypes.Nil}, resultType) {
			c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeMismatch, diag.Error, m.Span,
				"method '"+m.Name+"' does not return a value on all paths"))
		}
	}

	c.reportUnused()
}

// Package returns the package this checker resolves nominal types against.
func (c *Checker) Package() source.PackageID {
	return c.pkg
}

// ResolveParamType resolves a syntax-level type reference the same way the
// checker itself does, for use by a later emission pass that needs to turn
// a signature's ast.TypeID fields (interface methods, match patterns) into
// semtypes.Type outside of an expression context.
func (c *Checker) ResolveParamType(file *ast.File, id ast.TypeID) semtypes.Type {
	return c.types.ResolveType(file, id)
}

// StructFields returns the field-name-to-type map collected for a struct
// declared in this file, for use by a later emission pass.
func (c *Checker) StructFields(name string) (map[string]semtypes.Type, bool) {
	f, ok := c.structFields[name]
	return f, ok
}

// Methods returns the method-name-to-type map collected for a struct
// declared in this file, for use by a later emission pass.
func (c *Checker) Methods(structName string) (map[string]semtypes.Type, bool) {
	m, ok := c.methods[structName]
	return m, ok
}

// FuncType returns the function type collected for a function declared in
// this file, for use by a later emission pass.
func (c *Checker) FuncType(name string) (semtypes.Type, bool) {
	t, ok := c.funcTypes[name]
	return t, ok
}

func (c *Checker) reportUnused() {
	for name, b := range c.scope.vars {
		if !b.used {
			c.bag.Add(diag.New(diag.PhaseTypeCheck, diag.CodeTypeUnusedBinding, diag.Warning, b.declaredAt,
				"'"+name+"' is declared but never used"))
		}
	}
}
