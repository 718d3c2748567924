package program

import (
	"strconv"

	"lumen/internal/ast"
	"lumen/internal/semtypes"
	"lumen/internal/typecheck"
)

// builtinNames are the fixed runtime builtins every backend must implement,
// per spec.md §6: print(string) -> nil, abort(string) -> never,
// assert(boolean) -> nil.
var builtinNames = map[string]bool{"print": true, "abort": true, "assert": true}

// listBuiltinNames are list-value builtins called by plain name, as in
// len(xs); the emitter recognizes them by the callee identifier's name
// only, since lumen has no other mechanism for naming them.
var listBuiltinNames = map[string]bool{"len": true, "push": true, "pop": true}

// emitter accumulates one file's constant pool while walking its checked
// tree into program IR.
type emitter struct {
	file        *ast.File
	checker     *typecheck.Checker
	pkgPath     string
	constants   []Constant
	constIndex  map[Constant]int
}

// Emit lowers a checked binary-target file into a target-independent
// Program, with entry the package-qualified name of its `main` function.
func Emit(file *ast.File, checker *typecheck.Checker, pkgPath string) *Program {
	e := &emitter{file: file, checker: checker, pkgPath: pkgPath, constIndex: map[Constant]int{}}

	prog := &Program{Entrypoint: TypeRef{PackagePath: pkgPath, SymbolName: "main"}}

	for _, id := range file.Decls {
		d := file.DeclArena.Get(id)
		switch d.Kind {
		case ast.DeclStruct:
			prog.Structs = append(prog.Structs, e.emitStruct(d))
		case ast.DeclInterface:
			prog.Interfaces = append(prog.Interfaces, e.emitInterface(d))
		case ast.DeclFunction:
			prog.Functions = append(prog.Functions, e.emitFunction(d))
		}
	}

	prog.Constants = e.constants
	return prog
}

func (e *emitter) ref(name string) TypeRef {
	return TypeRef{PackagePath: e.pkgPath, SymbolName: name}
}

func (e *emitter) emitStruct(d *ast.Decl) StructDef {
	fields := make([]Field, len(d.Fields))
	structFields, _ := e.checker.StructFields(d.Name)
	for i, f := range d.Fields {
		fields[i] = Field{Name: f.Name, Type: e.convertType(structFields[f.Name])}
	}
	return StructDef{Ref: e.ref(d.Name), Fields: fields, Methods: e.emitMethods(d)}
}

func (e *emitter) emitMethods(d *ast.Decl) []MethodDef {
	methodTypes, _ := e.checker.Methods(d.Name)
	defs := make([]MethodDef, len(d.StructMethods))
	for i := range d.StructMethods {
		m := &d.StructMethods[i]
		ft := methodTypes[m.Name]
		params := make([]Param, len(m.Params))
		for j, p := range m.Params {
			var pt Type
			if j < len(ft.Params) {
				pt = e.convertType(ft.Params[j])
			}
			params[j] = Param{Name: p.Name, Type: pt}
		}
		var result *Type
		if ft.Result != nil {
			t := e.convertType(*ft.Result)
			result = &t
		}
		body := e.file.Stmts.Get(m.Body)
		defs[i] = MethodDef{
			Name:    m.Name,
			SelfMut: m.Mut,
			Params:  params,
			Result:  result,
			Body:    e.emitStmts(body.Statements),
		}
	}
	return defs
}

func (e *emitter) emitInterface(d *ast.Decl) InterfaceDef {
	methods := make([]Method, len(d.Methods))
	for i, m := range d.Methods {
		params := make([]Param, len(m.Params))
		for j, p := range m.Params {
			params[j] = Param{Name: p.Name, Type: e.convertType(e.checker.ResolveParamType(e.file, p.Annotation))}
		}
		var result *Type
		if m.Result != ast.NoType {
			t := e.convertType(e.checker.ResolveParamType(e.file, m.Result))
			result = &t
		}
		methods[i] = Method{Name: m.Name, Params: params, Result: result}
	}
	return InterfaceDef{Ref: e.ref(d.Name), Methods: methods}
}

func (e *emitter) emitFunction(d *ast.Decl) FunctionDef {
	funcType, _ := e.checker.FuncType(d.Name)
	params := make([]Param, len(d.Params))
	for i, p := range d.Params {
		var pt Type
		if i < len(funcType.Params) {
			pt = e.convertType(funcType.Params[i])
		}
		params[i] = Param{Name: p.Name, Type: pt}
	}
	var result *Type
	if funcType.Result != nil {
		t := e.convertType(*funcType.Result)
		result = &t
	}
	body := e.file.Stmts.Get(d.Body)
	return FunctionDef{
		Ref:    e.ref(d.Name),
		Params: params,
		Result: result,
		Body:   e.emitStmts(body.Statements),
	}
}

func (e *emitter) emitStmts(ids []ast.StmtID) []Stmt {
	out := make([]Stmt, 0, len(ids))
	for _, id := range ids {
		out = append(out, e.emitStmt(id))
	}
	return out
}

func (e *emitter) emitStmt(id ast.StmtID) Stmt {
	s := e.file.Stmts.Get(id)
	switch s.Kind {
	case ast.StmtLet, ast.StmtVar:
		var init *Expr
		var letType Type
		if s.Init != ast.NoExpr {
			ex := e.emitExpr(s.Init)
			init = &ex
			letType = e.convertType(e.checker.ExprTypes[s.Init])
		}
		if s.Annotation != ast.NoType {
			letType = e.convertType(e.checker.ResolveParamType(e.file, s.Annotation))
		}
		return Stmt{Kind: SLet, LetName: s.Name, LetType: letType, LetInit: init}
	case ast.StmtAssign:
		return Stmt{Kind: SAssign, AssignTo: e.emitAssignTarget(s.Target), AssignValue: ptr(e.emitExpr(s.Value))}
	case ast.StmtExpr:
		return Stmt{Kind: SExpr, Expr: ptr(e.emitExpr(s.Expr))}
	case ast.StmtReturn:
		var v *Expr
		if s.ReturnValue != ast.NoExpr {
			v = ptr(e.emitExpr(s.ReturnValue))
		}
		return Stmt{Kind: SReturn, ReturnValue: v}
	case ast.StmtIf:
		st := Stmt{Kind: SIf, Cond: ptr(e.emitExpr(s.Cond)), Then: e.emitBlock(s.Then)}
		if s.Else != ast.NoStmt {
			elseStmt := e.file.Stmts.Get(s.Else)
			if elseStmt.Kind == ast.StmtIf {
				st.Else = []Stmt{e.emitStmt(s.Else)}
			} else {
				st.Else = e.emitBlock(s.Else)
			}
		}
		return st
	case ast.StmtWhile:
		return Stmt{Kind: SWhile, Cond: ptr(e.emitExpr(s.Cond)), Then: e.emitBlock(s.Then)}
	case ast.StmtForIn:
		iterable := ptr(e.emitExpr(s.Iterable))
		loopVarType := Type{Kind: TNil}
		if iterable.Type.Kind == TList && iterable.Type.Element != nil {
			loopVarType = *iterable.Type.Element
		}
		return Stmt{
			Kind:        SForIn,
			LoopVar:     s.LoopVar,
			LoopVarType: loopVarType,
			Iterable:    iterable,
			Body:        e.emitBlock(s.Body),
		}
	case ast.StmtBreak:
		return Stmt{Kind: SBreak}
	case ast.StmtContinue:
		return Stmt{Kind: SContinue}
	case ast.StmtBlock:
		return Stmt{Kind: SBlock, Statements: e.emitBlock(id)}
	default: // StmtRecovered: never reaches emission, kept only for completeness
		return Stmt{Kind: SBlock}
	}
}

func (e *emitter) emitBlock(id ast.StmtID) []Stmt {
	block := e.file.Stmts.Get(id)
	return e.emitStmts(block.Statements)
}

func (e *emitter) emitAssignTarget(id ast.ExprID) AssignTarget {
	target := e.file.Exprs.Get(id)
	switch target.Kind {
	case ast.ExprIndex:
		return AssignTarget{Kind: ATIndex, IndexBase: ptr(e.emitExpr(target.Target)), IndexKey: ptr(e.emitExpr(target.Index))}
	case ast.ExprFieldAccess:
		return AssignTarget{Kind: ATField, FieldBase: ptr(e.emitExpr(target.Base)), FieldName: target.Field}
	default: // ast.ExprIdentifier
		return AssignTarget{Kind: ATLocal, Name: target.Name}
	}
}

func (e *emitter) emitExpr(id ast.ExprID) Expr {
	ex := e.file.Exprs.Get(id)
	resultType := e.convertType(e.checker.ExprTypes[id])

	switch ex.Kind {
	case ast.ExprIntLiteral:
		n, _ := strconv.ParseInt(ex.Literal, 10, 64)
		return Expr{Kind: EConst, Type: resultType, ConstIndex: e.intern(Constant{Kind: TInt, Int: n})}
	case ast.ExprFloatLiteral:
		f, _ := strconv.ParseFloat(ex.Literal, 64)
		return Expr{Kind: EConst, Type: resultType, ConstIndex: e.intern(Constant{Kind: TFloat, Float: f})}
	case ast.ExprStringLiteral:
		return Expr{Kind: EConst, Type: resultType, ConstIndex: e.intern(Constant{Kind: TString, Str: ex.Literal})}
	case ast.ExprBoolLiteral:
		return Expr{Kind: EConst, Type: resultType, ConstIndex: e.intern(Constant{Kind: TBool, Bool: ex.Literal == "true"})}
	case ast.ExprNilLiteral:
		return Expr{Kind: EConst, Type: resultType, ConstIndex: e.intern(Constant{Kind: TNil})}
	case ast.ExprIdentifier:
		return Expr{Kind: ELoad, Type: resultType, Name: ex.Name}
	case ast.ExprBinary:
		return Expr{Kind: EBinary, Type: resultType, Op: convertBinOp(ex.BinOp), Left: ptr(e.emitExpr(ex.Left)), Right: ptr(e.emitExpr(ex.Right))}
	case ast.ExprUnary:
		return Expr{Kind: EUnary, Type: resultType, UnaryOp: convertUnOp(ex.UnOp), Operand: ptr(e.emitExpr(ex.Operand))}
	case ast.ExprCall:
		return e.emitCall(ex, resultType)
	case ast.ExprIndex:
		return Expr{Kind: EIndex, Type: resultType, IndexTarget: ptr(e.emitExpr(ex.Target)), Index: ptr(e.emitExpr(ex.Index))}
	case ast.ExprFieldAccess:
		return Expr{Kind: EField, Type: resultType, FieldTarget: ptr(e.emitExpr(ex.Base)), FieldName: ex.Field}
	case ast.ExprListLiteral:
		elements := make([]Expr, len(ex.Elements))
		for i, el := range ex.Elements {
			elements[i] = e.emitExpr(el)
		}
		return Expr{Kind: EListLiteral, Type: resultType, Elements: elements}
	case ast.ExprStructLiteral:
		fields := make([]FieldInit, len(ex.Fields))
		for i, f := range ex.Fields {
			fields[i] = FieldInit{Name: f.Name, Value: e.emitExpr(f.Value)}
		}
		return Expr{Kind: EStructLiteral, Type: resultType, StructRef: e.ref(ex.TypeName), FieldValues: fields}
	case ast.ExprMatch, ast.ExprMatches:
		return e.emitMatch(ex, resultType)
	default:
		return Expr{Kind: EConst, Type: resultType, ConstIndex: e.intern(Constant{Kind: TNil})}
	}
}

func (e *emitter) emitCall(ex *ast.Expr, resultType Type) Expr {
	args := make([]Expr, len(ex.Arguments))
	for i, a := range ex.Arguments {
		args[i] = e.emitExpr(a)
	}

	callee := e.file.Exprs.Get(ex.Callee)
	var target CallTarget
	switch {
	case callee.Kind == ast.ExprIdentifier && builtinNames[callee.Name]:
		target = CallTarget{Kind: CallBuiltin, Name: callee.Name}
	case callee.Kind == ast.ExprIdentifier && listBuiltinNames[callee.Name]:
		target = CallTarget{Kind: CallListBuiltin, Name: callee.Name}
	case callee.Kind == ast.ExprFieldAccess:
		receiver := e.emitExpr(callee.Base)
		target = CallTarget{Kind: CallMethod, Name: callee.Field, Receiver: &receiver}
	case callee.Kind == ast.ExprIdentifier:
		target = CallTarget{Kind: CallUser, Target: e.ref(callee.Name)}
	default:
		target = CallTarget{Kind: CallUser, Target: e.ref(callee.Name)}
	}

	return Expr{Kind: ECall, Type: resultType, Target: target, Arguments: args}
}

func (e *emitter) emitMatch(ex *ast.Expr, resultType Type) Expr {
	subject := e.emitExpr(ex.Subject)
	arms := make([]MatchArm, len(ex.Arms))
	for i, arm := range ex.Arms {
		var pattern MatchPattern
		switch arm.Pattern.Kind {
		case ast.PatternWildcard:
			pattern = MatchPattern{Kind: PWildcard}
		case ast.PatternType:
			pattern = MatchPattern{
				Kind:    PType,
				Binding: arm.Pattern.Binding,
				Type:    e.convertType(e.checker.ResolveParamType(e.file, arm.Pattern.Type)),
			}
		case ast.PatternLiteral:
			lit := e.emitExpr(arm.Pattern.Literal)
			pattern = MatchPattern{Kind: PLiteral, Literal: &lit}
		}
		arms[i] = MatchArm{Pattern: pattern, Result: e.emitExpr(arm.Result)}
	}
	return Expr{Kind: EMatch, Type: resultType, Subject: ptr(subject), Arms: arms}
}

func (e *emitter) intern(c Constant) int {
	if i, ok := e.constIndex[c]; ok {
		return i
	}
	i := len(e.constants)
	e.constants = append(e.constants, c)
	e.constIndex[c] = i
	return i
}

func ptr(e Expr) *Expr {
	return &e
}

func convertBinOp(op ast.BinaryOp) BinOp {
	switch op {
	case ast.OpAdd:
		return BAdd
	case ast.OpSub:
		return BSub
	case ast.OpMul:
		return BMul
	case ast.OpDiv:
		return BDiv
	case ast.OpMod:
		return BMod
	case ast.OpEq:
		return BEq
	case ast.OpNotEq:
		return BNotEq
	case ast.OpLt:
		return BLt
	case ast.OpLtEq:
		return BLtEq
	case ast.OpGt:
		return BGt
	case ast.OpGtEq:
		return BGtEq
	case ast.OpAnd:
		return BAnd
	default:
		return BOr
	}
}

func convertUnOp(op ast.UnaryOp) UnOp {
	if op == ast.OpNot {
		return UNot
	}
	return UNeg
}

func (e *emitter) convertType(t semtypes.Type) Type {
	switch t.Kind {
	case semtypes.Int:
		return Type{Kind: TInt}
	case semtypes.Float:
		return Type{Kind: TFloat}
	case semtypes.String:
		return Type{Kind: TString}
	case semtypes.Bool:
		return Type{Kind: TBool}
	case semtypes.Nil:
		return Type{Kind: TNil}
	case semtypes.Never:
		return Type{Kind: TNever}
	case semtypes.Nominal:
		pkgPath := e.pkgPath
		if t.Nominal.Package != e.checker.Package() {
			pkgPath = "workspace#" + strconv.FormatUint(uint64(t.Nominal.Package), 10)
		}
		return Type{Kind: TNominal, Nominal: TypeRef{PackagePath: pkgPath, SymbolName: t.Nominal.Name}}
	case semtypes.List:
		elem := e.convertType(*t.Element)
		return Type{Kind: TList, Element: &elem}
	case semtypes.Optional:
		elem := e.convertType(*t.Element)
		return Type{Kind: TOptional, Element: &elem}
	case semtypes.Function:
		params := make([]Type, len(t.Params))
		for i, p := range t.Params {
			params[i] = e.convertType(p)
		}
		var result *Type
		if t.Result != nil {
			r := e.convertType(*t.Result)
			result = &r
		}
		return Type{Kind: TFunction, Params: params, Result: result}
	case semtypes.Union:
		members := make([]Type, len(t.Members))
		for i, m := range t.Members {
			members[i] = e.convertType(m)
		}
		return Type{Kind: TUnion, Members: members}
	default:
		return Type{Kind: TNil}
	}
}
