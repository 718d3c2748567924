package parser

import (
	"lumen/internal/ast"
	"lumen/internal/source"
	"lumen/internal/token"
)

func (p *Parser) parseDecl() ast.DeclID {
	doc, docSpan := p.consumeDocComment()

	public := false
	if _, ok := p.accept(token.KwPublic); ok {
		public = true
	}

	var id ast.DeclID
	switch p.cur().Kind {
	case token.KwImport:
		id = p.parseImport()
	case token.KwExports:
		id = p.parseExports()
	case token.KwFn:
		id = p.parseFunction(doc, public)
	case token.KwStruct:
		id = p.parseStruct(doc, public)
	case token.KwEnum:
		id = p.parseEnum(doc, public)
	case token.KwInterface:
		id = p.parseInterface(doc, public)
	case token.KwUnion:
		id = p.parseUnionDecl(doc, public)
	case token.KwType:
		id = p.parseTypeAlias(doc, public)
	case token.KwTest:
		id = p.parseTest()
	case token.KwGroup:
		id = p.parseGroup()
	default:
		p.unexpected("a declaration")
		p.synchronizeDecl()
		return ast.NoDecl
	}

	if doc != "" && id != ast.NoDecl {
		d := p.file.DeclArena.Get(id)
		d.Doc = doc
		d.DocSpan = docSpan
	}
	return id
}

// consumeDocComment gathers zero or more consecutive DocComment tokens (and
// the terminators between them) into a single text blob immediately
// preceding the next declaration, along with the span covering the whole
// comment block (from the first DocComment token to the last).
func (p *Parser) consumeDocComment() (string, source.Span) {
	var text string
	var span source.Span
	for {
		if p.at(token.DocComment) {
			tok := p.advance()
			if text == "" {
				span = tok.Span
			} else {
				text += "\n"
				span = span.Join(tok.Span)
			}
			text += tok.Text
			p.skipTerminators()
			continue
		}
		return text, span
	}
}

func (p *Parser) parseImport() ast.DeclID {
	start := p.cur().Span
	p.advance() // 'import'
	pathTok := p.expect(token.Identifier)
	path := pathTok.Text
	for {
		if _, ok := p.accept(token.Colon2); ok {
			seg := p.expect(token.Identifier)
			path += "::" + seg.Text
			continue
		}
		break
	}

	var bindings []ast.ImportBinding
	p.expect(token.LBrace)
	for !p.at(token.RBrace) && !p.atEOF() {
		nameTok := p.expect(token.Identifier)
		alias := nameTok.Text
		if _, ok := p.accept(token.KwAs); ok {
			aliasTok := p.expect(token.Identifier)
			alias = aliasTok.Text
		}
		bindings = append(bindings, ast.ImportBinding{Name: nameTok.Text, Alias: alias, Span: nameTok.Span})
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	end := p.expect(token.RBrace)

	return p.file.DeclArena.Add(ast.Decl{
		Span:        start.Join(end.Span),
		Kind:        ast.DeclImport,
		PackagePath: path,
		Bindings:    bindings,
	})
}

func (p *Parser) parseExports() ast.DeclID {
	start := p.cur().Span
	p.advance() // 'exports'
	var names []string
	p.expect(token.LBrace)
	for !p.at(token.RBrace) && !p.atEOF() {
		nameTok := p.expect(token.Identifier)
		names = append(names, nameTok.Text)
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	end := p.expect(token.RBrace)
	return p.file.DeclArena.Add(ast.Decl{
		Span:     start.Join(end.Span),
		Kind:     ast.DeclExports,
		Exported: names,
	})
}

func (p *Parser) parseTypeParams() []ast.TypeParam {
	if _, ok := p.accept(token.LBracket); !ok {
		return nil
	}
	var params []ast.TypeParam
	for !p.at(token.RBracket) && !p.atEOF() {
		nameTok := p.expect(token.Identifier)
		bound := ast.NoType
		if _, ok := p.accept(token.KwImplements); ok {
			bound = p.parseType()
		}
		params = append(params, ast.TypeParam{Name: nameTok.Text, Bound: bound})
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RBracket)
	return params
}

func (p *Parser) parseFunction(doc string, public bool) ast.DeclID {
	start := p.cur().Span
	p.advance() // 'fn'
	nameTok := p.expect(token.Identifier)
	typeParams := p.parseTypeParams()

	p.expect(token.LParen)
	var params []ast.Param
	for !p.at(token.RParen) && !p.atEOF() {
		pNameTok := p.expect(token.Identifier)
		p.expect(token.Colon)
		annotation := p.parseType()
		params = append(params, ast.Param{Name: pNameTok.Text, Annotation: annotation, Span: pNameTok.Span})
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
	}
	p.expect(token.RParen)

	result := ast.NoType
	if _, ok := p.accept(token.Arrow); ok {
		result = p.parseType()
	}

	body := p.parseBlock()

	return p.file.DeclArena.Add(ast.Decl{
		Span:       start.Join(p.file.Stmts.Get(body).Span),
		Kind:       ast.DeclFunction,
		Name:       nameTok.Text,
		Doc:        doc,
		Public:     public,
		TypeParams: typeParams,
		Params:     params,
		Result:     result,
		Body:       body,
	})
}

func (p *Parser) parseStructFieldList() []ast.StructField {
	var fields []ast.StructField
	p.expect(token.LBrace)
	for !p.at(token.RBrace) && !p.atEOF() {
		fieldDoc, fieldDocSpan := p.consumeDocComment()
		nameTok := p.expect(token.Identifier)
		p.expect(token.Colon)
		annotation := p.parseType()
		fields = append(fields, ast.StructField{Name: nameTok.Text, Annotation: annotation, Doc: fieldDoc, DocSpan: fieldDocSpan, Span: nameTok.Span})
		if _, ok := p.accept(token.Comma); !ok {
			p.skipTerminators()
		}
	}
	p.expect(token.RBrace)
	return fields
}

func (p *Parser) parseStruct(doc string, public bool) ast.DeclID {
	start := p.cur().Span
	p.advance() // 'struct'
	nameTok := p.expect(token.Identifier)
	typeParams := p.parseTypeParams()
	fields, methods := p.parseStructBody()
	return p.file.DeclArena.Add(ast.Decl{
		Span:          start,
		Kind:          ast.DeclStruct,
		Name:          nameTok.Text,
		Doc:           doc,
		Public:        public,
		TypeParams:    typeParams,
		Fields:        fields,
		StructMethods: methods,
	})
}

// parseStructBody parses a struct's `{ ... }` body, where fields and `fn`
// methods may be interleaved in any order.
func (p *Parser) parseStructBody() ([]ast.StructField, []ast.StructMethod) {
	var fields []ast.StructField
	var methods []ast.StructMethod
	p.expect(token.LBrace)
	for !p.at(token.RBrace) && !p.atEOF() {
		doc, docSpan := p.consumeDocComment()
		if p.at(token.KwFn) {
			methods = append(methods, p.parseStructMethod(doc, docSpan))
			p.skipTerminators()
			continue
		}
		nameTok := p.expect(token.Identifier)
		p.expect(token.Colon)
		annotation := p.parseType()
		fields = append(fields, ast.StructField{Name: nameTok.Text, Annotation: annotation, Doc: doc, DocSpan: docSpan, Span: nameTok.Span})
		if _, ok := p.accept(token.Comma); !ok {
			p.skipTerminators()
		}
	}
	p.expect(token.RBrace)
	return fields, methods
}

// parseStructMethod parses one `fn` member of a struct body: its first
// parameter must be the implicit receiver, written `self` or `mut self`
// with no type annotation.
func (p *Parser) parseStructMethod(doc string, docSpan source.Span) ast.StructMethod {
	start := p.cur().Span
	p.advance() // 'fn'
	nameTok := p.expect(token.Identifier)
	typeParams := p.parseTypeParams()

	p.expect(token.LParen)
	mut := false
	if _, ok := p.accept(token.KwMut); ok {
		mut = true
	}
	p.expect(token.KwSelf)
	var params []ast.Param
	for {
		if _, ok := p.accept(token.Comma); !ok {
			break
		}
		pNameTok := p.expect(token.Identifier)
		p.expect(token.Colon)
		annotation := p.parseType()
		params = append(params, ast.Param{Name: pNameTok.Text, Annotation: annotation, Span: pNameTok.Span})
	}
	p.expect(token.RParen)

	result := ast.NoType
	if _, ok := p.accept(token.Arrow); ok {
		result = p.parseType()
	}

	body := p.parseBlock()

	return ast.StructMethod{
		Name:       nameTok.Text,
		Mut:        mut,
		TypeParams: typeParams,
		Params:     params,
		Result:     result,
		Body:       body,
		Doc:        doc,
		DocSpan:    docSpan,
		Span:       start.Join(p.file.Stmts.Get(body).Span),
	}
}

func (p *Parser) parseEnum(doc string, public bool) ast.DeclID {
	start := p.cur().Span
	p.advance() // 'enum'
	nameTok := p.expect(token.Identifier)
	typeParams := p.parseTypeParams()

	var variants []ast.EnumVariant
	p.expect(token.LBrace)
	for !p.at(token.RBrace) && !p.atEOF() {
		vNameTok := p.expect(token.Identifier)
		var fields []ast.StructField
		if p.at(token.LBrace) {
			fields = p.parseStructFieldList()
		}
		variants = append(variants, ast.EnumVariant{Name: vNameTok.Text, Fields: fields, Span: vNameTok.Span})
		if _, ok := p.accept(token.Comma); !ok {
			p.skipTerminators()
		}
	}
	p.expect(token.RBrace)

	return p.file.DeclArena.Add(ast.Decl{
		Span:       start,
		Kind:       ast.DeclEnum,
		Name:       nameTok.Text,
		Doc:        doc,
		Public:     public,
		TypeParams: typeParams,
		Variants:   variants,
	})
}

func (p *Parser) parseInterface(doc string, public bool) ast.DeclID {
	start := p.cur().Span
	p.advance() // 'interface'
	nameTok := p.expect(token.Identifier)
	typeParams := p.parseTypeParams()

	var methods []ast.InterfaceMethod
	p.expect(token.LBrace)
	for !p.at(token.RBrace) && !p.atEOF() {
		p.expect(token.KwFn)
		mNameTok := p.expect(token.Identifier)
		p.expect(token.LParen)
		var params []ast.Param
		for !p.at(token.RParen) && !p.atEOF() {
			pNameTok := p.expect(token.Identifier)
			p.expect(token.Colon)
			annotation := p.parseType()
			params = append(params, ast.Param{Name: pNameTok.Text, Annotation: annotation, Span: pNameTok.Span})
			if _, ok := p.accept(token.Comma); !ok {
				break
			}
		}
		p.expect(token.RParen)
		result := ast.NoType
		if _, ok := p.accept(token.Arrow); ok {
			result = p.parseType()
		}
		methods = append(methods, ast.InterfaceMethod{Name: mNameTok.Text, Params: params, Result: result, Span: mNameTok.Span})
		p.skipTerminators()
	}
	p.expect(token.RBrace)

	return p.file.DeclArena.Add(ast.Decl{
		Span:       start,
		Kind:       ast.DeclInterface,
		Name:       nameTok.Text,
		Doc:        doc,
		Public:     public,
		TypeParams: typeParams,
		Methods:    methods,
	})
}

func (p *Parser) parseUnionDecl(doc string, public bool) ast.DeclID {
	start := p.cur().Span
	p.advance() // 'union'
	nameTok := p.expect(token.Identifier)
	typeParams := p.parseTypeParams()
	p.expect(token.Assign)

	var members []ast.TypeID
	members = append(members, p.parseTypePrimary())
	for {
		if _, ok := p.accept(token.Pipe); !ok {
			break
		}
		members = append(members, p.parseTypePrimary())
	}
	return p.file.DeclArena.Add(ast.Decl{
		Span:       start,
		Kind:       ast.DeclUnion,
		Name:       nameTok.Text,
		Doc:        doc,
		Public:     public,
		TypeParams: typeParams,
		Members:    members,
	})
}

func (p *Parser) parseTypeAlias(doc string, public bool) ast.DeclID {
	start := p.cur().Span
	p.advance() // 'type'
	nameTok := p.expect(token.Identifier)
	typeParams := p.parseTypeParams()
	p.expect(token.Assign)
	aliased := p.parseType()
	return p.file.DeclArena.Add(ast.Decl{
		Span:       start,
		Kind:       ast.DeclTypeAlias,
		Name:       nameTok.Text,
		Doc:        doc,
		Public:     public,
		TypeParams: typeParams,
		Aliased:    aliased,
	})
}

func (p *Parser) parseTest() ast.DeclID {
	start := p.cur().Span
	p.advance() // 'test'
	nameTok := p.expect(token.StringLiteral)
	body := p.parseBlock()
	return p.file.DeclArena.Add(ast.Decl{
		Span:     start,
		Kind:     ast.DeclTest,
		Name:     nameTok.Text,
		TestBody: body,
	})
}

func (p *Parser) parseGroup() ast.DeclID {
	start := p.cur().Span
	p.advance() // 'group'
	nameTok := p.expect(token.StringLiteral)
	p.expect(token.LBrace)
	var tests []ast.DeclID
	for !p.at(token.RBrace) && !p.atEOF() {
		p.skipTerminators()
		if p.at(token.RBrace) {
			break
		}
		if p.at(token.KwTest) {
			tests = append(tests, p.parseTest())
		} else {
			p.unexpected("a test inside a group")
			p.synchronizeDecl()
		}
		p.skipTerminators()
	}
	p.expect(token.RBrace)
	return p.file.DeclArena.Add(ast.Decl{
		Span:       start,
		Kind:       ast.DeclGroup,
		Name:       nameTok.Text,
		GroupTests: tests,
	})
}
