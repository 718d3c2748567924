package rules

import (
	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/source"
)

// CheckImportOrder requires `import` declarations to be grouped together
// at the top of the file, before any other declaration kind (excluding
// doc comments, which attach to whatever declaration follows them).
func CheckImportOrder(file *ast.File, bag *diag.Bag) {
	seenNonImport := false
	for _, declID := range file.Decls {
		d := file.DeclArena.Get(declID)
		if d.Kind == ast.DeclImport {
			if seenNonImport {
				bag.Add(diag.New(diag.PhaseRules, diag.CodeRuleImportOrder, diag.Error, d.Span,
					"imports must appear before all other declarations"))
			}
			continue
		}
		seenNonImport = true
	}
}

// CheckDocCommentPlacement requires a doc-comment block to be immediately
// followed, on the very next source line, by the declaration or member it
// documents. A blank line (or anything else) between the comment and what
// follows leaves it dangling, diagnosed at the comment itself. A doc
// comment trailing at end of file attaches to no declaration, so it is
// reported by the parser rather than here.
func CheckDocCommentPlacement(file *ast.File, bag *diag.Bag) {
	for _, declID := range file.Decls {
		walkDeclForDocPlacement(file, declID, bag)
	}
}

func walkDeclForDocPlacement(file *ast.File, declID ast.DeclID, bag *diag.Bag) {
	d := file.DeclArena.Get(declID)
	checkDocAdjacency(d.Doc, d.DocSpan, d.Span, bag)

	for _, f := range d.Fields {
		checkDocAdjacency(f.Doc, f.DocSpan, f.Span, bag)
	}
	for _, m := range d.StructMethods {
		checkDocAdjacency(m.Doc, m.DocSpan, m.Span, bag)
	}
	for _, v := range d.Variants {
		for _, f := range v.Fields {
			checkDocAdjacency(f.Doc, f.DocSpan, f.Span, bag)
		}
	}
	for _, testID := range d.GroupTests {
		walkDeclForDocPlacement(file, testID, bag)
	}
}

// checkDocAdjacency diagnoses doc (spanning docSpan) when it isn't
// immediately followed, on the next source line, by the thing it documents
// (spanning itemSpan).
func checkDocAdjacency(doc string, docSpan, itemSpan source.Span, bag *diag.Bag) {
	if doc == "" {
		return
	}
	if itemSpan.StartLine == docSpan.EndLine+1 {
		return
	}
	bag.Add(diag.New(diag.PhaseRules, diag.CodeRuleDocCommentMisplaced, diag.Error, docSpan,
		"doc comment must be immediately followed by the declaration it documents"))
}
