// Package rules enforces lumen's file-role policies (what a binary, test,
// or library file may declare) and its import-ordering / doc-comment
// placement syntax conventions.
package rules

import (
	"lumen/internal/ast"
	"lumen/internal/diag"
	"lumen/internal/source"
)

// CheckFileRole enforces the declaration-shape rules tied to a file's role:
//   - Only a PACKAGE.lum manifest file may declare `exports {}`.
//   - Binary and test files may not declare `public` symbols: a binary's
//     purpose is to run, not to be imported, and a test file's declarations
//     exist only to drive its own tests.
//   - A `.bin.lum` file must declare exactly one top-level `fn main()`, and
//     it must take no parameters and must return nil — each violated
//     independently, so a main that both takes a parameter and returns a
//     value produces two diagnostics, not one.
//   - `main` may only be declared in a `.bin.lum` file; one declared in a
//     library, test, or manifest file is diagnosed regardless of its
//     signature.
func CheckFileRole(file *ast.File, role source.Role, isManifest bool, bag *diag.Bag) {
	var mains []*ast.Decl
	for _, declID := range file.Decls {
		d := file.DeclArena.Get(declID)

		if d.Kind == ast.DeclExports && !isManifest {
			bag.Add(diag.New(diag.PhaseRules, diag.CodeRuleManifestExportsOnly, diag.Error, d.Span,
				"'exports' may only appear in a package's PACKAGE.lum manifest"))
		}

		if d.Public && (role == source.RoleBinary || role == source.RoleTest) {
			bag.Add(diag.New(diag.PhaseRules, diag.CodeRuleVisibleDeclInNonLib, diag.Error, d.Span,
				"a "+role.String()+" file may not declare 'public' symbols"))
		}

		if d.Kind != ast.DeclFunction || d.Name != "main" {
			continue
		}

		if role != source.RoleBinary {
			bag.Add(diag.New(diag.PhaseRules, diag.CodeRuleMainMisplaced, diag.Error, d.Span,
				"main is only allowed in .bin.* files"))
			continue
		}

		mains = append(mains, d)
	}

	if role != source.RoleBinary {
		return
	}

	if len(mains) == 0 {
		bag.Add(diag.New(diag.PhaseRules, diag.CodeRuleMainMisplaced, diag.Error, source.Span{File: file.ID},
			"a binary file must declare exactly one main function"))
		return
	}

	if len(mains) > 1 {
		for _, d := range mains {
			bag.Add(diag.New(diag.PhaseRules, diag.CodeRuleMainMisplaced, diag.Error, d.Span,
				"a binary file must declare exactly one main function"))
		}
	}

	for _, d := range mains {
		if len(d.Params) != 0 {
			bag.Add(diag.New(diag.PhaseRules, diag.CodeRuleMainBadSignature, diag.Error, d.Span,
				"'main' must not declare parameters"))
		}
		if d.Result != ast.NoType {
			bag.Add(diag.New(diag.PhaseRules, diag.CodeRuleMainBadSignature, diag.Error, d.Span,
				"'main' must return nil"))
		}
	}
}
