package diag

// Code is a stable numeric diagnostic identifier. Ranges are partitioned by
// phase in blocks of 100 so the code alone locates the phase that raised
// it, the way the teacher's own diag package partitions codes by subsystem.
type Code uint16

const (
	CodeWorkspaceDuplicateManifest     Code = 100
	CodeWorkspaceDuplicatePackagePath  Code = 101

	CodeLexInvalidToken Code = 200

	CodeParseUnexpectedToken  Code = 300
	CodeParseMissingToken     Code = 301
	CodeParseInvalidConstruct Code = 302
	CodeParseUnparsableToken  Code = 303

	CodeSymbolDuplicateDeclaration Code = 400

	CodeExportsDuplicate  Code = 500
	CodeExportsUndeclared Code = 501
	CodeExportsNotPublic  Code = 502

	CodeImportUnknownPackage Code = 600
	CodeImportUnknownBinding Code = 601
	CodeImportNameCollision  Code = 602

	CodeCycleDetected Code = 700

	CodeRuleManifestExportsOnly   Code = 800
	CodeRuleVisibleDeclInNonLib   Code = 801
	CodeRuleMainMisplaced         Code = 802
	CodeRuleMainBadSignature      Code = 803
	CodeRuleImportOrder           Code = 804
	CodeRuleDocCommentMisplaced   Code = 805

	CodeTypeMismatch          Code = 900
	CodeTypeUnknownName       Code = 901
	CodeTypeUnreachableCode   Code = 902
	CodeTypeUnusedBinding     Code = 903
	CodeTypeNonExhaustiveMatch Code = 904
)
