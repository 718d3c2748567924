package source

import "strings"

// Role classifies a source file by its filename suffix. The role governs
// which file-role policy rules (internal/rules) apply to it.
type Role uint8

const (
	// RoleLibrary is the default role for plain "name.lum" files: they may
	// declare exported symbols and are visible to every file in the package.
	RoleLibrary Role = iota
	// RoleBinary marks "name.bin.lum" entry-point files: they must declare
	// exactly one "main" function and may not declare exported symbols.
	RoleBinary
	// RoleTest marks "name.test.lum" files: they may declare test/group
	// declarations and may not declare exported symbols.
	RoleTest
)

// Extension is the file extension lumen source files are discovered under.
const Extension = ".lum"

const (
	binarySuffix = ".bin" + Extension
	testSuffix   = ".test" + Extension
)

// String renders the role name used in diagnostics.
func (r Role) String() string {
	switch r {
	case RoleBinary:
		return "binary"
	case RoleTest:
		return "test"
	default:
		return "library"
	}
}

// RoleFromPath derives a file's Role from its filename suffix. ok is false
// when the path does not carry the lumen source extension at all, meaning
// the caller should not treat it as a source file.
func RoleFromPath(path string) (role Role, ok bool) {
	switch {
	case strings.HasSuffix(path, binarySuffix):
		return RoleBinary, true
	case strings.HasSuffix(path, testSuffix):
		return RoleTest, true
	case strings.HasSuffix(path, Extension):
		return RoleLibrary, true
	default:
		return RoleLibrary, false
	}
}

// IsManifest reports whether base (a file base name, no directory
// components) is the package manifest file name.
func IsManifest(base string) bool {
	return base == "PACKAGE"+Extension
}
