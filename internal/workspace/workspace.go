// Package workspace discovers the packages and source files that make up a
// lumen workspace by walking its directory tree.
package workspace

import "lumen/internal/source"

// Package is one discovered package: a directory owning a PACKAGE.lum
// manifest (or, for the workspace root package, owning no manifest of its
// own ancestor) plus the source files nested under it up to the next
// manifest boundary.
type Package struct {
	ID   source.PackageID
	Path string // workspace-relative package path, e.g. "workspace/lib/collections"
	Dir  string // filesystem-relative directory
	// ManifestFile is the FileID of the owning PACKAGE.lum file, or -1 if
	// this package has no manifest (only the synthetic root package, when
	// no manifest exists anywhere above it, may lack one).
	ManifestFile source.FileID
	HasManifest  bool
	Files        []source.FileID
}

// Workspace is the result of a successful discovery walk: every package and
// file assigned a stable ID in deterministic walk order.
type Workspace struct {
	Root     string
	Files    *source.Set
	Packages []Package
}

// PackageOf returns the package owning the given file.
func (w *Workspace) PackageOf(id source.FileID) *Package {
	f := w.Files.File(id)
	return &w.Packages[f.Package]
}

// ErrorKind classifies a discovery failure. Discovery failures are
// unrecoverable compiler failures, not per-location diagnostics: a
// workspace whose shape can't be determined can't be checked at all.
type ErrorKind uint8

const (
	// ErrDuplicateManifest: two manifests claim the same package directory
	// (can only happen via symlink aliasing, since a directory has at most
	// one direct PACKAGE.lum).
	ErrDuplicateManifest ErrorKind = iota
	// ErrDuplicatePackagePath: two distinct directories resolve to the same
	// workspace-relative package path.
	ErrDuplicatePackagePath
	// ErrFilesystem: the directory walk failed for a reason other than a
	// dangling symlink (dangling symlinks are skipped, not fatal).
	ErrFilesystem
)

// Error reports a discovery failure.
type Error struct {
	Kind    ErrorKind
	Path    string
	Path2   string // second conflicting path, for duplicate errors
	Message string
}

func (e *Error) Error() string {
	return e.Message
}
