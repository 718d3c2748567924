package workspace

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"lumen/internal/source"
)

// Discover walks root and assigns deterministic FileIDs/PackageIDs to every
// lumen source file found under it. Ownership follows nearest-ancestor
// manifest: a file belongs to the package rooted at the closest directory
// (itself or an ancestor) that contains a PACKAGE.lum manifest, or to the
// workspace root package if no ancestor has one. Directory entries are
// visited in lexicographic order at each level, which fs.WalkDir already
// guarantees, so two discovery runs over identical input always produce
// identical IDs.
func Discover(root string) (*Workspace, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, &Error{Kind: ErrFilesystem, Path: root, Message: fmt.Sprintf("workspace: resolve root %q: %v", root, err)}
	}

	manifestDirs := map[string]bool{}
	var sourcePaths []string

	walkErr := filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				// Dangling symlink target: skip, not fatal.
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, infoErr := d.Info()
		if infoErr != nil {
			if os.IsNotExist(infoErr) {
				return nil
			}
			return infoErr
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			if _, statErr := os.Stat(p); statErr != nil {
				if os.IsNotExist(statErr) {
					return nil
				}
				return statErr
			}
		}

		rel, relErr := filepath.Rel(absRoot, p)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)
		base := path.Base(rel)

		if source.IsManifest(base) {
			manifestDirs[path.Dir(rel)] = true
			sourcePaths = append(sourcePaths, rel)
			return nil
		}
		if _, ok := source.RoleFromPath(base); ok {
			sourcePaths = append(sourcePaths, rel)
		}
		return nil
	})
	if walkErr != nil {
		return nil, &Error{Kind: ErrFilesystem, Path: root, Message: fmt.Sprintf("workspace: walk %q: %v", root, walkErr)}
	}

	sort.Slice(sourcePaths, func(i, j int) bool {
		return source.ComparePaths(sourcePaths[i], sourcePaths[j]) < 0
	})

	// Assign package directories in sorted order: every manifest directory,
	// plus "." (the workspace root) to own files with no manifest ancestor.
	pkgDirs := make([]string, 0, len(manifestDirs)+1)
	pkgDirs = append(pkgDirs, ".")
	for dir := range manifestDirs {
		if dir != "." {
			pkgDirs = append(pkgDirs, dir)
		}
	}
	sort.Slice(pkgDirs, func(i, j int) bool { return source.ComparePaths(pkgDirs[i], pkgDirs[j]) < 0 })

	pkgIndex := make(map[string]source.PackageID, len(pkgDirs))
	packages := make([]Package, len(pkgDirs))
	for i, dir := range pkgDirs {
		pkgIndex[dir] = source.PackageID(i)
		packages[i] = Package{
			ID:           source.PackageID(i),
			Path:         packagePathFromDir(dir),
			Dir:          dir,
			ManifestFile: source.FileID(^uint32(0)),
			HasManifest:  dir != "." && manifestDirs[dir],
		}
	}

	files := source.NewSet()
	for _, rel := range sourcePaths {
		dir := path.Dir(rel)
		if dir == "." && rel == "." {
			continue
		}
		owner := nearestPackageDir(dir, manifestDirs)
		pkgID, ok := pkgIndex[owner]
		if !ok {
			return nil, &Error{Kind: ErrFilesystem, Path: rel, Message: fmt.Sprintf("workspace: no owning package found for %q", rel)}
		}

		base := path.Base(rel)
		isManifest := source.IsManifest(base)
		role := source.RoleLibrary
		if !isManifest {
			r, _ := source.RoleFromPath(base)
			role = r
		}

		abs := filepath.Join(absRoot, filepath.FromSlash(rel))
		text, readErr := os.ReadFile(abs)
		if readErr != nil {
			return nil, &Error{Kind: ErrFilesystem, Path: rel, Message: fmt.Sprintf("workspace: read %q: %v", rel, readErr)}
		}

		id := files.Add(rel, pkgID, role, string(text))
		packages[pkgID].Files = append(packages[pkgID].Files, id)
		if isManifest {
			packages[pkgID].ManifestFile = id
		}
	}

	// Duplicate package path check: two distinct directories that collapse
	// to the same workspace-relative package path (only possible when a
	// symlinked directory re-exposes another package's path).
	seenPaths := map[string]string{}
	for _, p := range packages {
		if prev, ok := seenPaths[p.Path]; ok && prev != p.Dir {
			return nil, &Error{
				Kind:    ErrDuplicatePackagePath,
				Path:    prev,
				Path2:   p.Dir,
				Message: fmt.Sprintf("workspace: duplicate package path %q at %q and %q", p.Path, prev, p.Dir),
			}
		}
		seenPaths[p.Path] = p.Dir
	}

	return &Workspace{Root: absRoot, Files: files, Packages: packages}, nil
}

// nearestPackageDir walks dir upward until it finds a directory that owns a
// manifest, returning "." if none does.
func nearestPackageDir(dir string, manifestDirs map[string]bool) string {
	for {
		if dir == "." || dir == "" {
			return "."
		}
		if manifestDirs[dir] {
			return dir
		}
		parent := path.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}

func packagePathFromDir(dir string) string {
	if dir == "." {
		return "workspace"
	}
	return "workspace/" + dir
}
