package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, rel, contents string) {
	t.Helper()
	p := filepath.Join(dir, rel)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(p, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDiscover_NearestAncestorManifest(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "PACKAGE.lum", "exports {}\n")
	writeFile(t, dir, "root.lum", "let x = 1\n")
	writeFile(t, dir, "lib/collections/PACKAGE.lum", "exports {}\n")
	writeFile(t, dir, "lib/collections/list.lum", "let y = 2\n")
	writeFile(t, dir, "lib/collections/nested/helper.lum", "let z = 3\n")

	ws, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(ws.Packages) != 2 {
		t.Fatalf("want 2 packages, got %d: %+v", len(ws.Packages), ws.Packages)
	}

	nested := ws.Files.File(0)
	for _, f := range ws.Files.All() {
		if f.Path == "lib/collections/nested/helper.lum" {
			nested = &f
		}
	}
	owner := ws.PackageOf(nested.ID)
	if owner.Path != "workspace/lib/collections" {
		t.Fatalf("nested file should be owned by collections package, got %q", owner.Path)
	}
}

func TestDiscover_DeterministicFileIDs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "PACKAGE.lum", "exports {}\n")
	writeFile(t, dir, "a.lum", "")
	writeFile(t, dir, "b.lum", "")

	ws1, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	ws2, err := Discover(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(ws1.Files.All()) != len(ws2.Files.All()) {
		t.Fatal("file counts differ across runs")
	}
	for i := range ws1.Files.All() {
		if ws1.Files.All()[i].Path != ws2.Files.All()[i].Path {
			t.Fatalf("file order differs at %d: %q vs %q", i, ws1.Files.All()[i].Path, ws2.Files.All()[i].Path)
		}
	}
}

func TestDiscover_SkipsDanglingSymlink(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "PACKAGE.lum", "exports {}\n")
	if err := os.Symlink(filepath.Join(dir, "missing.lum"), filepath.Join(dir, "dangling.lum")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	ws, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover should tolerate dangling symlinks: %v", err)
	}
	for _, f := range ws.Files.All() {
		if f.Path == "dangling.lum" {
			t.Fatal("dangling symlink should have been skipped")
		}
	}
}
