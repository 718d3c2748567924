package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestFindProjectManifest_WalksUpToRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, ManifestName), []byte("[project]\nname=\"x\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path, ok, err := FindProjectManifest(nested)
	if err != nil || !ok {
		t.Fatalf("want found, got ok=%v err=%v", ok, err)
	}
	if filepath.Dir(path) != root {
		t.Fatalf("want manifest under %s, got %s", root, path)
	}
}

func TestFindProjectManifest_NotFound(t *testing.T) {
	_, ok, err := FindProjectManifest(t.TempDir())
	if err != nil || ok {
		t.Fatalf("want not found, got ok=%v err=%v", ok, err)
	}
}

func TestLoadManifest_ParsesFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	content := "[project]\nname = \"demo\"\ndefault_binary = \"workspace/cmd/server\"\nstrict_rules = true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Name != "demo" || m.DefaultBinary != "workspace/cmd/server" || !m.StrictRules {
		t.Fatalf("unexpected manifest: %+v", m)
	}
}

func TestLoadManifest_MissingProjectSection(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte("[other]\nk=1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := LoadManifest(path)
	if !errors.Is(err, ErrProjectSectionMissing) {
		t.Fatalf("want ErrProjectSectionMissing, got %v", err)
	}
}
