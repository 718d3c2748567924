package check

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"lumen/internal/diag"
)

func writeWorkspace(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return root
}

func TestCheckWorkspace_CleanLibrary(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"lumen.toml": "[project]\nname = \"demo\"\n",
		"math.lum":   "fn add(a: int, b: int) -> int {\n return a + b\n}\n",
	})

	result, failure := CheckWorkspace(context.Background(), root, 4)
	if failure != nil {
		t.Fatalf("unexpected failure: %+v", failure)
	}
	if !result.Ok() {
		t.Fatalf("expected no errors, got: %+v", result.Diagnostics)
	}
}

func TestCheckWorkspace_TypeErrorReported(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"lumen.toml": "[project]\nname = \"demo\"\n",
		"bad.lum":    "fn broken() -> int {\n return true\n}\n",
	})

	result, failure := CheckWorkspace(context.Background(), root, 2)
	if failure != nil {
		t.Fatalf("unexpected failure: %+v", failure)
	}
	if result.Ok() {
		t.Fatalf("expected a type error, got none")
	}
}

func TestCheckWorkspace_MissingManifestIsFailure(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"math.lum": "fn add(a: int, b: int) -> int {\n return a + b\n}\n",
	})

	_, failure := CheckWorkspace(context.Background(), root, 2)
	if failure == nil {
		t.Fatalf("expected a failure for a workspace with no lumen.toml")
	}
	if failure.Kind != diag.FailureWorkspaceRootMissingManifest {
		t.Fatalf("expected FailureWorkspaceRootMissingManifest, got %v", failure.Kind)
	}
}

func TestCheckTarget_UnknownPackageIsFailure(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"lumen.toml": "[project]\nname = \"demo\"\n",
		"math.lum":   "fn add(a: int, b: int) -> int {\n return a + b\n}\n",
	})

	_, failure := CheckTarget(context.Background(), root, "nowhere", 2)
	if failure == nil || failure.Kind != diag.FailurePackageNotFound {
		t.Fatalf("expected FailurePackageNotFound, got %+v", failure)
	}
}

func TestCheckWorkspace_BinaryEmitsProgram(t *testing.T) {
	root := writeWorkspace(t, map[string]string{
		"lumen.toml": "[project]\nname = \"demo\"\n",
		"main.bin.lum": "fn main() {\n print(\"hi\")\n}\n",
	})

	result, failure := CheckWorkspace(context.Background(), root, 2)
	if failure != nil {
		t.Fatalf("unexpected failure: %+v", failure)
	}
	if !result.Ok() {
		t.Fatalf("expected no errors, got: %+v", result.Diagnostics)
	}
	if len(result.Programs) != 1 {
		t.Fatalf("expected one emitted program, got %d", len(result.Programs))
	}
}
