package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// ErrProjectSectionMissing indicates that [project] is missing from a
// manifest that was successfully parsed as TOML.
var ErrProjectSectionMissing = errors.New("missing [project]")

// Manifest is the decoded `[project]` table of a lumen.toml file.
type Manifest struct {
	// Name is the project's display name; informational only.
	Name string
	// DefaultBinary is the workspace-relative package path of the binary
	// target `lumen lower` builds when no target is named explicitly on the
	// command line (e.g. "cmd/server").
	DefaultBinary string
	// StrictRules is decoded from strict_rules; no phase reads it, and
	// internal/rules reports its diagnostics as errors regardless.
	StrictRules bool
}

type manifestFile struct {
	Project struct {
		Name          string `toml:"name"`
		DefaultBinary string `toml:"default_binary"`
		StrictRules   bool   `toml:"strict_rules"`
	} `toml:"project"`
}

// LoadManifest parses a project's lumen.toml. A file with no [project]
// table parses successfully but reports ErrProjectSectionMissing, so a
// caller can choose to fall back to defaults instead of failing.
func LoadManifest(path string) (Manifest, error) {
	var raw manifestFile
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("project") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrProjectSectionMissing)
	}
	return Manifest{
		Name:          strings.TrimSpace(raw.Project.Name),
		DefaultBinary: strings.TrimSpace(raw.Project.DefaultBinary),
		StrictRules:   raw.Project.StrictRules,
	}, nil
}
