package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"lumen/internal/check"
	"lumen/internal/diag"
	"lumen/internal/project"
	"lumen/internal/program"
)

var lowerOut string

func init() {
	lowerCmd.Flags().StringVar(&lowerOut, "out", "", "output path for the serialized program (default: <target>.lumir)")
	lowerCmd.Flags().StringVar(&checkTarget, "target", "", "binary package path to lower (default: lumen.toml's default_binary)")
}

var lowerCmd = &cobra.Command{
	Use:   "lower [path] [--target=pkg/path]",
	Short: "Check a binary target and serialize its executable program",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runLower,
}

func runLower(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	target := checkTarget
	if target == "" {
		manifestPath, found, err := project.FindProjectManifest(root)
		if err != nil {
			return fmt.Errorf("failed to locate %s: %w", project.ManifestName, err)
		}
		if found {
			manifest, err := project.LoadManifest(manifestPath)
			if err == nil {
				target = manifest.DefaultBinary
			}
		}
	}
	if target == "" {
		return fmt.Errorf("no --target given and no default_binary set in %s", project.ManifestName)
	}

	jobs := jobsFlag(cmd)
	result, failure := check.CheckTarget(cmd.Context(), root, target, jobs)
	if failure != nil {
		return fmt.Errorf("%s: %w", failure.Kind, failure)
	}

	renderer := &diag.Renderer{Files: result.Files}
	colored := useColor(cmd)
	for _, d := range result.Diagnostics {
		renderDiagnostic(cmd.OutOrStdout(), renderer, d, colored)
	}
	if !result.Ok() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}

	prog, ok := lookupProgram(result, target)
	if !ok {
		return fmt.Errorf("%s is not a binary target (no *.bin.lum file found)", target)
	}

	data, err := program.Marshal(prog)
	if err != nil {
		return fmt.Errorf("failed to serialize program: %w", err)
	}

	out := lowerOut
	if out == "" {
		out = strings.ReplaceAll(target, "/", "_") + ".lumir"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return &diag.Failure{Kind: diag.FailureWriteSource, Message: "failed to write " + out, Cause: err}
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes)\n", out, len(data))
	return nil
}

// lookupProgram finds the emitted program for targetPath among every
// binary target CheckTarget emitted, matching on path suffix so both
// "pkg/path" and the bare "." root target resolve.
func lookupProgram(result *check.Result, targetPath string) (*program.Program, bool) {
	if targetPath == "." {
		prog, ok := result.Programs["workspace"]
		return prog, ok
	}
	for pkgPath, prog := range result.Programs {
		if strings.HasSuffix(pkgPath, targetPath) {
			return prog, true
		}
	}
	return nil, false
}
