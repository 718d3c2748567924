package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"lumen/internal/check"
	"lumen/internal/diag"
	"lumen/internal/ui"
	"lumen/internal/workspace"
)

var checkTarget string

func init() {
	checkCmd.Flags().StringVar(&checkTarget, "target", "", "restrict checking to one package path (e.g. lib/collections)")
	checkCmd.Flags().String("ui", "auto", "progress display (auto|on|off)")
}

var checkCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Check a workspace (or one package) for diagnostics",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	jobs := jobsFlag(cmd)
	showUI, err := resolveUIMode(cmd)
	if err != nil {
		return err
	}

	var result *check.Result
	var failure *diag.Failure

	if showUI {
		result, failure = runCheckWithUI(cmd.Context(), root, jobs)
	} else if checkTarget != "" {
		result, failure = check.CheckTarget(cmd.Context(), root, checkTarget, jobs)
	} else {
		result, failure = check.CheckWorkspace(cmd.Context(), root, jobs)
	}

	if failure != nil {
		return fmt.Errorf("%s: %w", failure.Kind, failure)
	}

	if err := renderResult(cmd, result); err != nil {
		return err
	}
	if !result.Ok() {
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

func runCheckWithUI(ctx context.Context, root string, jobs int) (*check.Result, *diag.Failure) {
	ws, err := workspace.Discover(root)
	if err != nil {
		// Fall through to a plain run: CheckWorkspace/CheckTarget will
		// produce the same precondition Failure with a proper Kind.
		if checkTarget != "" {
			return check.CheckTarget(ctx, root, checkTarget, jobs)
		}
		return check.CheckWorkspace(ctx, root, jobs)
	}

	files := make([]string, 0, ws.Files.Len())
	for _, f := range ws.Files.All() {
		files = append(files, f.Path)
	}

	events := make(chan check.Event, 256)
	type outcome struct {
		result  *check.Result
		failure *diag.Failure
	}
	outcomeCh := make(chan outcome, 1)

	go func() {
		opt := check.WithEvents(func(ev check.Event) { events <- ev })
		var r *check.Result
		var f *diag.Failure
		if checkTarget != "" {
			r, f = check.CheckTarget(ctx, root, checkTarget, jobs, opt)
		} else {
			r, f = check.CheckWorkspace(ctx, root, jobs, opt)
		}
		outcomeCh <- outcome{result: r, failure: f}
		close(events)
	}()

	model := ui.NewProgressModel("checking "+root, files, events)
	program := tea.NewProgram(model, tea.WithOutput(os.Stdout))
	_, uiErr := program.Run()
	out := <-outcomeCh
	if uiErr != nil && out.failure == nil {
		out.failure = &diag.Failure{Kind: diag.FailureCheckFailed, Message: "progress display failed", Cause: uiErr}
	}
	return out.result, out.failure
}

func renderResult(cmd *cobra.Command, result *check.Result) error {
	format := formatFlag(cmd)
	renderer := &diag.Renderer{Files: result.Files}

	switch format {
	case "json":
		return renderer.RenderJSON(cmd.OutOrStdout(), result.Diagnostics)
	case "pretty":
		if len(result.Diagnostics) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return nil
		}
		colored := useColor(cmd)
		for _, d := range result.Diagnostics {
			renderDiagnostic(cmd.OutOrStdout(), renderer, d, colored)
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
	}
}

// renderDiagnostic colors just the severity word in Renderer's plain-text
// line, rather than threading color through internal/diag itself (it stays
// side-effect-free by design; only cmd/lumen decides to color).
func renderDiagnostic(w io.Writer, renderer *diag.Renderer, d diag.Diagnostic, colored bool) {
	if !colored {
		renderer.RenderText(w, d)
		return
	}
	var buf bytes.Buffer
	renderer.RenderText(&buf, d)
	text := buf.String()
	marker := ": " + d.Severity.String() + ":"
	if idx := strings.Index(text, marker); idx >= 0 {
		word := severityColor(d.Severity).Sprint(d.Severity.String())
		text = text[:idx] + ": " + word + ":" + text[idx+len(marker):]
	}
	fmt.Fprint(w, text)
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.Error:
		return color.New(color.FgRed, color.Bold)
	case diag.Warning:
		return color.New(color.FgYellow, color.Bold)
	default:
		return color.New(color.FgCyan)
	}
}

func resolveUIMode(cmd *cobra.Command) (bool, error) {
	mode, err := cmd.Flags().GetString("ui")
	if err != nil {
		return false, err
	}
	switch mode {
	case "", "auto":
		return isTerminal(os.Stdout), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", mode)
	}
}
