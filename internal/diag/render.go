package diag

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"lumen/internal/source"
)

// Renderer formats diagnostics against the source text that produced them.
// It stays plain-text by design: cmd/lumen decides whether to colorize the
// severity label, so this package has no terminal dependency of its own.
type Renderer struct {
	Files *source.Set
}

// RenderText writes one diagnostic in "path:line:column: severity: message"
// form, followed by the offending source line and a caret underline sized
// with go-runewidth so multi-byte characters don't throw off the column.
func (r *Renderer) RenderText(w io.Writer, d Diagnostic) {
	f := r.Files.File(d.Span.File)
	fmt.Fprintf(w, "%s:%d:%d: %s: %s\n", f.Path, d.Span.StartLine, d.Span.StartColumn, d.Severity, d.Message)

	line := sourceLine(f.Text, int(d.Span.StartLine))
	if line != "" {
		fmt.Fprintf(w, "  %s\n", line)
		prefix := line
		if runes := []rune(line); int(d.Span.StartColumn) <= len(runes)+1 {
			prefix = string(runes[:clampInt(int(d.Span.StartColumn)-1, 0, len(runes))])
		}
		pad := runewidth.StringWidth(prefix)
		caretLen := int(d.Span.EndColumn) - int(d.Span.StartColumn)
		if caretLen < 1 {
			caretLen = 1
		}
		fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), strings.Repeat("^", caretLen))
	}
	for _, note := range d.Notes {
		fmt.Fprintf(w, "  note: %s\n", note)
	}
}

// jsonDiagnostic is the wire shape used by RenderJSON, matching lumen's
// documented --format json diagnostic output.
type jsonDiagnostic struct {
	Phase    string `json:"phase"`
	Code     uint16 `json:"code"`
	Severity string `json:"severity"`
	File     string `json:"file"`
	Line     uint32 `json:"line"`
	Column   uint32 `json:"column"`
	Message  string `json:"message"`
	Notes    []string `json:"notes,omitempty"`
}

// RenderJSON writes the diagnostic set as a JSON array, one object per
// diagnostic, in the order given.
func (r *Renderer) RenderJSON(w io.Writer, diags []Diagnostic) error {
	out := make([]jsonDiagnostic, len(diags))
	for i, d := range diags {
		f := r.Files.File(d.Span.File)
		out[i] = jsonDiagnostic{
			Phase:    d.Phase.String(),
			Code:     uint16(d.Code),
			Severity: d.Severity.String(),
			File:     f.Path,
			Line:     d.Span.StartLine,
			Column:   d.Span.StartColumn,
			Message:  d.Message,
			Notes:    d.Notes,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func sourceLine(text string, line int) string {
	if line <= 0 {
		return ""
	}
	n := 1
	start := 0
	for i, r := range text {
		if n == line {
			start = i
			break
		}
		if r == '\n' {
			n++
		}
	}
	if n != line {
		return ""
	}
	end := strings.IndexByte(text[start:], '\n')
	if end < 0 {
		return text[start:]
	}
	return text[start : start+end]
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
