package diag

import "lumen/internal/source"

// TextEdit is a single-span text replacement that would fix a Diagnostic,
// when one can be derived mechanically.
type TextEdit struct {
	Span        source.Span
	Replacement string
}

// Fix bundles a human-readable description with the edits that realize it.
// lumen never applies fixes itself (no-goal: autofix tooling), but keeping
// the shape lets a diagnostic still describe one for a human reader or an
// external tool.
type Fix struct {
	Description string
	Edits       []TextEdit
}

// Diagnostic is one recoverable, phase-tagged compiler message anchored at
// a source span.
type Diagnostic struct {
	Phase    Phase
	Code     Code
	Severity Severity
	Span     source.Span
	Message  string
	Notes    []string
	Fix      *Fix
}

// New constructs a Diagnostic with no notes or fix.
func New(phase Phase, code Code, severity Severity, span source.Span, message string) Diagnostic {
	return Diagnostic{Phase: phase, Code: code, Severity: severity, Span: span, Message: message}
}

// WithNote appends a secondary explanatory note.
func (d Diagnostic) WithNote(note string) Diagnostic {
	d.Notes = append(d.Notes, note)
	return d
}

// WithFix attaches a suggested fix.
func (d Diagnostic) WithFix(fix Fix) Diagnostic {
	d.Fix = &fix
	return d
}
