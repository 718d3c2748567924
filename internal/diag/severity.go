// Package diag is lumen's two-channel error model: recoverable,
// phase-tagged Diagnostics collected in a Bag, and unrecoverable Failures
// that short-circuit the whole pipeline (see Failure in failure.go).
package diag

// Severity classifies how serious a Diagnostic is.
type Severity uint8

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "note"
	}
}
