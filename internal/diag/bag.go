package diag

import "fortio.org/safecast"

// Bag is the mutable diagnostic collector a phase is handed at entry. Every
// helper in the phase appends to the same Bag rather than returning
// diagnostics up through every call frame, matching the
// inject-a-collector-at-the-entry-point pattern lumen's pipeline relies on
// throughout (see PhaseOutput).
type Bag struct {
	diagnostics []Diagnostic
}

// NewBag returns an empty diagnostic collector.
func NewBag() *Bag {
	return &Bag{}
}

// Add appends a diagnostic.
func (b *Bag) Add(d Diagnostic) {
	b.diagnostics = append(b.diagnostics, d)
}

// Len reports how many diagnostics have been collected.
func (b *Bag) Len() int {
	n, err := safecast.Convert[int](len(b.diagnostics))
	if err != nil {
		return len(b.diagnostics)
	}
	return n
}

// HasErrors reports whether any collected diagnostic is Error severity.
func (b *Bag) HasErrors() bool {
	for _, d := range b.diagnostics {
		if d.Severity == Error {
			return true
		}
	}
	return false
}

// Status derives a PhaseOutput Status from the collected diagnostics: any
// error prevents downstream phases from trusting this phase's output.
func (b *Bag) Status() Status {
	if b.HasErrors() {
		return StatusPreventsDownstream
	}
	return StatusOK
}

// Diagnostics returns the collected diagnostics in insertion order.
func (b *Bag) Diagnostics() []Diagnostic {
	return b.diagnostics
}

// Finish wraps value and the bag's contents into a finalized PhaseOutput.
func Finish[T any](value T, bag *Bag) PhaseOutput[T] {
	return PhaseOutput[T]{Value: value, Diagnostics: bag.Diagnostics(), Status: bag.Status()}
}
