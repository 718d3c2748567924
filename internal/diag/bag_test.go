package diag

import (
	"testing"

	"lumen/internal/source"
)

func TestBag_StatusOK_NoErrors(t *testing.T) {
	b := NewBag()
	b.Add(New(PhaseTypeCheck, CodeTypeUnusedBinding, Warning, source.Span{}, "unused binding 'x'"))
	if b.Status() != StatusOK {
		t.Fatalf("warning-only bag should be StatusOK")
	}
}

func TestBag_StatusPreventsDownstream_OnError(t *testing.T) {
	b := NewBag()
	b.Add(New(PhaseParse, CodeParseUnexpectedToken, Error, source.Span{}, "unexpected token"))
	if b.Status() != StatusPreventsDownstream {
		t.Fatalf("error in bag should prevent downstream")
	}
}

func TestFinish_WrapsValueAndStatus(t *testing.T) {
	b := NewBag()
	out := Finish(42, b)
	if out.Value != 42 {
		t.Fatalf("Value = %d, want 42", out.Value)
	}
	if out.Status != StatusOK {
		t.Fatalf("Status = %v, want StatusOK", out.Status)
	}
}
