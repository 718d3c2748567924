package main

import (
	"testing"

	"lumen/internal/check"
	"lumen/internal/program"
)

func TestLookupProgram(t *testing.T) {
	result := &check.Result{
		Programs: map[string]*program.Program{
			"workspace/cmd/server": {},
			"workspace/lib/util":   {},
		},
	}

	if _, ok := lookupProgram(result, "cmd/server"); !ok {
		t.Fatalf("expected to find cmd/server")
	}
	if _, ok := lookupProgram(result, "cmd/missing"); ok {
		t.Fatalf("did not expect to find cmd/missing")
	}
}

func TestValueOrUnknownJSON(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"", "unknown"},
		{"deadbeef", "deadbeef"},
	}
	for _, tc := range cases {
		if got := valueOrUnknownJSON(tc.input); got != tc.want {
			t.Fatalf("valueOrUnknownJSON(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
