package pkggraph

import (
	"testing"

	"lumen/internal/diag"
	"lumen/internal/source"
)

func TestFindFirstCycle_NoCycleInDAG(t *testing.T) {
	g := New()
	g.AddEdge("workspace", "workspace/lib")
	g.AddEdge("workspace/lib", "workspace/lib/util")

	bag := diag.NewBag()
	if FindFirstCycle(g, source.Span{}, bag) {
		t.Fatal("should not detect a cycle in a DAG")
	}
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", bag.Diagnostics())
	}
}

func TestFindFirstCycle_DetectsDirectCycle(t *testing.T) {
	g := New()
	g.AddEdge("workspace/a", "workspace/b")
	g.AddEdge("workspace/b", "workspace/a")

	bag := diag.NewBag()
	if !FindFirstCycle(g, source.Span{}, bag) {
		t.Fatal("expected a cycle to be detected")
	}
	if !bag.HasErrors() {
		t.Fatal("expected a cycle diagnostic")
	}
}

func TestFindFirstCycle_DetectsSelfImport(t *testing.T) {
	g := New()
	g.AddEdge("workspace/a", "workspace/a")

	bag := diag.NewBag()
	if !FindFirstCycle(g, source.Span{}, bag) {
		t.Fatal("expected a self-import cycle to be detected")
	}
}
