package graph

import (
	"errors"
	"reflect"
	"testing"
)

func TestTopoSortOrdersDependenciesFirst(t *testing.T) {
	g := New[string]()
	g.AddVertex("a")
	g.AddVertex("b")
	g.AddVertex("c")
	must(t, g.AddEdge("a", "b")) // a depends on b
	must(t, g.AddEdge("b", "c")) // b depends on c

	got, err := g.TopoSort(g.Vertices())
	if err != nil {
		t.Fatalf("TopoSort: %v", err)
	}
	want := []string{"c", "b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopoSort = %v, want %v", got, want)
	}
}

func TestTopoSortStableAmongTies(t *testing.T) {
	g := New[string]()
	// No edges at all: order must be pure insertion order.
	for _, v := range []string{"z", "a", "m"} {
		g.AddVertex(v)
	}
	got, err := g.TopoSort(g.Vertices())
	if err != nil {
		t.Fatalf("TopoSort: %v", err)
	}
	want := []string{"z", "a", "m"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopoSort = %v, want %v (insertion order)", got, want)
	}
}

func TestAddEdgeRejectsSelfLoop(t *testing.T) {
	g := New[string]()
	g.AddVertex("a")
	if err := g.AddEdge("a", "a"); !errors.Is(err, ErrSelfEdge) {
		t.Errorf("AddEdge self-loop: got %v, want ErrSelfEdge", err)
	}
}

func TestAddEdgeRejectsCycle(t *testing.T) {
	g := New[string]()
	must(t, g.AddEdge("a", "b"))
	must(t, g.AddEdge("b", "c"))
	if err := g.AddEdge("c", "a"); !errors.Is(err, ErrCycle) {
		t.Errorf("AddEdge cycle: got %v, want ErrCycle", err)
	}
}

func TestAddVertexIdempotent(t *testing.T) {
	g := New[string]()
	g.AddVertex("a")
	g.AddVertex("a")
	if got := g.Vertices(); len(got) != 1 {
		t.Errorf("AddVertex not idempotent: %v", got)
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
