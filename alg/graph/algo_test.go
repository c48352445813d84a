package graph

import (
	"reflect"
	"testing"
)

func TestReachable(t *testing.T) {
	g := NewBasicGraph(6)
	g.AddEdge(0, 1)
	g.AddEdge(0, 2)
	g.AddEdge(1, 3)
	g.AddEdge(3, 1)
	g.AddEdge(4, 5)
	reached := Reachable(g, 0)
	shouldEq := []bool{true, true, true, true, false, false}
	if !reflect.DeepEqual(reached, shouldEq) {
		t.Error("Expected", shouldEq, "got", reached)
	}
	fromLeaf := Reachable(g, 5)
	for i, v := range fromLeaf {
		if v != (i == 5) {
			t.Error("Expected only the start vertex from a sink, got", fromLeaf)
		}
	}
}

func TestReachableCycle(t *testing.T) {
	g := NewBasicGraph(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.AddEdge(2, 0)
	reached := Reachable(g, 1)
	for i, v := range reached {
		if !v {
			t.Error("Expected vertex", i, "reachable in a cycle")
		}
	}
}

func TestReachableOutOfRange(t *testing.T) {
	g := NewBasicGraph(2)
	g.AddEdge(0, 1)
	reached := Reachable(g, 7)
	for _, v := range reached {
		if v {
			t.Error("Expected nothing reachable from an unknown vertex")
		}
	}
}
