package cooccur

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCounterBasic(t *testing.T) {
	counter := NewCounter()

	counter.AddTokens([]string{"cat", "sat", "cat", ""})

	if counter.GetTokenCount("cat") != 2 {
		t.Errorf("Expected cat=2, got %d", counter.GetTokenCount("cat"))
	}
	if counter.UniqueTokens() != 2 {
		t.Errorf("Expected 2 unique tokens, got %d", counter.UniqueTokens())
	}
	if counter.GetTokenCount("") != 0 {
		t.Error("empty tokens must not be counted")
	}
}

func TestCounterNodesFirstSeenOrder(t *testing.T) {
	counter := NewCounter()
	counter.AddTokens([]string{"b", "a", "b"})
	counter.AddTokens([]string{"c", "a"})

	want := []NodeCount{{"b", 2}, {"a", 2}, {"c", 1}}
	if diff := cmp.Diff(want, counter.Nodes()); diff != "" {
		t.Errorf("Nodes mismatch (-want +got):\n%s", diff)
	}
}

func TestRetainNoCap(t *testing.T) {
	counter := NewCounter()
	counter.AddTokens([]string{"c", "a", "a"})

	nodes, set := counter.Retain(0)

	want := []NodeCount{{"c", 1}, {"a", 2}}
	if diff := cmp.Diff(want, nodes); diff != "" {
		t.Errorf("Retain(0) should keep first-seen order (-want +got):\n%s", diff)
	}
	if !set.Has("a") || !set.Has("c") {
		t.Error("all nodes should be retained")
	}
}

func TestRetainTopNStableOnTies(t *testing.T) {
	counter := NewCounter()
	counter.AddTokens([]string{"x", "y", "z", "z", "w"})

	nodes, set := counter.Retain(3)

	want := []NodeCount{{"z", 2}, {"x", 1}, {"y", 1}}
	if diff := cmp.Diff(want, nodes); diff != "" {
		t.Errorf("Retain(3) mismatch (-want +got):\n%s", diff)
	}
	if set.Has("w") {
		t.Error("w should have been cut by topN")
	}
}

func TestRetainTopNNotExceeded(t *testing.T) {
	counter := NewCounter()
	counter.AddTokens([]string{"b", "a", "a"})

	nodes, _ := counter.Retain(5)

	// No sort happens when the cap is not exceeded.
	if nodes[0].Token != "b" {
		t.Errorf("Expected first-seen order, got %v", nodes)
	}
}

func TestPairCanonical(t *testing.T) {
	p := Pair{Source: "zebra", Target: "apple"}.Canonical()
	if p.Source != "apple" || p.Target != "zebra" {
		t.Errorf("Expected apple/zebra, got %v", p)
	}

	same := Pair{Source: "a", Target: "b"}
	if same.Canonical() != same {
		t.Error("ordered pair should be unchanged")
	}
}

func TestCounterEdges(t *testing.T) {
	counter := NewCounter()
	counter.AddEdge(Pair{"b", "c"})
	counter.AddEdge(Pair{"a", "b"})
	counter.AddEdge(Pair{"b", "c"})

	want := []EdgeWeight{
		{Pair: Pair{"b", "c"}, Weight: 2},
		{Pair: Pair{"a", "b"}, Weight: 1},
	}
	if diff := cmp.Diff(want, counter.Edges()); diff != "" {
		t.Errorf("Edges mismatch (-want +got):\n%s", diff)
	}
	if counter.UniquePairs() != 2 {
		t.Errorf("Expected 2 pairs, got %d", counter.UniquePairs())
	}
}

func TestPairKeyDoesNotCollide(t *testing.T) {
	// A delimiter-joined key would map both of these to "a||b||c".
	counter := NewCounter()
	counter.AddEdge(Pair{"a||b", "c"})
	counter.AddEdge(Pair{"a", "b||c"})

	if counter.UniquePairs() != 2 {
		t.Errorf("Expected 2 distinct pairs, got %d", counter.UniquePairs())
	}
	if counter.GetPairCount(Pair{"a||b", "c"}) != 1 {
		t.Error("pair weight should be 1")
	}
}
