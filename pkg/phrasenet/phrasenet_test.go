package phrasenet

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/cognicore/phrasenet/pkg/phrasenet/stoplist"
	"github.com/google/go-cmp/cmp"
)

const sampleText = `The quick brown fox jumps over the lazy dog. The dog sleeps!
A fox is a clever animal? Dogs are loyal and cats are independent.
The cat sat on the mat; the cat ran (fast) — the fox watched.`

func windowOpts(size int) Options {
	return Options{RelationType: RelationWindow, WindowSize: size, UseStopwords: true, MinEdgeWeight: 1}
}

func TestScenarioWindowWithStopwords(t *testing.T) {
	g := New(nil).Build("The cat sat. The cat ran.", windowOpts(2))

	wantNodes := []Node{{ID: "cat", Count: 2}, {ID: "sat", Count: 1}, {ID: "ran", Count: 1}}
	if diff := cmp.Diff(wantNodes, g.Nodes); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}

	wantEdges := []Edge{
		{Source: "cat", Target: "sat", Weight: 1},
		{Source: "cat", Target: "ran", Weight: 1},
	}
	if diff := cmp.Diff(wantEdges, g.Edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestScenarioRelationPhrase(t *testing.T) {
	opts := Options{
		RelationType:   RelationPhrase,
		RelationPhrase: "are",
		UseStopwords:   false,
		MinEdgeWeight:  1,
	}
	g := New(nil).Build("Dogs are loyal and cats are independent.", opts)

	wantEdges := []Edge{
		{Source: "dogs", Target: "loyal", Weight: 1},
		{Source: "cats", Target: "independent", Weight: 1},
	}
	if diff := cmp.Diff(wantEdges, g.Edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}

	// "and" and "are" are counted nodes but have no relation edge.
	for _, id := range []string{"and", "are"} {
		if _, ok := g.Node(id); ok {
			t.Errorf("%q should have been pruned for having no edges", id)
		}
	}
}

func TestRelationPhraseWithStopwordsOn(t *testing.T) {
	// The phrase is itself a stopword; matching still happens on the
	// unfiltered tokens.
	opts := Options{RelationType: RelationPhrase, RelationPhrase: "is", UseStopwords: true}
	g := New(nil).Build("Zebra is animal. Zebra is striped.", opts)

	wantEdges := []Edge{
		{Source: "zebra", Target: "animal", Weight: 1},
		{Source: "zebra", Target: "striped", Weight: 1},
	}
	if diff := cmp.Diff(wantEdges, g.Edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
	if e := g.Edges[0]; e.Source < e.Target {
		t.Errorf("relation edge should keep phrase order, got %v", e)
	}
}

func TestScenarioMinEdgeWeight(t *testing.T) {
	// a-b co-occurs twice, b-c once.
	text := "a b. a b c"
	opts := Options{RelationType: RelationWindow, WindowSize: 1, MinEdgeWeight: 2}
	g := New(nil).Build(text, opts)

	wantEdges := []Edge{{Source: "a", Target: "b", Weight: 2}}
	if diff := cmp.Diff(wantEdges, g.Edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
	if _, ok := g.Node("c"); ok {
		t.Error("c has no surviving edge and should be pruned")
	}
}

func TestScenarioTopN(t *testing.T) {
	text := strings.Repeat("a b. ", 3) + "a c. a a"
	opts := Options{RelationType: RelationSentence, TopN: 1, MinEdgeWeight: 1}
	res := New(nil).Run(text, opts)

	if res.Stats.RetainedNodes != 1 {
		t.Errorf("Expected 1 retained node, got %d", res.Stats.RetainedNodes)
	}
	for _, e := range res.Graph.Edges {
		if e.Source == "b" || e.Target == "b" || e.Source == "c" || e.Target == "c" {
			t.Errorf("edge %v touches a node cut by topN", e)
		}
	}
	if !res.Graph.Empty() {
		t.Errorf("a alone cannot form an edge, got %+v", res.Graph)
	}
}

func TestTopNKeepsHighestCounts(t *testing.T) {
	text := "a b c. a b. a b. a x y"
	opts := Options{RelationType: RelationSentence, TopN: 2, MinEdgeWeight: 1}
	g := New(nil).Build(text, opts)

	wantNodes := []Node{{ID: "a", Count: 4}, {ID: "b", Count: 3}}
	if diff := cmp.Diff(wantNodes, g.Nodes); diff != "" {
		t.Errorf("nodes mismatch (-want +got):\n%s", diff)
	}
	wantEdges := []Edge{{Source: "a", Target: "b", Weight: 3}}
	if diff := cmp.Diff(wantEdges, g.Edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestEmptyInput(t *testing.T) {
	for _, text := range []string{"", "   ", "...!?\n"} {
		g := New(nil).Build(text, DefaultOptions())

		data, err := json.Marshal(g)
		if err != nil {
			t.Fatal(err)
		}
		if string(data) != `{"nodes":[],"edges":[]}` {
			t.Errorf("Build(%q) = %s", text, data)
		}
	}
}

func TestBlankRelationPhraseYieldsEmptyGraph(t *testing.T) {
	opts := Options{RelationType: RelationPhrase, RelationPhrase: "  "}
	g := New(nil).Build(sampleText, opts)

	if !g.Empty() || len(g.Edges) != 0 {
		t.Errorf("Expected empty graph, got %+v", g)
	}
}

func TestDeterminism(t *testing.T) {
	builder := New(nil)
	for _, rt := range RelationTypes {
		opts := Options{RelationType: rt, WindowSize: 3, RelationPhrase: "the", MinEdgeWeight: 1}

		first, _ := json.Marshal(builder.Build(sampleText, opts))
		for i := 0; i < 5; i++ {
			again, _ := json.Marshal(builder.Build(sampleText, opts))
			if string(first) != string(again) {
				t.Fatalf("%s: run %d differs:\n%s\n%s", rt, i, first, again)
			}
		}
	}
}

func TestGraphInvariants(t *testing.T) {
	builder := New(nil)
	cases := []Options{
		{RelationType: RelationWindow, WindowSize: 2, UseStopwords: true, MinEdgeWeight: 1},
		{RelationType: RelationWindow, WindowSize: 4, MinEdgeWeight: 2, TopN: 5},
		{RelationType: RelationSentence, UseStopwords: true, MinEdgeWeight: 1, TopN: 8},
		{RelationType: RelationSentence, MinEdgeWeight: 0},
		{RelationType: RelationPhrase, RelationPhrase: "the", MinEdgeWeight: 1},
		{RelationType: RelationPhrase, RelationPhrase: "are", UseStopwords: true},
	}

	for _, opts := range cases {
		t.Run(fmt.Sprintf("%s-%d-%d", opts.RelationType, opts.MinEdgeWeight, opts.TopN), func(t *testing.T) {
			g := builder.Build(sampleText, opts)

			ids := make(map[string]bool)
			for _, n := range g.Nodes {
				if n.Count < 1 {
					t.Errorf("node %v has count < 1", n)
				}
				if g.Degree(n.ID) < 1 {
					t.Errorf("node %v has no edges", n)
				}
				ids[n.ID] = true
			}
			for _, e := range g.Edges {
				if e.Weight < int64(opts.MinEdgeWeight) {
					t.Errorf("edge %v below threshold", e)
				}
				if e.Source == e.Target {
					t.Errorf("self edge %v", e)
				}
				if !ids[e.Source] || !ids[e.Target] {
					t.Errorf("edge %v references a missing node", e)
				}
				if opts.RelationType != RelationPhrase && e.Source >= e.Target {
					t.Errorf("edge %v is not canonical", e)
				}
			}
		})
	}
}

func TestStopwordsToggle(t *testing.T) {
	text := "the cat and the dog"

	on := New(nil).Build(text, Options{RelationType: RelationSentence, UseStopwords: true})
	if _, ok := on.Node("the"); ok {
		t.Error("'the' should be filtered when stopwords are on")
	}

	off := New(nil).Build(text, Options{RelationType: RelationSentence, UseStopwords: false})
	if n, ok := off.Node("the"); !ok || n.Count != 2 {
		t.Errorf("Expected the=2 with stopwords off, got %v %v", n, ok)
	}
}

func TestCustomStoplist(t *testing.T) {
	builder := New(stoplist.NewManager([]string{"cat"}))
	g := builder.Build("the cat sat on the mat", Options{RelationType: RelationSentence, UseStopwords: true})

	if _, ok := g.Node("cat"); ok {
		t.Error("custom stopword should be filtered")
	}
	if _, ok := g.Node("the"); !ok {
		t.Error("'the' is not in the custom list and should survive")
	}
}

func TestStopwordFilteringClosesGaps(t *testing.T) {
	// With "the" removed, "king" and "hill" become adjacent.
	g := New(nil).Build("king of the hill", windowOpts(1))

	wantEdges := []Edge{{Source: "hill", Target: "king", Weight: 1}}
	if diff := cmp.Diff(wantEdges, g.Edges); diff != "" {
		t.Errorf("edges mismatch (-want +got):\n%s", diff)
	}
}

func TestRunStats(t *testing.T) {
	res := New(nil).Run("The cat sat. The cat ran.", windowOpts(2))

	want := Stats{
		Sentences:      2,
		Tokens:         4,
		CandidateNodes: 3,
		RetainedNodes:  3,
		CandidateEdges: 2,
		Nodes:          3,
		Edges:          2,
	}
	if diff := cmp.Diff(want, res.Stats); diff != "" {
		t.Errorf("stats mismatch (-want +got):\n%s", diff)
	}
	if res.Options.RelationType != RelationWindow {
		t.Errorf("Expected clamped options in result, got %v", res.Options)
	}
}

func TestOptionsClamped(t *testing.T) {
	got := Options{RelationType: "bogus", WindowSize: -1, MinEdgeWeight: -5, TopN: -2}.Clamped()
	want := Options{RelationType: RelationWindow, WindowSize: 1, MinEdgeWeight: 0, TopN: 0}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Clamped mismatch (-want +got):\n%s", diff)
	}

	if rt := (Options{RelationType: " Sentence "}).Clamped().RelationType; rt != RelationSentence {
		t.Errorf("Expected sentence, got %q", rt)
	}
}

func TestParseRelationType(t *testing.T) {
	if rt, ok := ParseRelationType("RELATION-PHRASE"); !ok || rt != RelationPhrase {
		t.Errorf("Expected relation-phrase, got %q %v", rt, ok)
	}
	if _, ok := ParseRelationType("graph"); ok {
		t.Error("unknown type should not parse")
	}
}

func TestConcurrentBuilds(t *testing.T) {
	builder := New(nil)
	want, _ := json.Marshal(builder.Build(sampleText, windowOpts(3)))

	done := make(chan string, 8)
	for i := 0; i < 8; i++ {
		go func() {
			got, _ := json.Marshal(builder.Build(sampleText, windowOpts(3)))
			done <- string(got)
		}()
	}
	for i := 0; i < 8; i++ {
		if got := <-done; got != string(want) {
			t.Errorf("concurrent build differs:\n%s\n%s", want, got)
		}
	}
}
