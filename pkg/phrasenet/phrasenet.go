package phrasenet

import (
	"github.com/cognicore/phrasenet/pkg/phrasenet/cooccur"
	"github.com/cognicore/phrasenet/pkg/phrasenet/ingest"
	"github.com/cognicore/phrasenet/pkg/phrasenet/stoplist"
)

// Builder turns free text into a phrase net. A Builder only holds the
// read-only stoplist, so one instance may serve concurrent Build calls;
// every call allocates its own accumulators.
type Builder struct {
	stops *stoplist.Manager
}

// New creates a builder. A nil stoplist selects stoplist.Default().
func New(stops *stoplist.Manager) *Builder {
	if stops == nil {
		stops = stoplist.Default()
	}
	return &Builder{stops: stops}
}

// Stoplist returns the stoplist applied when Options.UseStopwords is set.
func (b *Builder) Stoplist() *stoplist.Manager {
	return b.stops
}

// Stats summarizes a run.
type Stats struct {
	Sentences      int `json:"sentences"`
	Tokens         int `json:"tokens"`
	CandidateNodes int `json:"candidate_nodes"`
	RetainedNodes  int `json:"retained_nodes"`
	CandidateEdges int `json:"candidate_edges"`
	Nodes          int `json:"nodes"`
	Edges          int `json:"edges"`
}

// Result is a graph together with run statistics.
type Result struct {
	Graph   Graph   `json:"graph"`
	Stats   Stats   `json:"stats"`
	Options Options `json:"options"`
}

// Build runs the full pipeline on text.
func (b *Builder) Build(text string, opts Options) Graph {
	return b.Run(text, opts).Graph
}

// Run is Build with statistics. It never fails: empty input yields an
// empty graph and out-of-range options are clamped.
func (b *Builder) Run(text string, opts Options) Result {
	opts = opts.Clamped()

	var stops *stoplist.Manager
	if opts.UseStopwords {
		stops = b.stops
	}
	doc := ingest.NewPipeline(stops).Process(text)

	// Pass 1: node frequencies.
	counter := cooccur.NewCounter()
	for _, s := range doc.Sentences {
		counter.AddTokens(s.Filtered)
	}
	retained, nodeSet := counter.Retain(opts.TopN)

	// Pass 2: edges gated by the retained set.
	extractor := extractorFor(opts)
	for _, s := range doc.Sentences {
		extractor.Extract(s, nodeSet, counter)
	}

	g := finalize(retained, nodeSet, counter.Edges(), opts.MinEdgeWeight)

	return Result{
		Graph:   g,
		Options: opts,
		Stats: Stats{
			Sentences:      len(doc.Sentences),
			Tokens:         doc.TokenCount(),
			CandidateNodes: counter.UniqueTokens(),
			RetainedNodes:  len(retained),
			CandidateEdges: counter.UniquePairs(),
			Nodes:          len(g.Nodes),
			Edges:          len(g.Edges),
		},
	}
}

func extractorFor(opts Options) cooccur.Extractor {
	switch opts.RelationType {
	case RelationSentence:
		return cooccur.Sentence{}
	case RelationPhrase:
		return cooccur.NewRelation(opts.RelationPhrase)
	default:
		return cooccur.Window{Size: opts.WindowSize}
	}
}

// finalize applies the weight threshold and drops nodes left without edges.
func finalize(retained []cooccur.NodeCount, nodeSet cooccur.NodeSet, weights []cooccur.EdgeWeight, minWeight int) Graph {
	g := EmptyGraph()
	degree := make(map[string]int, len(retained))

	for _, ew := range weights {
		if ew.Weight < int64(minWeight) {
			continue
		}
		if !nodeSet.Has(ew.Pair.Source) || !nodeSet.Has(ew.Pair.Target) {
			continue
		}
		g.Edges = append(g.Edges, Edge{
			Source: ew.Pair.Source,
			Target: ew.Pair.Target,
			Weight: ew.Weight,
		})
		degree[ew.Pair.Source]++
		degree[ew.Pair.Target]++
	}

	for _, n := range retained {
		if degree[n.Token] == 0 {
			continue
		}
		g.Nodes = append(g.Nodes, Node{ID: n.Token, Count: n.Count})
	}

	return g
}
