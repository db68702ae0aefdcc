package cooccur

import "sort"

// Counter accumulates node frequencies (pass 1) and edge weights (pass 2)
// for a single graph run. A Counter is not safe for concurrent use; every
// run allocates its own.
type Counter struct {
	nodes     map[string]int64
	nodeOrder []string
	edges     map[Pair]int64
	edgeOrder []Pair
}

// Pair identifies an edge. Window and sentence strategies store it with
// Source < Target; the relation strategy keeps phrase order.
type Pair struct {
	Source, Target string
}

// Canonical returns the pair ordered lexicographically.
func (p Pair) Canonical() Pair {
	if p.Source > p.Target {
		return Pair{Source: p.Target, Target: p.Source}
	}
	return p
}

// NodeCount is a token with its document frequency.
type NodeCount struct {
	Token string
	Count int64
}

// EdgeWeight is a pair with its accumulated weight.
type EdgeWeight struct {
	Pair   Pair
	Weight int64
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{
		nodes: make(map[string]int64),
		edges: make(map[Pair]int64),
	}
}

// AddTokens counts each token occurrence.
func (c *Counter) AddTokens(tokens []string) {
	for _, t := range tokens {
		if t == "" {
			continue
		}
		if _, seen := c.nodes[t]; !seen {
			c.nodeOrder = append(c.nodeOrder, t)
		}
		c.nodes[t]++
	}
}

// GetTokenCount returns the occurrence count for a token.
func (c *Counter) GetTokenCount(t string) int64 {
	return c.nodes[t]
}

// UniqueTokens returns the number of distinct tokens counted.
func (c *Counter) UniqueTokens() int {
	return len(c.nodes)
}

// Nodes returns all counted tokens in first-seen order.
func (c *Counter) Nodes() []NodeCount {
	out := make([]NodeCount, 0, len(c.nodeOrder))
	for _, t := range c.nodeOrder {
		out = append(out, NodeCount{Token: t, Count: c.nodes[t]})
	}
	return out
}

// Retain selects the node set that gates edge extraction. With topN > 0 and
// more candidates than topN, candidates are stable-sorted by count
// descending (ties keep first-seen order) and truncated.
func (c *Counter) Retain(topN int) ([]NodeCount, NodeSet) {
	candidates := c.Nodes()
	if topN > 0 && len(candidates) > topN {
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].Count > candidates[j].Count
		})
		candidates = candidates[:topN]
	}

	set := make(NodeSet, len(candidates))
	for _, n := range candidates {
		set[n.Token] = struct{}{}
	}
	return candidates, set
}

// AddEdge increments the weight of p exactly as given; callers canonicalize
// when the strategy requires it.
func (c *Counter) AddEdge(p Pair) {
	if _, seen := c.edges[p]; !seen {
		c.edgeOrder = append(c.edgeOrder, p)
	}
	c.edges[p]++
}

// GetPairCount returns the weight for an exact pair.
func (c *Counter) GetPairCount(p Pair) int64 {
	return c.edges[p]
}

// UniquePairs returns the number of distinct pairs.
func (c *Counter) UniquePairs() int {
	return len(c.edges)
}

// Edges returns accumulated pairs in first-seen order.
func (c *Counter) Edges() []EdgeWeight {
	out := make([]EdgeWeight, 0, len(c.edgeOrder))
	for _, p := range c.edgeOrder {
		out = append(out, EdgeWeight{Pair: p, Weight: c.edges[p]})
	}
	return out
}

// NodeSet is the retained node set.
type NodeSet map[string]struct{}

// Has reports whether token is retained.
func (s NodeSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}
