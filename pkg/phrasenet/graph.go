package phrasenet

import "sort"

// DefaultSidebarSize is the length of the frequency list shown next to the graph.
const DefaultSidebarSize = 50

// DefaultNeighborLimit caps the neighborhood listed for a selected node.
const DefaultNeighborLimit = 40

// Node is a retained token.
type Node struct {
	ID    string `json:"id"`
	Count int64  `json:"count"`
}

// Edge links two nodes. Window and sentence edges have Source < Target;
// relation-phrase edges keep the order in which the phrase joined them.
type Edge struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Weight int64  `json:"weight"`
}

// Graph is the result of one run. It is plain data with no back references
// and serializes directly.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// EmptyGraph returns a graph with non-nil, empty slices.
func EmptyGraph() Graph {
	return Graph{Nodes: []Node{}, Edges: []Edge{}}
}

// Empty reports whether the graph has no nodes.
func (g Graph) Empty() bool {
	return len(g.Nodes) == 0
}

// Node looks up a node by id.
func (g Graph) Node(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Degree returns the number of edges touching id.
func (g Graph) Degree(id string) int {
	d := 0
	for _, e := range g.Edges {
		if e.Source == id || e.Target == id {
			d++
		}
	}
	return d
}

// Neighbors returns the ids adjacent to id in edge order, without
// duplicates. limit <= 0 means no limit.
func (g Graph) Neighbors(id string, limit int) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, e := range g.Edges {
		var other string
		switch id {
		case e.Source:
			other = e.Target
		case e.Target:
			other = e.Source
		default:
			continue
		}
		if _, dup := seen[other]; dup {
			continue
		}
		seen[other] = struct{}{}
		out = append(out, other)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}

// TopNodes returns up to k nodes by descending count. Ties keep graph order.
func (g Graph) TopNodes(k int) []Node {
	nodes := make([]Node, len(g.Nodes))
	copy(nodes, g.Nodes)
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Count > nodes[j].Count
	})
	if k > 0 && len(nodes) > k {
		nodes = nodes[:k]
	}
	return nodes
}
