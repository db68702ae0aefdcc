package export

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cognicore/phrasenet/pkg/phrasenet"
	"github.com/cognicore/phrasenet/pkg/phrasenet/internalerr"
)

// DefaultJSONName is the file name the phrase net UI downloads to.
const DefaultJSONName = "phrase_net.json"

// Snapshot wraps a graph with the options that produced it.
type Snapshot struct {
	ID        string            `json:"id"`
	CreatedAt time.Time         `json:"created_at"`
	Options   phrasenet.Options `json:"options"`
	Stats     phrasenet.Stats   `json:"stats"`
	Graph     phrasenet.Graph   `json:"graph"`
}

var (
	entropyMu sync.Mutex
	entropy   = ulid.Monotonic(rand.Reader, 0)
)

func newID(t time.Time) string {
	entropyMu.Lock()
	defer entropyMu.Unlock()
	return ulid.MustNew(ulid.Timestamp(t), entropy).String()
}

// NewSnapshot stamps a run result with a ULID and the current time.
func NewSnapshot(res phrasenet.Result) Snapshot {
	now := time.Now().UTC()
	return Snapshot{
		ID:        newID(now),
		CreatedAt: now,
		Options:   res.Options,
		Stats:     res.Stats,
		Graph:     res.Graph,
	}
}

// WriteJSON writes g as indented JSON.
func WriteJSON(w io.Writer, g phrasenet.Graph) error {
	return writeIndented(w, withSlices(g))
}

// WriteSnapshotJSON writes s as indented JSON.
func WriteSnapshotJSON(w io.Writer, s Snapshot) error {
	s.Graph = withSlices(s.Graph)
	return writeIndented(w, s)
}

func writeIndented(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// ReadJSON reads a graph written by WriteJSON.
func ReadJSON(r io.Reader) (phrasenet.Graph, error) {
	var g phrasenet.Graph
	if err := json.NewDecoder(r).Decode(&g); err != nil {
		return phrasenet.Graph{}, fmt.Errorf("%w: %v", internalerr.ErrInvalidInput, err)
	}
	return withSlices(g), nil
}

// ReadSnapshotJSON reads a snapshot written by WriteSnapshotJSON.
func ReadSnapshotJSON(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", internalerr.ErrInvalidInput, err)
	}
	s.Graph = withSlices(s.Graph)
	return s, nil
}

// withSlices replaces nil slices so empty graphs encode as [] rather than null.
func withSlices(g phrasenet.Graph) phrasenet.Graph {
	if g.Nodes == nil {
		g.Nodes = []phrasenet.Node{}
	}
	if g.Edges == nil {
		g.Edges = []phrasenet.Edge{}
	}
	return g
}
