package cooccur

import (
	"strings"

	"github.com/cognicore/phrasenet/pkg/phrasenet/ingest"
)

// Extractor derives edges from one sentence. Exactly one extractor is
// active per run.
type Extractor interface {
	Extract(s ingest.Sentence, retained NodeSet, c *Counter)
}

// Window pairs each filtered token with the next Size tokens.
type Window struct {
	Size int
}

// Extract implements Extractor.
func (w Window) Extract(s ingest.Sentence, retained NodeSet, c *Counter) {
	size := w.Size
	if size < 1 {
		size = 1
	}
	tokens := s.Filtered
	for i := range tokens {
		for j := i + 1; j <= i+size && j < len(tokens); j++ {
			addUndirected(tokens[i], tokens[j], retained, c)
		}
	}
}

// Sentence pairs every two filtered tokens of the same sentence.
type Sentence struct{}

// Extract implements Extractor.
func (Sentence) Extract(s ingest.Sentence, retained NodeSet, c *Counter) {
	tokens := s.Filtered
	for i := range tokens {
		for j := i + 1; j < len(tokens); j++ {
			addUndirected(tokens[i], tokens[j], retained, c)
		}
	}
}

func addUndirected(a, b string, retained NodeSet, c *Counter) {
	if a == "" || b == "" || a == b {
		return
	}
	if !retained.Has(a) || !retained.Has(b) {
		return
	}
	c.AddEdge(Pair{Source: a, Target: b}.Canonical())
}

// Relation links the token before a phrase to the token after it,
// e.g. "cats are mammals" with phrase "are" yields cats → mammals.
type Relation struct {
	words []string
}

// NewRelation builds a relation extractor. The phrase is split on whitespace
// and normalized like any other token.
func NewRelation(phrase string) Relation {
	return Relation{words: ingest.NormalizeAll(strings.Fields(phrase))}
}

// Words returns the normalized phrase words.
func (r Relation) Words() []string {
	return r.words
}

// Extract implements Extractor. Matching runs on the unfiltered tokens.
func (r Relation) Extract(s ingest.Sentence, retained NodeSet, c *Counter) {
	k := len(r.words)
	if k == 0 {
		return
	}
	tokens := s.Tokens
	for i := 0; i+k+1 < len(tokens); i++ {
		if !r.matchAt(tokens, i+1) {
			continue
		}
		src, dst := tokens[i], tokens[i+k+1]
		if src == "" || dst == "" || src == dst {
			continue
		}
		if !retained.Has(src) || !retained.Has(dst) {
			continue
		}
		c.AddEdge(Pair{Source: src, Target: dst})
	}
}

func (r Relation) matchAt(tokens []string, start int) bool {
	for i, w := range r.words {
		if tokens[start+i] != w {
			return false
		}
	}
	return true
}
