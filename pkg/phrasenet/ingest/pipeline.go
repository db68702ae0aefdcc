package ingest

import "github.com/cognicore/phrasenet/pkg/phrasenet/stoplist"

// Pipeline prepares a document for graph construction:
// text → sentences → tokens → normalization → stopword filtering
type Pipeline struct {
	stops *stoplist.Manager
}

// NewPipeline creates a pipeline. A nil stoplist disables filtering.
func NewPipeline(stops *stoplist.Manager) *Pipeline {
	return &Pipeline{stops: stops}
}

// Sentence holds the parallel token views of one sentence.
type Sentence struct {
	Text string
	// Raw tokens as they appear, punctuation stripped, case preserved.
	Raw []string
	// Tokens are normalized but unfiltered; relation phrases are matched here
	// because the phrase itself may be a stopword.
	Tokens []string
	// Filtered are Tokens with stopwords removed; used for counting and
	// co-occurrence.
	Filtered []string
}

// Document is a processed input text.
type Document struct {
	Sentences []Sentence
}

// TokenCount returns the number of filtered tokens across all sentences.
func (d Document) TokenCount() int {
	n := 0
	for _, s := range d.Sentences {
		n += len(s.Filtered)
	}
	return n
}

// Process runs text through the pipeline.
func (p *Pipeline) Process(text string) Document {
	parts := SplitSentences(text)
	doc := Document{Sentences: make([]Sentence, 0, len(parts))}

	for _, part := range parts {
		raw := Tokenize(part)
		tokens := NormalizeAll(raw)

		filtered := tokens
		if p.stops != nil {
			filtered = p.stops.Filter(tokens)
		}

		doc.Sentences = append(doc.Sentences, Sentence{
			Text:     part,
			Raw:      raw,
			Tokens:   tokens,
			Filtered: filtered,
		})
	}

	return doc
}
