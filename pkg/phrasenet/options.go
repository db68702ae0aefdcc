package phrasenet

import "strings"

// RelationType selects the edge extraction strategy.
type RelationType string

const (
	// RelationWindow links tokens at most WindowSize positions apart.
	RelationWindow RelationType = "window"
	// RelationSentence links every two tokens of a sentence.
	RelationSentence RelationType = "sentence"
	// RelationPhrase links the tokens around RelationPhrase.
	RelationPhrase RelationType = "relation-phrase"
)

// RelationTypes lists the supported strategies.
var RelationTypes = []RelationType{RelationWindow, RelationSentence, RelationPhrase}

// ParseRelationType parses a strategy name case-insensitively.
func ParseRelationType(s string) (RelationType, bool) {
	rt := RelationType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range RelationTypes {
		if rt == known {
			return rt, true
		}
	}
	return "", false
}

// Options configures one graph construction run.
type Options struct {
	RelationType   RelationType `json:"relation_type" yaml:"relation_type"`
	WindowSize     int          `json:"window_size" yaml:"window_size"`
	RelationPhrase string       `json:"relation_phrase,omitempty" yaml:"relation_phrase"`
	UseStopwords   bool         `json:"use_stopwords" yaml:"use_stopwords"`
	MinEdgeWeight  int          `json:"min_edge_weight" yaml:"min_edge_weight"`
	TopN           int          `json:"top_n" yaml:"top_n"`
}

// DefaultOptions returns the settings the phrase net UI starts with.
func DefaultOptions() Options {
	return Options{
		RelationType:  RelationWindow,
		WindowSize:    2,
		UseStopwords:  true,
		MinEdgeWeight: 1,
		TopN:          0,
	}
}

// Clamped returns a copy with out-of-range values pulled into range.
// Unknown relation types fall back to window mode.
func (o Options) Clamped() Options {
	if rt, ok := ParseRelationType(string(o.RelationType)); ok {
		o.RelationType = rt
	} else {
		o.RelationType = RelationWindow
	}
	if o.WindowSize < 1 {
		o.WindowSize = 1
	}
	if o.MinEdgeWeight < 0 {
		o.MinEdgeWeight = 0
	}
	if o.TopN < 0 {
		o.TopN = 0
	}
	return o
}
