package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/phrasenet/pkg/phrasenet"
	"github.com/cognicore/phrasenet/pkg/phrasenet/ingest"
	"github.com/cognicore/phrasenet/pkg/phrasenet/internalerr"
)

// Options mirrors phrasenet.Options with pointer fields so a file can
// override only some settings.
type Options struct {
	RelationType   *string `yaml:"relation_type"`
	WindowSize     *int    `yaml:"window_size"`
	RelationPhrase *string `yaml:"relation_phrase"`
	UseStopwords   *bool   `yaml:"use_stopwords"`
	MinEdgeWeight  *int    `yaml:"min_edge_weight"`
	TopN           *int    `yaml:"top_n"`
}

// LoadOptions loads run options from a YAML file
func LoadOptions(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var opts Options
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return &opts, nil
}

// Apply overlays the set fields onto base.
func (o *Options) Apply(base phrasenet.Options) phrasenet.Options {
	if o == nil {
		return base
	}
	if o.RelationType != nil {
		base.RelationType = phrasenet.RelationType(*o.RelationType)
	}
	if o.WindowSize != nil {
		base.WindowSize = *o.WindowSize
	}
	if o.RelationPhrase != nil {
		base.RelationPhrase = *o.RelationPhrase
	}
	if o.UseStopwords != nil {
		base.UseStopwords = *o.UseStopwords
	}
	if o.MinEdgeWeight != nil {
		base.MinEdgeWeight = *o.MinEdgeWeight
	}
	if o.TopN != nil {
		base.TopN = *o.TopN
	}
	return base
}

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
	// ReplaceDefaults drops the built-in list instead of extending it.
	ReplaceDefaults bool `yaml:"replace_defaults"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	// Stopwords are compared against normalized tokens.
	terms := make([]string, 0, len(sl.Terms))
	for _, term := range sl.Terms {
		if n := ingest.Normalize(strings.TrimSpace(term)); n != "" {
			terms = append(terms, n)
		}
	}
	sl.Terms = terms

	return &sl, nil
}

// Validate rejects options a strict caller should not pass through.
// phrasenet.Builder clamps the same values instead of failing.
func Validate(o phrasenet.Options) error {
	if _, ok := phrasenet.ParseRelationType(string(o.RelationType)); !ok {
		return fmt.Errorf("%w: unknown relation type %q", internalerr.ErrInvalidConfig, o.RelationType)
	}
	if o.WindowSize < 1 && o.RelationType == phrasenet.RelationWindow {
		return fmt.Errorf("%w: window size must be at least 1, got %d", internalerr.ErrInvalidConfig, o.WindowSize)
	}
	if o.MinEdgeWeight < 0 {
		return fmt.Errorf("%w: min edge weight must be non-negative, got %d", internalerr.ErrInvalidConfig, o.MinEdgeWeight)
	}
	if o.TopN < 0 {
		return fmt.Errorf("%w: top n must be non-negative, got %d", internalerr.ErrInvalidConfig, o.TopN)
	}
	if o.RelationType == phrasenet.RelationPhrase && strings.TrimSpace(o.RelationPhrase) == "" {
		return fmt.Errorf("%w: relation phrase is required in %s mode", internalerr.ErrInvalidConfig, o.RelationType)
	}
	return nil
}
