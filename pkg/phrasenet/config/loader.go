package config

import (
	"fmt"

	"github.com/cognicore/phrasenet/pkg/phrasenet"
	"github.com/cognicore/phrasenet/pkg/phrasenet/stoplist"
)

// Loader loads configuration files and constructs components
type Loader struct {
	OptionsPath  string
	StoplistPath string
}

// Components holds all loaded configuration components
type Components struct {
	Builder  *phrasenet.Builder
	Stoplist *stoplist.Manager
	Options  phrasenet.Options
}

// Load reads the configured files and returns initialized components.
// Missing paths fall back to the built-in defaults.
func (l *Loader) Load() (*Components, error) {
	comp := &Components{
		Stoplist: stoplist.Default(),
		Options:  phrasenet.DefaultOptions(),
	}

	if l.StoplistPath != "" {
		sl, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		if sl.ReplaceDefaults {
			comp.Stoplist = stoplist.NewManager(sl.Terms)
		} else {
			comp.Stoplist = stoplist.Default().Merge(sl.Terms...)
		}
	}

	if l.OptionsPath != "" {
		opts, err := LoadOptions(l.OptionsPath)
		if err != nil {
			return nil, fmt.Errorf("load options: %w", err)
		}
		comp.Options = opts.Apply(comp.Options)
		if err := Validate(comp.Options); err != nil {
			return nil, fmt.Errorf("load options: %w", err)
		}
	}

	comp.Builder = phrasenet.New(comp.Stoplist)

	return comp, nil
}
