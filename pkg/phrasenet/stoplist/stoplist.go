package stoplist

import "sort"

// Manager holds an immutable stopword set. It is built once and shared
// read-only between builder runs.
type Manager struct {
	stops map[string]struct{}
}

// NewManager creates a stoplist from the given terms.
// Terms are stored verbatim; callers pass normalized (lowercase) words.
func NewManager(terms []string) *Manager {
	stops := make(map[string]struct{}, len(terms))
	for _, s := range terms {
		if s == "" {
			continue
		}
		stops[s] = struct{}{}
	}
	return &Manager{stops: stops}
}

// Default returns the combined Portuguese and English stoplist.
func Default() *Manager {
	return defaultManager
}

// IsStop checks if a token is a stopword
func (m *Manager) IsStop(token string) bool {
	if m == nil {
		return false
	}
	_, ok := m.stops[token]
	return ok
}

// Len returns the number of distinct stopwords.
func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.stops)
}

// All returns all stopwords in lexicographic order
func (m *Manager) All() []string {
	if m == nil {
		return []string{}
	}
	result := make([]string, 0, len(m.stops))
	for s := range m.stops {
		result = append(result, s)
	}
	sort.Strings(result)
	return result
}

// Merge returns a new manager holding this set plus extra.
// The receiver is left untouched.
func (m *Manager) Merge(extra ...string) *Manager {
	terms := append(m.All(), extra...)
	return NewManager(terms)
}

// Filter removes stopwords from tokens. Survivors keep their relative order,
// so tokens on either side of a removed word become adjacent.
func (m *Manager) Filter(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if m.IsStop(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
