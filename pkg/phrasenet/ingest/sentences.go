package ingest

import "strings"

// isSentenceBreak reports whether r ends a sentence-like segment.
func isSentenceBreak(r rune) bool {
	switch r {
	case '\n', '.', '!', '?':
		return true
	}
	return false
}

// SplitSentences splits text on runs of newlines and terminal punctuation.
// Pieces are trimmed and empty ones discarded; document order is preserved.
func SplitSentences(text string) []string {
	pieces := strings.FieldsFunc(text, isSentenceBreak)
	sentences := make([]string, 0, len(pieces))
	for _, p := range pieces {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		sentences = append(sentences, p)
	}
	return sentences
}
