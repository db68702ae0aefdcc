package ingest

import (
	"strings"
	"unicode"
)

// Characters replaced by a space before splitting. Apostrophes are kept so
// contractions and possessives survive as single tokens.
var punctuation = strings.NewReplacer(
	"“", " ", "”", " ", `"`, " ",
	"(", " ", ")", " ", "[", " ", "]", " ",
	",", " ", ";", " ", ":", " ",
	"-", " ", "—", " ", "–", " ",
	"«", " ", "»", " ", "<", " ", ">", " ",
)

// apostrophes trimmed from token boundaries by Normalize
const apostrophes = "'’"

// Tokenize splits a sentence into raw word tokens in reading order.
// Punctuation is stripped but case is left untouched.
func Tokenize(sentence string) []string {
	return strings.FieldsFunc(punctuation.Replace(sentence), unicode.IsSpace)
}

// Normalize lowercases a token and strips leading and trailing apostrophes.
// Interior apostrophes ("don't", "cat's") are kept.
func Normalize(token string) string {
	return strings.Trim(strings.ToLower(token), apostrophes)
}

// NormalizeAll normalizes tokens and drops those that end up empty.
func NormalizeAll(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if n := Normalize(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}
