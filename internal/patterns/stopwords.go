package patterns

import (
	"strings"
	"unicode"
)

// #region stopwords
// stopwords contains common English words that never anchor a pattern alone.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true,
	"was": true, "were": true, "do": true, "does": true, "did": true,
	"have": true, "has": true, "had": true, "be": true, "been": true,
	"being": true, "will": true, "would": true, "could": true, "should": true,
	"may": true, "might": true, "can": true, "shall": true, "not": true,
	"no": true, "and": true, "or": true, "but": true, "if": true,
	"then": true, "than": true, "so": true, "as": true, "at": true,
	"by": true, "for": true, "from": true, "in": true, "into": true,
	"of": true, "on": true, "to": true, "with": true, "about": true,
	"up": true, "out": true, "it": true, "its": true, "this": true,
	"that": true, "what": true, "which": true, "who": true, "how": true,
	"when": true, "where": true, "why": true, "you": true, "me": true,
	"i": true, "my": true, "your": true, "we": true, "they": true,
	"he": true, "she": true, "her": true, "him": true, "us": true,
	"them": true,
}

// tokenizeOrdered splits text into lowercase letter-only tokens, preserving
// order and duplicates so contiguous sub-sequences stay intact.
func tokenizeOrdered(text string) []string {
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	tokens := words[:0]
	for _, w := range words {
		if len(w) < 2 {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// allStopwords reports whether every token in the window is a stopword.
func allStopwords(window []string) bool {
	for _, w := range window {
		if !stopwords[w] {
			return false
		}
	}
	return true
}

// #endregion stopwords
