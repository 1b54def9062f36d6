// Package tokenize splits keyword phrases into normalized terms for
// vectorization and frequency analysis.
package tokenize

import (
	"strings"
	"unicode"

	"github.com/inklight/keyscout/pkg/keyscout/stopwords"
)

// Tokenizer handles keyword tokenization and normalization.
type Tokenizer struct {
	stops *stopwords.Set
}

// New creates a tokenizer with the given stop-word set. A nil set
// disables stop-word filtering.
func New(stops *stopwords.Set) *Tokenizer {
	return &Tokenizer{stops: stops}
}

// Terms splits a keyword phrase into lowercase terms, dropping stop
// words and single characters. Letters, digits and inner hyphens are
// kept; everything else separates terms.
func (t *Tokenizer) Terms(keyword string) []string {
	var terms []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		term := cleanTerm(current.String())
		current.Reset()
		if term == "" || len(term) <= 1 {
			return
		}
		if t.stops != nil && t.stops.Contains(term) {
			return
		}
		terms = append(terms, term)
	}

	for _, r := range keyword {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return terms
}

// Words splits a keyword phrase on whitespace without any filtering.
// This is the word count the pattern analyzer and the long-tail rules
// are defined over.
func Words(keyword string) []string {
	return strings.Fields(keyword)
}

// cleanTerm strips leading/trailing hyphens and collapses runs of
// hyphens left by punctuation.
func cleanTerm(term string) string {
	term = strings.Trim(term, "-")
	for strings.Contains(term, "--") {
		term = strings.ReplaceAll(term, "--", "-")
	}
	return term
}
