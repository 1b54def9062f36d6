package cluster

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/inklight/keyscout/pkg/keyscout/tokenize"
)

// ErrEmptyVocabulary is returned when no keyword in the batch yields a
// single indexable term (e.g. everything is stop words).
var ErrEmptyVocabulary = errors.New("cluster: empty vocabulary")

// Vocabulary maps terms to vector dimensions. Terms keep first-seen
// order over the batch, which makes tie-breaks reproducible.
type Vocabulary struct {
	Terms []string
	Index map[string]int
}

// vectorizer builds TF-IDF term-weight vectors over a keyword batch,
// treating each keyword as one document of the corpus.
type vectorizer struct {
	tokenizer   *tokenize.Tokenizer
	maxFeatures int
}

// vectorize converts the batch into a row-per-keyword TF-IDF matrix.
// Rows are L2-normalized so centroid distances reflect term overlap
// rather than phrase length.
func (v *vectorizer) vectorize(keywords []string) (*mat.Dense, Vocabulary, error) {
	termsPerKeyword := make([][]string, len(keywords))
	totalCount := make(map[string]int)
	docFreq := make(map[string]int)
	firstSeen := make(map[string]int)

	for i, kw := range keywords {
		terms := v.tokenizer.Terms(kw)
		termsPerKeyword[i] = terms

		seen := make(map[string]struct{}, len(terms))
		for _, term := range terms {
			if _, ok := firstSeen[term]; !ok {
				firstSeen[term] = len(firstSeen)
			}
			totalCount[term]++
			if _, ok := seen[term]; !ok {
				seen[term] = struct{}{}
				docFreq[term]++
			}
		}
	}

	if len(totalCount) == 0 {
		return nil, Vocabulary{}, ErrEmptyVocabulary
	}

	vocab := buildVocabulary(totalCount, firstSeen, v.maxFeatures)

	n := len(keywords)
	d := len(vocab.Terms)
	data := mat.NewDense(n, d, nil)

	for i, terms := range termsPerKeyword {
		row := make([]float64, d)
		for _, term := range terms {
			j, ok := vocab.Index[term]
			if !ok {
				continue
			}
			row[j]++
		}

		norm := 0.0
		for j := range row {
			if row[j] == 0 {
				continue
			}
			idf := math.Log(float64(1+n)/float64(1+docFreq[vocab.Terms[j]])) + 1
			row[j] *= idf
			norm += row[j] * row[j]
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for j := range row {
				row[j] /= norm
			}
		}
		data.SetRow(i, row)
	}

	return data, vocab, nil
}

// buildVocabulary caps the term set to the most informative terms by
// corpus-wide weight, then restores first-seen ordering so dimension
// indices stay stable for identical input.
func buildVocabulary(totalCount map[string]int, firstSeen map[string]int, maxFeatures int) Vocabulary {
	terms := make([]string, 0, len(totalCount))
	for term := range totalCount {
		terms = append(terms, term)
	}

	if maxFeatures > 0 && len(terms) > maxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if totalCount[terms[i]] != totalCount[terms[j]] {
				return totalCount[terms[i]] > totalCount[terms[j]]
			}
			return firstSeen[terms[i]] < firstSeen[terms[j]]
		})
		terms = terms[:maxFeatures]
	}

	sort.Slice(terms, func(i, j int) bool {
		return firstSeen[terms[i]] < firstSeen[terms[j]]
	})

	index := make(map[string]int, len(terms))
	for i, term := range terms {
		index[term] = i
	}
	return Vocabulary{Terms: terms, Index: index}
}
