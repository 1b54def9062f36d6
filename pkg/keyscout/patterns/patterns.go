// Package patterns computes lexical statistics over a keyword batch.
package patterns

import (
	"math"
	"sort"
	"strings"

	"github.com/inklight/keyscout/pkg/keyscout/tokenize"
)

// Defaults for the intent word tables.
var (
	defaultQuestionWords = []string{"how", "what", "why", "when", "where", "who", "which"}
	defaultActionWords   = []string{"buy", "get", "find", "learn", "make", "create", "build", "start"}
)

const (
	longTailMinWords = 3
	commonWordsLimit = 10
	minCommonWordLen = 3
)

// TermCount pairs a term with its occurrence count across the batch.
type TermCount struct {
	Term  string
	Count int
}

// Summary is a read-only snapshot of a keyword batch.
type Summary struct {
	AverageLength         float64
	LongTailPercent       float64
	WordCountDistribution map[int]int
	QuestionKeywords      []string
	ActionKeywords        []string
	CommonWords           []TermCount
}

// Analyzer characterizes keyword batches. The question/action word
// tables are fixed at construction; there is no process-wide state.
type Analyzer struct {
	questionWords map[string]struct{}
	actionWords   []string
	tokenizer     *tokenize.Tokenizer
}

// Option customizes an Analyzer.
type Option func(*Analyzer)

// WithQuestionWords overrides the question-intent first-word table.
func WithQuestionWords(words []string) Option {
	return func(a *Analyzer) {
		a.questionWords = make(map[string]struct{}, len(words))
		for _, w := range words {
			a.questionWords[strings.ToLower(w)] = struct{}{}
		}
	}
}

// WithActionWords overrides the action-intent substring table.
func WithActionWords(words []string) Option {
	return func(a *Analyzer) {
		a.actionWords = make([]string, len(words))
		for i, w := range words {
			a.actionWords[i] = strings.ToLower(w)
		}
	}
}

// NewAnalyzer creates an analyzer with the default intent tables.
func NewAnalyzer(opts ...Option) *Analyzer {
	a := &Analyzer{tokenizer: tokenize.New(nil)}
	WithQuestionWords(defaultQuestionWords)(a)
	WithActionWords(defaultActionWords)(a)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Analyze computes the batch summary. An empty batch yields an
// all-zero summary, never an error. The averages and distributions are
// order-independent; common-word ties rank in first-seen order.
func (a *Analyzer) Analyze(keywords []string) Summary {
	summary := Summary{
		WordCountDistribution: make(map[int]int),
		QuestionKeywords:      []string{},
		ActionKeywords:        []string{},
		CommonWords:           []TermCount{},
	}
	if len(keywords) == 0 {
		return summary
	}

	totalWords := 0
	longTail := 0
	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for _, kw := range keywords {
		words := tokenize.Words(kw)
		totalWords += len(words)
		summary.WordCountDistribution[len(words)]++
		if len(words) >= longTailMinWords {
			longTail++
		}

		lower := strings.ToLower(kw)
		if len(words) > 0 {
			if _, ok := a.questionWords[strings.ToLower(words[0])]; ok {
				summary.QuestionKeywords = append(summary.QuestionKeywords, kw)
			}
		}
		for _, action := range a.actionWords {
			if strings.Contains(lower, action) {
				summary.ActionKeywords = append(summary.ActionKeywords, kw)
				break
			}
		}

		for _, term := range a.tokenizer.Terms(kw) {
			if len(term) < minCommonWordLen {
				continue
			}
			if _, ok := firstSeen[term]; !ok {
				firstSeen[term] = len(firstSeen)
			}
			counts[term]++
		}
	}

	summary.AverageLength = round2(float64(totalWords) / float64(len(keywords)))
	summary.LongTailPercent = round2(float64(longTail) / float64(len(keywords)) * 100)
	summary.CommonWords = topTerms(counts, firstSeen, commonWordsLimit)

	return summary
}

// topTerms ranks terms by count descending; ties keep first-seen order
// so the ranking is stable regardless of map iteration.
func topTerms(counts map[string]int, firstSeen map[string]int, limit int) []TermCount {
	terms := make([]TermCount, 0, len(counts))
	for term, count := range counts {
		terms = append(terms, TermCount{Term: term, Count: count})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].Count != terms[j].Count {
			return terms[i].Count > terms[j].Count
		}
		return firstSeen[terms[i].Term] < firstSeen[terms[j].Term]
	})
	if len(terms) > limit {
		terms = terms[:limit]
	}
	return terms
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
