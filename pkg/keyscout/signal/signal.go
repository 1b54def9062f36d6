package signal

import (
	"math"
	"strings"
)

// Record is the normalized per-keyword signal bundle assembled from
// upstream collaborators (marketplace, trends). Collaborators fill
// missing fields with zero values; they never surface errors here.
type Record struct {
	Keyword            string    `json:"keyword"`
	SearchResultsCount int64     `json:"search_results_count"`
	AveragePrice       float64   `json:"avg_price"`
	AverageReviews     float64   `json:"avg_reviews"`
	Categories         []string  `json:"categories,omitempty"`
	InterestOverTime   []float64 `json:"interest_over_time,omitempty"`
	AverageInterest    float64   `json:"average_interest"`
}

// Band is the discrete visual tier derived from the profitability score.
type Band string

const (
	BandLow    Band = "low"
	BandInfo   Band = "info"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// Scored is a keyword with its derived opportunity scores. It is never
// mutated after creation; recomputing from the same Record always
// yields identical scores.
type Scored struct {
	Keyword       string  `json:"keyword"`
	Signal        Record  `json:"signal"`
	Difficulty    float64 `json:"difficulty_score"`
	Profitability float64 `json:"profitability_score"`
	Band          Band    `json:"band"`
}

// Normalize returns a copy of the record with the keyword trimmed and
// out-of-domain numeric fields clamped to their documented ranges.
func (r Record) Normalize() Record {
	out := r
	out.Keyword = strings.TrimSpace(r.Keyword)
	if out.SearchResultsCount < 0 {
		out.SearchResultsCount = 0
	}
	if out.AveragePrice < 0 || !isFinite(out.AveragePrice) {
		out.AveragePrice = 0
	}
	if out.AverageReviews < 0 || !isFinite(out.AverageReviews) {
		out.AverageReviews = 0
	}
	if out.AverageInterest < 0 || !isFinite(out.AverageInterest) {
		out.AverageInterest = 0
	}
	if out.AverageInterest > 100 {
		out.AverageInterest = 100
	}
	return out
}

// Valid reports whether the record can be scored at all. A record with
// an empty keyword has nothing to attach a score to.
func (r Record) Valid() bool {
	return strings.TrimSpace(r.Keyword) != ""
}

// WordCount returns the number of whitespace-separated tokens in the
// keyword phrase.
func (r Record) WordCount() int {
	return len(strings.Fields(r.Keyword))
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
