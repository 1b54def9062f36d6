// Package strategy classifies scored keywords into opportunity buckets
// and synthesizes textual guidance for a research session.
package strategy

import (
	"fmt"

	"github.com/inklight/keyscout/pkg/keyscout/signal"
)

// Bucket names a recommendation class.
type Bucket string

const (
	BucketHighPotential Bucket = "high_potential"
	BucketAvoid         Bucket = "avoid"
	BucketLongTail      Bucket = "long_tail_opportunity"
	BucketNiche         Bucket = "niche_opportunity"
)

// ReasonTooCompetitive is attached to every avoid-bucket entry.
const ReasonTooCompetitive = "too competitive"

// Rules holds the classification thresholds. The values are empirical
// calibration parameters; expose them via config rather than retuning.
type Rules struct {
	HighPotentialMinProfit     float64 `yaml:"high_potential_min_profit"`
	HighPotentialMaxDifficulty float64 `yaml:"high_potential_max_difficulty"`
	AvoidMinDifficulty         float64 `yaml:"avoid_min_difficulty"`
	LongTailMinWords           int     `yaml:"long_tail_min_words"`
	LongTailMaxDifficulty      float64 `yaml:"long_tail_max_difficulty"`
	NicheMaxResults            int64   `yaml:"niche_max_results"`
	NicheMinProfit             float64 `yaml:"niche_min_profit"`
	OvercompetitiveRatio       float64 `yaml:"overcompetitive_ratio"`
}

// DefaultRules returns the stock thresholds.
func DefaultRules() Rules {
	return Rules{
		HighPotentialMinProfit:     70,
		HighPotentialMaxDifficulty: 60,
		AvoidMinDifficulty:         80,
		LongTailMinWords:           3,
		LongTailMaxDifficulty:      50,
		NicheMaxResults:            1000,
		NicheMinProfit:             40,
		OvercompetitiveRatio:       0.5,
	}
}

// Pick is a single classified keyword with the fields that justified
// its bucket.
type Pick struct {
	Keyword       string
	Bucket        Bucket
	Difficulty    float64
	Profitability float64
	WordCount     int
	SearchResults int64
	Reason        string
}

// Recommendation is the session-level output: one pick per classified
// keyword plus 0-4 strategy tips.
type Recommendation struct {
	HighPotential []Pick
	Avoid         []Pick
	LongTail      []Pick
	Niche         []Pick
	Tips          []string
}

// Recommender applies the bucket rules to scored keywords.
type Recommender struct {
	rules Rules
}

// NewRecommender creates a recommender; zero-valued rules are replaced
// by DefaultRules.
func NewRecommender(rules Rules) *Recommender {
	if rules == (Rules{}) {
		rules = DefaultRules()
	}
	return &Recommender{rules: rules}
}

// Recommend classifies each scored keyword into at most one bucket.
// Rules are evaluated in priority order; the first match wins, so a
// keyword can never land in two buckets. Keywords matching no rule are
// left unclassified.
func (r *Recommender) Recommend(scored []signal.Scored) Recommendation {
	var rec Recommendation

	for _, sk := range scored {
		pick := Pick{
			Keyword:       sk.Keyword,
			Difficulty:    sk.Difficulty,
			Profitability: sk.Profitability,
			WordCount:     sk.Signal.WordCount(),
			SearchResults: sk.Signal.SearchResultsCount,
		}

		switch {
		case sk.Profitability >= r.rules.HighPotentialMinProfit && sk.Difficulty <= r.rules.HighPotentialMaxDifficulty:
			pick.Bucket = BucketHighPotential
			rec.HighPotential = append(rec.HighPotential, pick)
		case sk.Difficulty >= r.rules.AvoidMinDifficulty:
			pick.Bucket = BucketAvoid
			pick.Reason = ReasonTooCompetitive
			rec.Avoid = append(rec.Avoid, pick)
		case pick.WordCount >= r.rules.LongTailMinWords && sk.Difficulty <= r.rules.LongTailMaxDifficulty:
			pick.Bucket = BucketLongTail
			rec.LongTail = append(rec.LongTail, pick)
		case sk.Signal.SearchResultsCount < r.rules.NicheMaxResults && sk.Profitability >= r.rules.NicheMinProfit:
			pick.Bucket = BucketNiche
			rec.Niche = append(rec.Niche, pick)
		}
	}

	rec.Tips = r.tips(rec, len(scored))
	return rec
}

// tips generates session guidance. Each condition is evaluated
// independently, producing between zero and four tips.
func (r *Recommender) tips(rec Recommendation, total int) []string {
	var tips []string

	if len(rec.HighPotential) > 0 {
		tips = append(tips, fmt.Sprintf("Focus on %d high-potential keywords identified", len(rec.HighPotential)))
	}
	if len(rec.LongTail) > 0 {
		tips = append(tips, fmt.Sprintf("Consider %d long-tail keywords for specific niches", len(rec.LongTail)))
	}
	if total > 0 && float64(len(rec.Avoid)) > r.rules.OvercompetitiveRatio*float64(total) {
		tips = append(tips, "Many keywords are highly competitive - consider more specific, long-tail variations")
	}
	if len(rec.Niche) > 0 {
		tips = append(tips, fmt.Sprintf("Explore %d niche opportunities with low competition", len(rec.Niche)))
	}

	return tips
}
