// Package report builds the explainable session summary handed to the
// presentation and export layers.
package report

import (
	"crypto/rand"
	"fmt"
	"sort"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/inklight/keyscout/pkg/keyscout/cluster"
	"github.com/inklight/keyscout/pkg/keyscout/signal"
	"github.com/inklight/keyscout/pkg/keyscout/strategy"
)

const topKeywordsLimit = 5

// Builder constructs session reports with monotonic ULID identifiers.
type Builder struct {
	entropy *ulid.MonotonicEntropy
}

// New creates a new report builder.
func New() *Builder {
	return &Builder{
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// RankedKeyword is a keyword with its scores, ordered for display.
type RankedKeyword struct {
	Keyword       string
	Difficulty    float64
	Profitability float64
	Band          signal.Band
}

// Report summarizes one research session.
type Report struct {
	ID            string
	GeneratedAt   time.Time
	TotalKeywords int
	BandCounts    map[signal.Band]int
	TopKeywords   []RankedKeyword
	ClusterThemes []string
	BucketCounts  map[strategy.Bucket]int
	Tips          []string
}

// Build assembles a report from a scored batch and its derived insight.
// Clusters and recommendation may be zero-valued when the caller only
// scored keywords.
func (b *Builder) Build(scored []signal.Scored, clusters []cluster.Cluster, rec strategy.Recommendation) Report {
	r := Report{
		ID:            ulid.MustNew(ulid.Now(), b.entropy).String(),
		GeneratedAt:   time.Now().UTC(),
		TotalKeywords: len(scored),
		BandCounts:    make(map[signal.Band]int),
		BucketCounts:  make(map[strategy.Bucket]int),
		Tips:          append([]string(nil), rec.Tips...),
	}

	ranked := make([]RankedKeyword, 0, len(scored))
	for _, sk := range scored {
		r.BandCounts[sk.Band]++
		ranked = append(ranked, RankedKeyword{
			Keyword:       sk.Keyword,
			Difficulty:    sk.Difficulty,
			Profitability: sk.Profitability,
			Band:          sk.Band,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Profitability > ranked[j].Profitability
	})
	if len(ranked) > topKeywordsLimit {
		ranked = ranked[:topKeywordsLimit]
	}
	r.TopKeywords = ranked

	for _, c := range clusters {
		r.ClusterThemes = append(r.ClusterThemes, fmt.Sprintf("%s (%d)", c.Theme, c.Size))
	}

	r.BucketCounts[strategy.BucketHighPotential] = len(rec.HighPotential)
	r.BucketCounts[strategy.BucketAvoid] = len(rec.Avoid)
	r.BucketCounts[strategy.BucketLongTail] = len(rec.LongTail)
	r.BucketCounts[strategy.BucketNiche] = len(rec.Niche)

	return r
}
