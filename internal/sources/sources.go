// Package sources gathers competitive and demand signals for keyword
// batches. Every source failure is translated into default-valued
// record fields so the scoring core downstream never sees an error.
package sources

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/inklight/keyscout/pkg/keyscout/signal"
)

const (
	defaultTimeout       = 15 * time.Second
	defaultMaxConcurrent = 4
)

// Config controls gathering behavior.
type Config struct {
	// Timeout bounds each upstream call per keyword.
	Timeout time.Duration
	// MaxConcurrent bounds how many keywords are in flight at once.
	MaxConcurrent int
}

// Gatherer fans keyword batches out to the signal sources with bounded
// concurrency and per-keyword failure isolation.
type Gatherer struct {
	marketplace *MarketplaceClient
	trends      *TrendsClient
	timeout     time.Duration
	maxInFlight int
}

// NewGatherer creates a gatherer. Either client may be nil, in which
// case its fields stay at their zero defaults.
func NewGatherer(marketplace *MarketplaceClient, trends *TrendsClient, cfg Config) *Gatherer {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxInFlight := cfg.MaxConcurrent
	if maxInFlight <= 0 {
		maxInFlight = defaultMaxConcurrent
	}
	return &Gatherer{
		marketplace: marketplace,
		trends:      trends,
		timeout:     timeout,
		maxInFlight: maxInFlight,
	}
}

// Gather returns one record per keyword, in input order. A keyword
// whose sources all fail still produces a record with zero-valued
// signal fields; the scoring core treats those as unknowns.
func (g *Gatherer) Gather(ctx context.Context, keywords []string) []signal.Record {
	records := make([]signal.Record, len(keywords))

	sem := make(chan struct{}, g.maxInFlight)
	var wg sync.WaitGroup

	for i, kw := range keywords {
		wg.Add(1)
		go func(i int, kw string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			records[i] = g.gatherOne(ctx, kw)
		}(i, kw)
	}
	wg.Wait()

	return records
}

func (g *Gatherer) gatherOne(ctx context.Context, keyword string) signal.Record {
	rec := signal.Record{Keyword: keyword}

	if g.marketplace != nil {
		cctx, cancel := context.WithTimeout(ctx, g.timeout)
		comp, err := g.marketplace.Competition(cctx, keyword)
		cancel()
		if err != nil {
			log.Printf("Warning: marketplace signals unavailable for %q: %v", keyword, err)
		} else {
			rec.SearchResultsCount = comp.SearchResultsCount
			rec.AveragePrice = comp.AveragePrice
			rec.AverageReviews = comp.AverageReviews
			rec.Categories = comp.Categories
		}
	}

	if g.trends != nil {
		cctx, cancel := context.WithTimeout(ctx, g.timeout)
		trend, err := g.trends.Interest(cctx, keyword)
		cancel()
		if err != nil {
			log.Printf("Warning: trend signals unavailable for %q: %v", keyword, err)
		} else {
			rec.InterestOverTime = trend.InterestOverTime
			rec.AverageInterest = trend.AverageInterest
		}
	}

	return rec
}
