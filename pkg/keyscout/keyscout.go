// Package keyscout evaluates candidate book keywords by combining
// competitive and demand signals into comparable opportunity scores,
// thematic clusters and strategy recommendations.
package keyscout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/inklight/keyscout/pkg/keyscout/categories"
	"github.com/inklight/keyscout/pkg/keyscout/cluster"
	"github.com/inklight/keyscout/pkg/keyscout/internalerr"
	"github.com/inklight/keyscout/pkg/keyscout/patterns"
	"github.com/inklight/keyscout/pkg/keyscout/report"
	"github.com/inklight/keyscout/pkg/keyscout/scoring"
	"github.com/inklight/keyscout/pkg/keyscout/signal"
	"github.com/inklight/keyscout/pkg/keyscout/store"
	"github.com/inklight/keyscout/pkg/keyscout/strategy"
)

// SignalSource supplies one signal record per keyword. Implementations
// own their retry and timeout policy and must translate every failure
// into default-valued record fields; they never surface errors here.
type SignalSource interface {
	Gather(ctx context.Context, keywords []string) []signal.Record
}

// Engine is the main research facade. All scoring components are pure
// and the engine is safe for concurrent use; only the optional store
// performs I/O.
type Engine struct {
	scorer      *scoring.Scorer
	analyzer    *patterns.Analyzer
	clusterer   *cluster.Engine
	recommender *strategy.Recommender
	cats        *categories.Table
	reports     *report.Builder
	store       store.Store
}

// Options configures an Engine. Nil components fall back to defaults;
// a nil Store disables persistence.
type Options struct {
	Scorer      *scoring.Scorer
	Analyzer    *patterns.Analyzer
	Clusterer   *cluster.Engine
	Recommender *strategy.Recommender
	Categories  *categories.Table
	Store       store.Store
}

// New creates an Engine with the given dependencies.
func New(opts Options) *Engine {
	e := &Engine{
		scorer:      opts.Scorer,
		analyzer:    opts.Analyzer,
		clusterer:   opts.Clusterer,
		recommender: opts.Recommender,
		cats:        opts.Categories,
		reports:     report.New(),
		store:       opts.Store,
	}
	if e.scorer == nil {
		e.scorer = scoring.NewScorer(scoring.DefaultCalibration())
	}
	if e.analyzer == nil {
		e.analyzer = patterns.NewAnalyzer()
	}
	if e.clusterer == nil {
		e.clusterer = cluster.NewEngine(nil)
	}
	if e.recommender == nil {
		e.recommender = strategy.NewRecommender(strategy.DefaultRules())
	}
	if e.cats == nil {
		e.cats = categories.DefaultTable()
	}
	return e
}

// Close cleanly shuts down the engine's store, if any.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Score derives difficulty, profitability and band from one record.
func (e *Engine) Score(rec signal.Record) signal.Scored {
	return e.scorer.Score(rec)
}

// ScoreBatch scores every record, skipping ones with empty keywords.
func (e *Engine) ScoreBatch(records []signal.Record) []signal.Scored {
	scored := make([]signal.Scored, 0, len(records))
	for _, rec := range records {
		if !rec.Valid() {
			continue
		}
		scored = append(scored, e.scorer.Score(rec))
	}
	return scored
}

// AnalyzePatterns computes lexical statistics over a keyword batch.
func (e *Engine) AnalyzePatterns(keywords []string) patterns.Summary {
	return e.analyzer.Analyze(keywords)
}

// Cluster groups a keyword batch into thematic clusters. k <= 0
// selects cluster count from batch size.
func (e *Engine) Cluster(keywords []string, k int) []cluster.Cluster {
	return e.clusterer.Cluster(keywords, k)
}

// Recommend classifies scored keywords into opportunity buckets.
func (e *Engine) Recommend(scored []signal.Scored) strategy.Recommendation {
	return e.recommender.Recommend(scored)
}

// SessionResult is the full output of one research run.
type SessionResult struct {
	Scored         []signal.Scored
	Patterns       patterns.Summary
	Clusters       []cluster.Cluster
	Recommendation strategy.Recommendation
	Groups         map[string][]string
	Report         report.Report
}

// Research gathers signals for the keyword batch, scores every
// keyword and derives the session-level insight. Signal gathering is
// the only step that can block; everything downstream is pure.
func (e *Engine) Research(ctx context.Context, source SignalSource, keywords []string) (SessionResult, error) {
	keywords = dedupeKeywords(keywords)
	if len(keywords) == 0 {
		return SessionResult{}, fmt.Errorf("research: %w", errNoKeywords)
	}

	var records []signal.Record
	if source != nil {
		records = source.Gather(ctx, keywords)
	} else {
		records = make([]signal.Record, len(keywords))
		for i, kw := range keywords {
			records[i] = signal.Record{Keyword: kw}
		}
	}
	if err := ctx.Err(); err != nil {
		return SessionResult{}, err
	}

	scored := e.ScoreBatch(records)

	result := SessionResult{
		Scored:         scored,
		Patterns:       e.analyzer.Analyze(keywords),
		Clusters:       e.clusterer.Cluster(keywords, 0),
		Recommendation: e.recommender.Recommend(scored),
		Groups:         e.cats.Group(keywords),
	}
	result.Report = e.reports.Build(scored, result.Clusters, result.Recommendation)

	return result, nil
}

// SaveSession persists a research result under the report's ULID.
// It is a no-op error when the engine has no store.
func (e *Engine) SaveSession(ctx context.Context, name string, keywords []string, result SessionResult) (store.Session, error) {
	if e.store == nil {
		return store.Session{}, fmt.Errorf("save session: %w", internalerr.ErrStoreUnavailable)
	}

	data, err := json.Marshal(result)
	if err != nil {
		return store.Session{}, fmt.Errorf("encode session: %w", err)
	}

	if name == "" {
		name = "Search " + time.Now().Format("2006-01-02 15:04")
	}

	sess := store.Session{
		ID:       result.Report.ID,
		Name:     name,
		Keywords: keywords,
		Data:     string(data),
	}
	if err := e.store.SaveSession(ctx, sess); err != nil {
		return store.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

var errNoKeywords = errors.New("no keywords provided")

func dedupeKeywords(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, kw := range in {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	return out
}
