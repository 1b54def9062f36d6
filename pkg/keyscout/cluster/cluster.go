// Package cluster groups keyword batches into thematic clusters using
// TF-IDF vectors and seeded k-means, and labels each cluster with its
// dominant terms.
package cluster

import (
	"sort"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/inklight/keyscout/pkg/keyscout/stopwords"
	"github.com/inklight/keyscout/pkg/keyscout/tokenize"
)

const (
	// DefaultSeed fixes k-means initialization so cluster assignments
	// are reproducible for identical input.
	DefaultSeed = 42

	defaultMaxFeatures = 1000
	defaultMaxIter     = 100
	themeTerms         = 3

	minAutoClusters = 2
	maxAutoClusters = 8
	keywordsPerAuto = 3
)

// Sentinel themes for degenerate batches.
const (
	ThemeSingleKeyword = "single keyword"
	ThemeUnclustered   = "unclustered"
)

// Cluster is one thematic group of keywords. Clusters partition the
// input batch: every keyword appears in exactly one cluster.
type Cluster struct {
	ID      int
	Members []string
	Theme   string
	Size    int
}

// Engine clusters keyword batches. It is pure and stateless; the same
// batch always yields the same clusters.
type Engine struct {
	vec     *vectorizer
	seed    int64
	maxIter int
}

// Option customizes an Engine.
type Option func(*Engine)

// WithSeed overrides the deterministic k-means seed. Tests use this to
// assert exact assignments.
func WithSeed(seed int64) Option {
	return func(e *Engine) { e.seed = seed }
}

// WithMaxFeatures caps the vocabulary size.
func WithMaxFeatures(n int) Option {
	return func(e *Engine) { e.vec.maxFeatures = n }
}

// NewEngine creates a clustering engine. A nil stop-word set falls
// back to the built-in English list.
func NewEngine(stops *stopwords.Set, opts ...Option) *Engine {
	if stops == nil {
		stops = stopwords.English()
	}
	e := &Engine{
		vec: &vectorizer{
			tokenizer:   tokenize.New(stops),
			maxFeatures: defaultMaxFeatures,
		},
		seed:    DefaultSeed,
		maxIter: defaultMaxIter,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Cluster partitions the batch into at most k thematic groups. k <= 0
// selects cluster count from batch size. Degenerate input never fails:
// fewer than two keywords yield one sentinel cluster, and a batch with
// no indexable terms falls back to a single "unclustered" group.
func (e *Engine) Cluster(keywords []string, k int) []Cluster {
	switch len(keywords) {
	case 0:
		return []Cluster{}
	case 1:
		return []Cluster{{
			ID:      0,
			Members: append([]string(nil), keywords...),
			Theme:   ThemeSingleKeyword,
			Size:    1,
		}}
	}

	if k <= 0 {
		k = len(keywords) / keywordsPerAuto
		if k < minAutoClusters {
			k = minAutoClusters
		}
		if k > maxAutoClusters {
			k = maxAutoClusters
		}
	}
	if k < 1 {
		k = 1
	}
	if k > len(keywords) {
		k = len(keywords)
	}

	data, vocab, err := e.vec.vectorize(keywords)
	if err != nil {
		return []Cluster{{
			ID:      0,
			Members: append([]string(nil), keywords...),
			Theme:   ThemeUnclustered,
			Size:    len(keywords),
		}}
	}

	assignments, centroids := lloyd(data, k, e.seed, e.maxIter)

	members := make(map[int][]string)
	for i, kw := range keywords {
		members[assignments[i]] = append(members[assignments[i]], kw)
	}

	ids := make([]int, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	clusters := make([]Cluster, 0, len(ids))
	for _, id := range ids {
		clusters = append(clusters, Cluster{
			ID:      id,
			Members: members[id],
			Theme:   theme(centroids, id, vocab),
			Size:    len(members[id]),
		})
	}

	// Largest clusters first; ties keep internal cluster-index order.
	sort.SliceStable(clusters, func(i, j int) bool {
		return clusters[i].Size > clusters[j].Size
	})

	return clusters
}

// theme labels a cluster with the terms weighted highest in its
// centroid. Ties break toward earlier vocabulary positions.
func theme(centroids *mat.Dense, id int, vocab Vocabulary) string {
	weights := mat.Row(nil, id, centroids)

	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return weights[order[i]] > weights[order[j]]
	})

	var terms []string
	for _, j := range order {
		if len(terms) == themeTerms {
			break
		}
		if weights[j] <= 0 {
			break
		}
		terms = append(terms, vocab.Terms[j])
	}
	if len(terms) == 0 {
		return ThemeUnclustered
	}
	return strings.Join(terms, " + ")
}
