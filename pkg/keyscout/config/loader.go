package config

import (
	"fmt"

	"github.com/inklight/keyscout/pkg/keyscout/categories"
	"github.com/inklight/keyscout/pkg/keyscout/cluster"
	"github.com/inklight/keyscout/pkg/keyscout/patterns"
	"github.com/inklight/keyscout/pkg/keyscout/scoring"
	"github.com/inklight/keyscout/pkg/keyscout/stopwords"
	"github.com/inklight/keyscout/pkg/keyscout/strategy"
)

// Loader loads the configuration file and constructs components.
type Loader struct {
	ConfigPath string
}

// Components holds the assembled engine components.
type Components struct {
	Scorer      *scoring.Scorer
	Analyzer    *patterns.Analyzer
	Clusterer   *cluster.Engine
	Recommender *strategy.Recommender
	Categories  *categories.Table
	Stopwords   *stopwords.Set
	Sources     SourceConfig
}

// Load reads the configuration (or uses defaults when no path is set)
// and returns initialized components.
func (l *Loader) Load() (*Components, error) {
	var file File
	if l.ConfigPath != "" {
		loaded, err := Load(l.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		file = *loaded
	}

	comp := &Components{Sources: file.Sources}

	if file.Calibration != nil {
		comp.Scorer = scoring.NewScorer(*file.Calibration)
	} else {
		comp.Scorer = scoring.NewScorer(scoring.DefaultCalibration())
	}

	comp.Analyzer = patterns.NewAnalyzer()

	stops := stopwords.English()
	if len(file.Stopwords.Extra) > 0 || len(file.Stopwords.Remove) > 0 {
		stops = stops.With(file.Stopwords.Extra, file.Stopwords.Remove)
	}
	comp.Stopwords = stops

	var clusterOpts []cluster.Option
	if file.Cluster.Seed != 0 {
		clusterOpts = append(clusterOpts, cluster.WithSeed(file.Cluster.Seed))
	}
	if file.Cluster.MaxFeatures > 0 {
		clusterOpts = append(clusterOpts, cluster.WithMaxFeatures(file.Cluster.MaxFeatures))
	}
	comp.Clusterer = cluster.NewEngine(stops, clusterOpts...)

	if file.Rules != nil {
		comp.Recommender = strategy.NewRecommender(*file.Rules)
	} else {
		comp.Recommender = strategy.NewRecommender(strategy.DefaultRules())
	}

	if len(file.Categories) > 0 {
		comp.Categories = categories.NewTable(file.Categories)
	} else {
		comp.Categories = categories.DefaultTable()
	}

	return comp, nil
}
