// Package config loads the calibration tables and assembles engine
// components. All tunable constants (score buckets, weights, rule
// thresholds, category cues) live here so implementers can retune
// without code changes.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inklight/keyscout/pkg/keyscout/internalerr"
	"github.com/inklight/keyscout/pkg/keyscout/scoring"
	"github.com/inklight/keyscout/pkg/keyscout/strategy"
)

// File is the top-level YAML configuration.
type File struct {
	Calibration *scoring.Calibration `yaml:"calibration"`
	Rules       *strategy.Rules      `yaml:"rules"`
	Cluster     ClusterConfig        `yaml:"cluster"`
	Categories  map[string][]string  `yaml:"categories"`
	Stopwords   StopwordConfig       `yaml:"stopwords"`
	Sources     SourceConfig         `yaml:"sources"`
}

// ClusterConfig tunes the clustering engine.
type ClusterConfig struct {
	Seed        int64 `yaml:"seed"`
	MaxFeatures int   `yaml:"max_features"`
}

// StopwordConfig adds or removes words from the built-in English list.
type StopwordConfig struct {
	Extra  []string `yaml:"extra"`
	Remove []string `yaml:"remove"`
}

// SourceConfig configures the signal-gathering collaborators.
type SourceConfig struct {
	MarketplaceBaseURL string `yaml:"marketplace_base_url"`
	SuggestBaseURL     string `yaml:"suggest_base_url"`
	TrendsBaseURL      string `yaml:"trends_base_url"`
	TimeoutSeconds     int    `yaml:"timeout_seconds"`
	MaxConcurrent      int    `yaml:"max_concurrent"`
}

// Load reads a YAML configuration file. A missing file is not an
// error for the caller to special-case; pass an empty path to get
// defaults via Loader.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse config %s: %w: %v", path, internalerr.ErrInvalidConfig, err)
	}

	return &f, nil
}

// LoadKeywordList reads a plain-text keyword file: one keyword per
// line, blank lines and #-comments skipped.
func LoadKeywordList(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keyword list %s: %w", path, err)
	}

	var keywords []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		keywords = append(keywords, line)
	}
	return keywords, nil
}
