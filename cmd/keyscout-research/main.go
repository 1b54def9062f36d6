package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/inklight/keyscout/internal/sources"
	"github.com/inklight/keyscout/pkg/keyscout"
	"github.com/inklight/keyscout/pkg/keyscout/config"
	"github.com/inklight/keyscout/pkg/keyscout/expand"
	"github.com/inklight/keyscout/pkg/keyscout/export"
	"github.com/inklight/keyscout/pkg/keyscout/signal"
	"github.com/inklight/keyscout/pkg/keyscout/store/sqlite"
)

func main() {
	var (
		keywordsPath = flag.String("keywords", "", "Keyword list file, one per line (required)")
		signalsPath  = flag.String("signals", "", "Captured signal JSONL file (optional, replaces live gathering)")
		dbPath       = flag.String("db", "", "SQLite database path (optional)")
		configPath   = flag.String("config", "", "YAML configuration file (optional)")
		csvPath      = flag.String("csv", "", "Write scored results as CSV to this path (optional)")
		sessionName  = flag.String("name", "", "Session name (optional)")
		suggest      = flag.Bool("suggest", false, "Expand seeds through autocomplete suggestions")
		variations   = flag.Bool("variations", false, "Expand seeds with long-tail template variations")
	)
	flag.Parse()

	if *keywordsPath == "" {
		log.Fatal("--keywords required")
	}

	// .env values fill in endpoint URLs without committing them to the
	// config file.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}

	ctx := context.Background()

	keywords, err := config.LoadKeywordList(*keywordsPath)
	if err != nil {
		log.Fatal("Failed to load keywords:", err)
	}

	loader := config.Loader{ConfigPath: *configPath}
	components, err := loader.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	if *suggest {
		suggestURL := envOr("KEYSCOUT_SUGGEST_URL", components.Sources.SuggestBaseURL)
		client := sources.NewSuggestClient(suggestURL, "", nil)
		var expanded []string
		for _, kw := range keywords {
			expanded = append(expanded, client.Expand(ctx, kw)...)
		}
		keywords = append(keywords, expanded...)
		log.Printf("Expanded to %d keywords via suggestions", len(keywords))
	}
	if *variations {
		var expanded []string
		for _, kw := range keywords {
			expanded = append(expanded, expand.LongTailVariations(kw)...)
		}
		keywords = append(keywords, expanded...)
		log.Printf("Expanded to %d keywords via template variations", len(keywords))
	}

	opts := keyscout.Options{
		Scorer:      components.Scorer,
		Analyzer:    components.Analyzer,
		Clusterer:   components.Clusterer,
		Recommender: components.Recommender,
		Categories:  components.Categories,
	}

	if *dbPath != "" {
		st, err := sqlite.Open(ctx, *dbPath)
		if err != nil {
			log.Fatal("Failed to open database:", err)
		}
		opts.Store = st
	}

	engine := keyscout.New(opts)
	defer engine.Close()

	source, err := buildSource(*signalsPath, components.Sources)
	if err != nil {
		log.Fatal("Failed to build signal source:", err)
	}

	result, err := engine.Research(ctx, source, keywords)
	if err != nil {
		log.Fatal("Research failed:", err)
	}

	if *dbPath != "" {
		sess, err := engine.SaveSession(ctx, *sessionName, keywords, result)
		if err != nil {
			log.Fatal("Failed to save session:", err)
		}
		log.Printf("Saved session %s (%q)", sess.ID, sess.Name)
	}

	if *csvPath != "" {
		f, err := os.Create(*csvPath)
		if err != nil {
			log.Fatal("Failed to create CSV file:", err)
		}
		if err := export.WriteCSV(f, result.Scored); err != nil {
			f.Close()
			log.Fatal("Failed to write CSV:", err)
		}
		if err := f.Close(); err != nil {
			log.Fatal("Failed to close CSV file:", err)
		}
		log.Printf("Wrote %d scored keywords to %s", len(result.Scored), *csvPath)
	}

	printSummary(result)
}

// buildSource replays a JSONL capture when one is given, otherwise
// assembles live clients from config with .env overrides.
func buildSource(signalsPath string, cfg config.SourceConfig) (keyscout.SignalSource, error) {
	if signalsPath != "" {
		records, err := sources.LoadRecordsJSONL(signalsPath)
		if err != nil {
			return nil, fmt.Errorf("load signals: %w", err)
		}
		return sources.NewStaticSource(records), nil
	}

	marketplaceURL := envOr("KEYSCOUT_MARKETPLACE_URL", cfg.MarketplaceBaseURL)
	trendsURL := envOr("KEYSCOUT_TRENDS_URL", cfg.TrendsBaseURL)
	if marketplaceURL == "" && trendsURL == "" {
		// Offline mode: scores fall back to neutral defaults.
		return nil, nil
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	client := &http.Client{Timeout: timeout}
	if cfg.TimeoutSeconds <= 0 {
		client = nil
	}

	var marketplace *sources.MarketplaceClient
	if marketplaceURL != "" {
		marketplace = sources.NewMarketplaceClient(marketplaceURL, client)
	}
	var trends *sources.TrendsClient
	if trendsURL != "" {
		trends = sources.NewTrendsClient(trendsURL, client)
	}

	return sources.NewGatherer(marketplace, trends, sources.Config{
		Timeout:       timeout,
		MaxConcurrent: cfg.MaxConcurrent,
	}), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func printSummary(result keyscout.SessionResult) {
	rep := result.Report
	fmt.Printf("Report %s\n", rep.ID)
	fmt.Printf("  Keywords scored: %d\n", rep.TotalKeywords)
	for _, band := range []signal.Band{signal.BandHigh, signal.BandMedium, signal.BandInfo, signal.BandLow} {
		if n := rep.BandCounts[band]; n > 0 {
			fmt.Printf("  %-6s %d\n", band, n)
		}
	}
	if len(rep.TopKeywords) > 0 {
		fmt.Println("  Top keywords:")
		for _, kw := range rep.TopKeywords {
			fmt.Printf("    %-40s difficulty %5.1f  profitability %5.1f\n",
				kw.Keyword, kw.Difficulty, kw.Profitability)
		}
	}
	if len(rep.ClusterThemes) > 0 {
		fmt.Println("  Cluster themes:")
		for _, theme := range rep.ClusterThemes {
			fmt.Printf("    %s\n", theme)
		}
	}
	for _, tip := range rep.Tips {
		fmt.Printf("  Tip: %s\n", tip)
	}
}
