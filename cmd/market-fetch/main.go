package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/inklight/keyscout/internal/sources"
	"github.com/inklight/keyscout/pkg/keyscout/config"
	"github.com/inklight/keyscout/pkg/keyscout/signal"
)

const fetchDelay = 2 * time.Second

func main() {
	var (
		keywordsPath = flag.String("keywords", "", "Keyword list file, one per line (required)")
		outPath      = flag.String("out", "", "Output JSONL path (required)")
		baseURL      = flag.String("base", "", "Marketplace search base URL (or KEYSCOUT_MARKETPLACE_URL)")
		trendsURL    = flag.String("trends", "", "Trends endpoint base URL (or KEYSCOUT_TRENDS_URL)")
		seasonal     = flag.Bool("seasonal", false, "Also report seasonal interest per keyword")
	)
	flag.Parse()

	if *keywordsPath == "" {
		log.Fatal("--keywords required")
	}
	if *outPath == "" {
		log.Fatal("--out required")
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env: %v", err)
	}
	marketplaceURL := *baseURL
	if marketplaceURL == "" {
		marketplaceURL = os.Getenv("KEYSCOUT_MARKETPLACE_URL")
	}
	if marketplaceURL == "" {
		log.Fatal("--base or KEYSCOUT_MARKETPLACE_URL required")
	}
	interestURL := *trendsURL
	if interestURL == "" {
		interestURL = os.Getenv("KEYSCOUT_TRENDS_URL")
	}

	keywords, err := config.LoadKeywordList(*keywordsPath)
	if err != nil {
		log.Fatal("Failed to load keywords:", err)
	}

	ctx := context.Background()
	marketplace := sources.NewMarketplaceClient(marketplaceURL, nil)
	var trends *sources.TrendsClient
	if interestURL != "" {
		trends = sources.NewTrendsClient(interestURL, nil)
	}

	log.Printf("Fetching signals for %d keywords...", len(keywords))

	records := make([]signal.Record, 0, len(keywords))
	for i, kw := range keywords {
		rec := signal.Record{Keyword: kw}

		comp, err := marketplace.Competition(ctx, kw)
		if err != nil {
			log.Printf("Warning: marketplace fetch failed for %q: %v", kw, err)
		} else {
			rec.SearchResultsCount = comp.SearchResultsCount
			rec.AveragePrice = comp.AveragePrice
			rec.AverageReviews = comp.AverageReviews
			rec.Categories = comp.Categories
		}

		if trends != nil {
			series, err := trends.Interest(ctx, kw)
			if err != nil {
				log.Printf("Warning: trends fetch failed for %q: %v", kw, err)
			} else {
				rec.InterestOverTime = series.InterestOverTime
				rec.AverageInterest = series.AverageInterest
			}

			if *seasonal {
				summary, err := trends.Seasonal(ctx, kw)
				if err != nil {
					log.Printf("Warning: seasonal fetch failed for %q: %v", kw, err)
				} else if len(summary.PeakMonths) > 0 {
					log.Printf("%s: peak months %v, low months %v", kw, summary.PeakMonths, summary.LowMonths)
				}
			}
		}

		records = append(records, rec)
		log.Printf("[%d/%d] %s: %d results", i+1, len(keywords), kw, rec.SearchResultsCount)

		if i < len(keywords)-1 {
			time.Sleep(fetchDelay)
		}
	}

	f, err := os.Create(*outPath)
	if err != nil {
		log.Fatal("Failed to create output file:", err)
	}
	if err := sources.WriteRecordsJSONL(f, records); err != nil {
		f.Close()
		log.Fatal("Failed to write records:", err)
	}
	if err := f.Close(); err != nil {
		log.Fatal("Failed to close output file:", err)
	}

	log.Printf("Wrote %d records to %s", len(records), *outPath)
}
