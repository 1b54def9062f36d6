package sources

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/inklight/keyscout/pkg/keyscout/categories"
)

// Competition level labels, coarse tiers over the raw result count.
const (
	LevelNone     = "No competition"
	LevelLow      = "Low competition"
	LevelMedium   = "Medium competition"
	LevelHigh     = "High competition"
	LevelVeryHigh = "Very high competition"
)

const maxListings = 20

var (
	resultsOfRe    = regexp.MustCompile(`(?i)of\s+(?:over\s+)?([0-9,]+)\s+results`)
	resultsPlainRe = regexp.MustCompile(`(?i)([0-9,]+)\s+results`)
	numberRe       = regexp.MustCompile(`[0-9][0-9,]*`)
	priceRe        = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)
)

// CompetitionData bundles the marketplace-side signals for a keyword.
type CompetitionData struct {
	SearchResultsCount int64
	AveragePrice       float64
	AverageReviews     float64
	Categories         []string
	Level              string
}

// Listing is one search-result entry parsed from the page.
type Listing struct {
	Title   string
	Price   float64
	Reviews int64
}

// MarketplaceClient fetches and parses bookstore search pages.
type MarketplaceClient struct {
	baseURL string
	client  *http.Client
	cats    *categories.Table
}

// NewMarketplaceClient creates a client for the given search base URL.
// A nil http.Client uses http.DefaultClient.
func NewMarketplaceClient(baseURL string, client *http.Client) *MarketplaceClient {
	if client == nil {
		client = http.DefaultClient
	}
	return &MarketplaceClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		cats:    categories.DefaultTable(),
	}
}

// Competition fetches the search page for a keyword and aggregates the
// competitive signals from it.
func (c *MarketplaceClient) Competition(ctx context.Context, keyword string) (CompetitionData, error) {
	searchURL := fmt.Sprintf("%s/s?k=%s&i=stripbooks", c.baseURL, url.QueryEscape(keyword))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return CompetitionData{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.client.Do(req)
	if err != nil {
		return CompetitionData{}, fmt.Errorf("fetch search page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return CompetitionData{}, fmt.Errorf("search page status %d", resp.StatusCode)
	}

	page, err := ParseSearchPage(resp.Body)
	if err != nil {
		return CompetitionData{}, err
	}

	return c.aggregate(page), nil
}

func (c *MarketplaceClient) aggregate(page SearchPage) CompetitionData {
	data := CompetitionData{
		SearchResultsCount: page.TotalResults,
		Level:              CompetitionLevel(page.TotalResults),
	}

	var priceSum float64
	var priceCount int
	var reviewSum float64
	var reviewCount int
	catSet := make(map[string]struct{})

	for i, listing := range page.Listings {
		if listing.Price > 0 {
			priceSum += listing.Price
			priceCount++
		}
		if listing.Reviews > 0 {
			reviewSum += float64(listing.Reviews)
			reviewCount++
		}
		// Only the top listings say much about the niche.
		if i < 5 {
			if cat := c.cats.Categorize(listing.Title); cat != categories.Other {
				catSet[cat] = struct{}{}
			}
		}
	}

	if priceCount > 0 {
		data.AveragePrice = priceSum / float64(priceCount)
	}
	if reviewCount > 0 {
		data.AverageReviews = reviewSum / float64(reviewCount)
	}
	for cat := range catSet {
		data.Categories = append(data.Categories, cat)
	}

	return data
}

// CompetitionLevel labels a raw result count.
func CompetitionLevel(resultsCount int64) string {
	switch {
	case resultsCount == 0:
		return LevelNone
	case resultsCount < 1_000:
		return LevelLow
	case resultsCount < 10_000:
		return LevelMedium
	case resultsCount < 50_000:
		return LevelHigh
	default:
		return LevelVeryHigh
	}
}

// SearchPage is the parsed form of one marketplace search result page.
type SearchPage struct {
	TotalResults int64
	Listings     []Listing
}

// ParseSearchPage extracts the result count and per-listing details
// from a search page document.
func ParseSearchPage(r io.Reader) (SearchPage, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return SearchPage{}, fmt.Errorf("parse html: %w", err)
	}

	var page SearchPage
	walk(doc, func(n *html.Node) {
		if n.Type != html.ElementNode {
			return
		}
		if attrVal(n, "data-component-type") == "s-search-result" {
			if len(page.Listings) < maxListings {
				if listing, ok := parseListing(n); ok {
					page.Listings = append(page.Listings, listing)
				}
			}
			return
		}
		if page.TotalResults == 0 {
			if count, ok := parseResultsCount(textOf(n)); ok {
				page.TotalResults = count
			}
		}
	})

	return page, nil
}

// parseResultsCount matches "1-16 of over 50,000 results" and plain
// "50,000 results" phrasings.
func parseResultsCount(text string) (int64, bool) {
	if m := resultsOfRe.FindStringSubmatch(text); m != nil {
		return parseCommaInt(m[1])
	}
	if m := resultsPlainRe.FindStringSubmatch(text); m != nil {
		return parseCommaInt(m[1])
	}
	return 0, false
}

func parseListing(n *html.Node) (Listing, bool) {
	var listing Listing

	walk(n, func(child *html.Node) {
		if child.Type != html.ElementNode {
			return
		}
		class := attrVal(child, "class")
		switch {
		case listing.Title == "" && child.Data == "h2":
			listing.Title = strings.TrimSpace(textOf(child))
		case listing.Price == 0 && hasClass(class, "a-price-whole", "a-offscreen"):
			if m := priceRe.FindString(textOf(child)); m != "" {
				listing.Price, _ = strconv.ParseFloat(m, 64)
			}
		case listing.Reviews == 0 && hasClass(class, "a-size-base", "s-underline-text"):
			if m := numberRe.FindString(textOf(child)); m != "" {
				if v, ok := parseCommaInt(m); ok {
					listing.Reviews = v
				}
			}
		}
	})

	return listing, listing.Title != ""
}

// walk runs fn over n and all of its descendants, depth first.
func walk(n *html.Node, fn func(*html.Node)) {
	fn(n)
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		walk(child, fn)
	}
}

func attrVal(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

func hasClass(class string, names ...string) bool {
	for _, field := range strings.Fields(class) {
		for _, name := range names {
			if field == name {
				return true
			}
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(child *html.Node) {
		if child.Type == html.TextNode {
			sb.WriteString(child.Data)
		}
	})
	return sb.String()
}

func parseCommaInt(s string) (int64, bool) {
	v, err := strconv.ParseInt(strings.ReplaceAll(s, ",", ""), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
