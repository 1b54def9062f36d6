package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"
)

const (
	timeframeYear    = "12m"
	timeframeFiveYrs = "5y"
	seasonalTopN     = 3
)

// InterestSeries is the demand signal for one keyword over roughly the
// last twelve months, on the usual 0..100 relative scale.
type InterestSeries struct {
	InterestOverTime []float64
	AverageInterest  float64
}

// SeasonalSummary aggregates a multi-year interest timeline by calendar
// month so seasonal niches (gift guides, exam prep) stand out.
type SeasonalSummary struct {
	MonthlyAverages map[time.Month]float64
	PeakMonths      []time.Month
	LowMonths       []time.Month
}

type interestPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type interestResponse struct {
	Timeline []interestPoint `json:"timeline"`
}

// TrendsClient fetches relative search-interest timelines from an
// interest API endpoint.
type TrendsClient struct {
	baseURL string
	client  *http.Client
}

// NewTrendsClient creates a client against the given endpoint base URL.
func NewTrendsClient(baseURL string, client *http.Client) *TrendsClient {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &TrendsClient{baseURL: baseURL, client: client}
}

// Interest fetches the last year of relative interest for a keyword and
// its mean. An empty timeline yields a zero series, not an error.
func (c *TrendsClient) Interest(ctx context.Context, keyword string) (InterestSeries, error) {
	points, err := c.timeline(ctx, keyword, timeframeYear)
	if err != nil {
		return InterestSeries{}, err
	}

	series := InterestSeries{InterestOverTime: make([]float64, 0, len(points))}
	var sum float64
	for _, p := range points {
		series.InterestOverTime = append(series.InterestOverTime, p.Value)
		sum += p.Value
	}
	if len(points) > 0 {
		series.AverageInterest = sum / float64(len(points))
	}
	return series, nil
}

// Seasonal fetches five years of interest and averages it by calendar
// month. Points whose dates cannot be parsed are skipped.
func (c *TrendsClient) Seasonal(ctx context.Context, keyword string) (SeasonalSummary, error) {
	points, err := c.timeline(ctx, keyword, timeframeFiveYrs)
	if err != nil {
		return SeasonalSummary{}, err
	}

	sums := make(map[time.Month]float64)
	counts := make(map[time.Month]int)
	for _, p := range points {
		t, perr := time.Parse("2006-01-02", p.Date)
		if perr != nil {
			continue
		}
		sums[t.Month()] += p.Value
		counts[t.Month()]++
	}

	summary := SeasonalSummary{MonthlyAverages: make(map[time.Month]float64, len(sums))}
	months := make([]time.Month, 0, len(sums))
	for m, s := range sums {
		summary.MonthlyAverages[m] = s / float64(counts[m])
		months = append(months, m)
	}

	sort.Slice(months, func(i, j int) bool {
		ai, aj := summary.MonthlyAverages[months[i]], summary.MonthlyAverages[months[j]]
		if ai != aj {
			return ai > aj
		}
		return months[i] < months[j]
	})
	for i, m := range months {
		if i < seasonalTopN {
			summary.PeakMonths = append(summary.PeakMonths, m)
		}
	}
	for i := len(months) - 1; i >= 0 && len(summary.LowMonths) < seasonalTopN; i-- {
		summary.LowMonths = append(summary.LowMonths, months[i])
	}
	return summary, nil
}

func (c *TrendsClient) timeline(ctx context.Context, keyword, timeframe string) ([]interestPoint, error) {
	u := fmt.Sprintf("%s/interest?keyword=%s&timeframe=%s&geo=US",
		c.baseURL, url.QueryEscape(keyword), timeframe)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building interest request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching interest for %q: %w", keyword, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("interest endpoint returned status %d for %q", resp.StatusCode, keyword)
	}

	var body interestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding interest response for %q: %w", keyword, err)
	}
	return body.Timeline, nil
}
