package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
)

const (
	maxSuggestions       = 20
	maxPerSuggestSource  = 10
	defaultOpensearchURL = "https://en.wikipedia.org/w/api.php"
)

// SuggestClient expands a seed keyword through autocomplete endpoints.
// It speaks the firefox-style suggestion format, a JSON array of
// [query, [suggestions...]], and the opensearch format used by wiki
// APIs, which is the same shape.
type SuggestClient struct {
	suggestURL    string
	opensearchURL string
	client        *http.Client
}

// NewSuggestClient creates a client. An empty opensearchURL falls back
// to the public encyclopedia endpoint.
func NewSuggestClient(suggestURL, opensearchURL string, client *http.Client) *SuggestClient {
	if opensearchURL == "" {
		opensearchURL = defaultOpensearchURL
	}
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return &SuggestClient{
		suggestURL:    suggestURL,
		opensearchURL: opensearchURL,
		client:        client,
	}
}

// Expand merges suggestions from both endpoints, drops the seed keyword
// itself and duplicates, and caps the result. Individual endpoint
// failures are logged and skipped so one slow upstream never empties
// the whole expansion.
func (c *SuggestClient) Expand(ctx context.Context, keyword string) []string {
	var merged []string

	if c.suggestURL != "" {
		u := fmt.Sprintf("%s?client=firefox&q=%s", c.suggestURL, url.QueryEscape(keyword))
		got, err := c.fetchSuggestions(ctx, u)
		if err != nil {
			log.Printf("Warning: autocomplete suggestions failed for %q: %v", keyword, err)
		} else {
			merged = append(merged, got...)
		}
	}

	u := fmt.Sprintf("%s?action=opensearch&search=%s&limit=%d&namespace=0&format=json",
		c.opensearchURL, url.QueryEscape(keyword), maxPerSuggestSource)
	got, err := c.fetchSuggestions(ctx, u)
	if err != nil {
		log.Printf("Warning: opensearch suggestions failed for %q: %v", keyword, err)
	} else {
		merged = append(merged, got...)
	}

	seen := make(map[string]struct{}, len(merged))
	seed := strings.ToLower(strings.TrimSpace(keyword))
	out := make([]string, 0, maxSuggestions)
	for _, s := range merged {
		s = strings.TrimSpace(s)
		key := strings.ToLower(s)
		if s == "" || key == seed {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, s)
		if len(out) == maxSuggestions {
			break
		}
	}
	return out
}

// fetchSuggestions decodes a [query, [suggestions...]] response body
// and returns at most maxPerSuggestSource entries.
func (c *SuggestClient) fetchSuggestions(ctx context.Context, u string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building suggestion request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching suggestions: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("suggestion endpoint returned status %d", resp.StatusCode)
	}

	var body []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding suggestion response: %w", err)
	}
	if len(body) < 2 {
		return nil, nil
	}

	var suggestions []string
	if err := json.Unmarshal(body[1], &suggestions); err != nil {
		return nil, fmt.Errorf("decoding suggestion list: %w", err)
	}
	if len(suggestions) > maxPerSuggestSource {
		suggestions = suggestions[:maxPerSuggestSource]
	}
	return suggestions, nil
}
