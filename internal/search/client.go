// Package search queries the web-search provider for candidate source
// pages and builds human-navigable fallback links.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/citehunt/citehunt/internal/model"
)

// Result is one search hit.
type Result struct {
	URL     string
	Name    string
	Snippet string
}

// Client talks to a Bing-compatible Web Search API.
type Client struct {
	httpClient     *http.Client
	endpoint       string
	apiKey         string
	resultCount    int
	maxQueryLength int
}

// NewClient creates a search client from configuration.
func NewClient(cfg model.SearchConfig, timeout time.Duration) *Client {
	count := cfg.ResultCount
	if count <= 0 {
		count = 20
	}
	maxLen := cfg.MaxQueryLength
	if maxLen <= 0 {
		maxLen = 1400
	}
	return &Client{
		httpClient:     &http.Client{Timeout: timeout},
		endpoint:       cfg.Endpoint,
		apiKey:         cfg.APIKey,
		resultCount:    count,
		maxQueryLength: maxLen,
	}
}

// webPagesResponse mirrors the provider's JSON envelope.
type webPagesResponse struct {
	WebPages struct {
		Value []struct {
			URL     string `json:"url"`
			Name    string `json:"name"`
			Snippet string `json:"snippet"`
		} `json:"value"`
	} `json:"webPages"`
}

// Search returns the ordered search hits for a keyword query, with the
// excluded domains appended as provider-side filters.
func (c *Client) Search(ctx context.Context, query string, excluded []string) ([]Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create search request: %w", err)
	}

	q := req.URL.Query()
	q.Set("q", BuildProviderQuery(query, excluded, c.maxQueryLength))
	q.Set("count", fmt.Sprintf("%d", c.resultCount))
	req.URL.RawQuery = q.Encode()

	req.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)
	req.Header.Set("X-MSEdge-ClientID", "citehunt")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read search response: %w", err)
	}

	var parsed webPagesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	results := make([]Result, 0, len(parsed.WebPages.Value))
	for _, page := range parsed.WebPages.Value {
		results = append(results, Result{URL: page.URL, Name: page.Name, Snippet: page.Snippet})
	}
	return results, nil
}

// BuildProviderQuery appends the domain exclusions to the keyword query
// in provider syntax, stopping once the query would exceed maxLen.
func BuildProviderQuery(keywords string, excluded []string, maxLen int) string {
	query := keywords + " NOT (link:wikipedia.org"
	if !containsDomain(excluded, "wikipedia.org") {
		query += " OR site:wikipedia.org"
	}

	length := len(query)
	for _, site := range excluded {
		clause := " OR site:" + site
		length += len(clause)
		if length > maxLen {
			break
		}
		query += clause
	}

	return query + ")"
}

// DeepLink builds a human-navigable web-search link for the query with
// the excluded domains as negative site filters. An empty query degrades
// to an empty-query link.
func DeepLink(keywords string, excluded []string) string {
	query := keywords
	for _, site := range excluded {
		query += " -site:" + site
	}
	if keywords == "" {
		query = ""
	}
	return "https://google.com/search?q=" + url.QueryEscape(query)
}

func containsDomain(domains []string, domain string) bool {
	for _, d := range domains {
		if d == domain {
			return true
		}
	}
	return false
}
