package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/citehunt/citehunt/internal/cache"
	"github.com/citehunt/citehunt/internal/model"
	"github.com/citehunt/citehunt/internal/util"
)

// Fetcher retrieves candidate pages. Each fetch is bounded by the
// configured timeout and never retried: a failed candidate is simply
// dropped by the caller.
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
	pageCache  cache.Cache // nil disables caching
	cacheTTL   time.Duration
}

// NewFetcher creates a fetcher from the HTTP configuration. A nil
// pageCache disables caching.
func NewFetcher(cfg model.HTTPConfig, pageCache cache.Cache, cacheTTL time.Duration) *Fetcher {
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
			},
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
		pageCache: pageCache,
		cacheTTL:  cacheTTL,
	}
}

// FetchResult contains a fetched page body and its resolved URL.
type FetchResult struct {
	Body     string `json:"body"`
	FinalURL string `json:"final_url"`
}

// Fetch retrieves the page at rawURL, following up to 3 redirects and
// reading at most the configured number of bytes.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	key := cache.PageKey(rawURL)
	if f.pageCache != nil {
		if data, found := f.pageCache.Get(key); found {
			var cached FetchResult
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	result := &FetchResult{
		Body:     string(body),
		FinalURL: resp.Request.URL.String(),
	}

	if f.pageCache != nil {
		if data, err := json.Marshal(result); err == nil {
			_ = f.pageCache.Set(key, data, f.cacheTTL)
		}
	}

	return result, nil
}
