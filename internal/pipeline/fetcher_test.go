package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/citehunt/citehunt/internal/cache"
	"github.com/citehunt/citehunt/internal/model"
)

func testHTTPConfig() model.HTTPConfig {
	return model.HTTPConfig{
		Timeout:      2 * time.Second,
		UserAgent:    "citehunt-test",
		MaxBodyBytes: 1 << 20,
	}
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "citehunt-test" {
			t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
		}
		_, _ = w.Write([]byte("<html><body>candidate page</body></html>"))
	}))
	defer server.Close()

	fetcher := NewFetcher(testHTTPConfig(), nil, 0)
	result, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if !strings.Contains(result.Body, "candidate page") {
		t.Errorf("unexpected body %q", result.Body)
	}
	if result.FinalURL != server.URL+"/" && result.FinalURL != server.URL {
		t.Errorf("unexpected final URL %q", result.FinalURL)
	}
}

func TestFetch_NoRetry(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewFetcher(testHTTPConfig(), nil, 0)
	if _, err := fetcher.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for 500 response")
	}

	// A failed candidate is dropped, never refetched.
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("expected exactly 1 request, got %d", got)
	}
}

func TestFetch_FollowsRedirects(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/start", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/final", http.StatusFound)
	})
	mux.HandleFunc("/final", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("landed"))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	fetcher := NewFetcher(testHTTPConfig(), nil, 0)
	result, err := fetcher.Fetch(context.Background(), server.URL+"/start")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if result.Body != "landed" {
		t.Errorf("body = %q", result.Body)
	}
	if result.FinalURL != server.URL+"/final" {
		t.Errorf("final URL = %q, want %q", result.FinalURL, server.URL+"/final")
	}
}

func TestFetch_RedirectLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, r.URL.Path+"x", http.StatusFound)
	}))
	defer server.Close()

	fetcher := NewFetcher(testHTTPConfig(), nil, 0)
	if _, err := fetcher.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for endless redirects")
	}
}

func TestFetch_BodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer server.Close()

	cfg := testHTTPConfig()
	cfg.MaxBodyBytes = 10

	fetcher := NewFetcher(cfg, nil, 0)
	result, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if len(result.Body) != 10 {
		t.Errorf("body length = %d, want 10", len(result.Body))
	}
}

func TestFetch_Cached(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		_, _ = w.Write([]byte("fresh"))
	}))
	defer server.Close()

	pageCache := cache.NewMemoryCache(time.Minute, time.Minute)
	fetcher := NewFetcher(testHTTPConfig(), pageCache, time.Minute)

	first, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("first fetch failed: %v", err)
	}
	second, err := fetcher.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("second fetch failed: %v", err)
	}

	if first.Body != "fresh" || second.Body != "fresh" {
		t.Errorf("bodies = %q, %q", first.Body, second.Body)
	}
	if second.FinalURL != first.FinalURL {
		t.Errorf("cached final URL = %q, want %q", second.FinalURL, first.FinalURL)
	}
	if got := atomic.LoadInt32(&hits); got != 1 {
		t.Errorf("expected 1 origin request, got %d", got)
	}
}
