package util

import (
	"net/http"
	"testing"
)

func mustRequest(t *testing.T, rawURL string) *http.Request {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, rawURL, nil)
	if err != nil {
		t.Fatalf("NewRequest failed: %v", err)
	}
	return req
}

func TestNewProxyFunc_Configured(t *testing.T) {
	proxyFunc := NewProxyFunc("http://proxy.internal:3128", "http://sproxy.internal:3128", "")

	u, err := proxyFunc(mustRequest(t, "http://example.org/page"))
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if u == nil || u.Host != "proxy.internal:3128" {
		t.Errorf("http proxy = %v, want proxy.internal:3128", u)
	}

	u, err = proxyFunc(mustRequest(t, "https://example.org/page"))
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if u == nil || u.Host != "sproxy.internal:3128" {
		t.Errorf("https proxy = %v, want sproxy.internal:3128", u)
	}
}

func TestNewProxyFunc_NoProxyBypass(t *testing.T) {
	proxyFunc := NewProxyFunc("http://proxy.internal:3128", "", "example.org, internal.net")

	for _, rawURL := range []string{
		"http://example.org/page",
		"http://sub.example.org/page",
		"http://api.internal.net/page",
	} {
		u, err := proxyFunc(mustRequest(t, rawURL))
		if err != nil {
			t.Fatalf("proxy func failed for %s: %v", rawURL, err)
		}
		if u != nil {
			t.Errorf("%s routed through proxy %v, want direct", rawURL, u)
		}
	}

	// A bypass entry never matches mid-label.
	u, err := proxyFunc(mustRequest(t, "http://notexample.org/page"))
	if err != nil {
		t.Fatalf("proxy func failed: %v", err)
	}
	if u == nil {
		t.Error("notexample.org bypassed the proxy")
	}
}
