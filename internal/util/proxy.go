package util

import (
	"net/http"
	"net/url"
	"strings"
)

// NewProxyFunc builds the proxy selector for candidate page fetches.
// With no configured proxy it defers to the standard environment
// variables. Hosts listed in noProxy (comma separated, suffix matched)
// are always dialed directly.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	var bypass []string
	for _, host := range strings.Split(noProxy, ",") {
		if host = strings.TrimSpace(host); host != "" {
			bypass = append(bypass, strings.ToLower(host))
		}
	}

	return func(req *http.Request) (*url.URL, error) {
		if hostBypassed(req.URL.Hostname(), bypass) {
			return nil, nil
		}
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}

func hostBypassed(host string, bypass []string) bool {
	host = strings.ToLower(host)
	for _, b := range bypass {
		if host == b || strings.HasSuffix(host, "."+b) {
			return true
		}
	}
	return false
}
