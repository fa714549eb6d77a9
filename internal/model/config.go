package model

import (
	"fmt"
	"sort"
	"time"
)

// Config holds the complete runtime configuration.
type Config struct {
	General     GeneralConfig     `yaml:"general" mapstructure:"general"`
	Search      SearchConfig      `yaml:"search" mapstructure:"search"`
	Citation    CitationConfig    `yaml:"citation" mapstructure:"citation"`
	Quote       QuoteConfig       `yaml:"quote" mapstructure:"quote"`
	SkipSites   map[string]bool   `yaml:"skipsites" mapstructure:"skipsites"`
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
}

// GeneralConfig describes the prepared corpus.
type GeneralConfig struct {
	// ArticleCount is the document count of the corpus the dictionary was
	// built from. Required for IDF computation.
	ArticleCount int `yaml:"articlecount" mapstructure:"articlecount"`
	// WordIDsPath points at the persisted token-id/document-frequency
	// mapping written by `citehunt prepare`.
	WordIDsPath string `yaml:"wordids_path" mapstructure:"wordids_path"`
	// Namespaces restricts which dump namespaces are processed.
	Namespaces []string `yaml:"namespaces" mapstructure:"namespaces"`
}

// SearchConfig configures the web-search provider.
type SearchConfig struct {
	APIKey      string `yaml:"api_key" mapstructure:"api_key"`
	Endpoint    string `yaml:"endpoint" mapstructure:"endpoint"`
	ResultCount int    `yaml:"result_count" mapstructure:"result_count"`
	// MaxQueryLength caps the length of the provider query once domain
	// exclusions are appended.
	MaxQueryLength int `yaml:"max_query_length" mapstructure:"max_query_length"`
}

// CitationConfig lists the template identifiers treated as
// citation-needed markers.
type CitationConfig struct {
	Templates []string `yaml:"templates" mapstructure:"templates"`
}

// QuoteConfig identifies the quote template and its text parameter.
type QuoteConfig struct {
	Template  string `yaml:"template" mapstructure:"template"`
	TextParam string `yaml:"text_param" mapstructure:"text_param"`
}

// HTTPConfig configures candidate page fetching.
type HTTPConfig struct {
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent         string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes      int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RespectRobots     bool          `yaml:"respect_robots" mapstructure:"respect_robots"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int           `yaml:"burst" mapstructure:"burst"`
	HTTPProxy         string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy        string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy           string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// ConcurrencyConfig bounds the worker pools.
type ConcurrencyConfig struct {
	ArticleWorkers   int `yaml:"article_workers" mapstructure:"article_workers"`
	CandidateWorkers int `yaml:"candidate_workers" mapstructure:"candidate_workers"`
}

// CacheConfig configures the fetched-page cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir     string        `yaml:"dir" mapstructure:"dir"`
	TTL     time.Duration `yaml:"ttl" mapstructure:"ttl"`
}

// OutputConfig configures report rendering.
type OutputConfig struct {
	HTMLPath      string `yaml:"html" mapstructure:"html"`
	JSONPath      string `yaml:"json" mapstructure:"json"`
	Verbose       bool   `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool   `yaml:"include_footer" mapstructure:"include_footer"`
}

// LLMConfig configures the optional run summarizer.
// The summary is generated after all scoring and never affects results.
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"`
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"api_key" mapstructure:"api_key"`
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"`
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		General: GeneralConfig{
			Namespaces: []string{"0"},
		},
		Search: SearchConfig{
			Endpoint:       "https://api.cognitive.microsoft.com/bing/v7.0/search",
			ResultCount:    20,
			MaxQueryLength: 1400,
		},
		Citation: CitationConfig{
			Templates: []string{"citation needed", "cn", "fact", "cb", "ctn", "ref?"},
		},
		Quote: QuoteConfig{
			Template:  "quote",
			TextParam: "text",
		},
		SkipSites: map[string]bool{
			"wikipedia.org":      true,
			"google.com":         false,
			"revolvy.com":        true,
			"wow.com":            true,
			"wikivisually.com":   true,
			"digplanet.com":      true,
			"everipedia.com":     true,
			"wikia.com":          true,
			"explained.today":    true,
			"wordpress.com":      true,
			"infogalactic.com":   true,
			"wikiomni.com":       true,
			"jsonpedia.org":      true,
			"what-is-this.net":   true,
			"sensagent.com":      true,
			"my-definitions.com": true,
			"thefullwiki.org":    true,
			"pediaview.com":      true,
		},
		HTTP: HTTPConfig{
			Timeout:           7 * time.Second,
			UserAgent:         "Citehunt/0.1 (+https://github.com/citehunt/citehunt)",
			MaxBodyBytes:      2_000_000,
			RespectRobots:     true,
			RequestsPerSecond: 1.0,
			Burst:             3,
		},
		Concurrency: ConcurrencyConfig{
			ArticleWorkers:   4,
			CandidateWorkers: 5,
		},
		Cache: CacheConfig{
			Enabled: true,
			Dir:     "",
			TTL:     24 * time.Hour,
		},
		Output: OutputConfig{
			HTMLPath:      "report.html",
			IncludeFooter: true,
		},
		LLM: LLMConfig{
			Timeout:   30,
			MaxTokens: 1000,
		},
	}
}

// SkippedSites returns the domains flagged for exclusion, as a stable
// per-run snapshot.
func (c *Config) SkippedSites() []string {
	var sites []string
	for site, skip := range c.SkipSites {
		if skip {
			sites = append(sites, site)
		}
	}
	sort.Strings(sites)
	return sites
}

// Validate checks the settings required before any processing starts.
// Violations are fatal and reported to the operator up front.
func (c *Config) Validate() error {
	if c.General.ArticleCount <= 0 {
		return fmt.Errorf("general.articlecount must be a positive document count (run 'citehunt prepare' first)")
	}
	if c.General.WordIDsPath == "" {
		return fmt.Errorf("general.wordids_path is required (run 'citehunt prepare' first)")
	}
	if c.Search.APIKey == "" || c.Search.APIKey == "none" {
		return fmt.Errorf("search.api_key must be set to a valid web-search API key")
	}
	if len(c.Citation.Templates) == 0 {
		return fmt.Errorf("citation.templates must list at least one citation-needed template name")
	}
	if c.Quote.Template == "" || c.Quote.TextParam == "" {
		return fmt.Errorf("quote.template and quote.text_param are required")
	}
	return nil
}
