// Package pipeline wires claim extraction, query synthesis, web search
// and candidate scoring into the per-article processing flow.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/citehunt/citehunt/internal/cache"
	"github.com/citehunt/citehunt/internal/content"
	"github.com/citehunt/citehunt/internal/corpus"
	"github.com/citehunt/citehunt/internal/extract"
	"github.com/citehunt/citehunt/internal/model"
	"github.com/citehunt/citehunt/internal/query"
	"github.com/citehunt/citehunt/internal/score"
	"github.com/citehunt/citehunt/internal/search"
	"github.com/citehunt/citehunt/internal/util"
	"github.com/citehunt/citehunt/internal/wikitext"
	"github.com/citehunt/citehunt/internal/worker"
)

// Pipeline processes one article at a time: extract claims, synthesize
// queries, search, fetch candidates and score their paragraphs.
type Pipeline struct {
	cfg         *model.Config
	segmenter   *extract.Segmenter
	synthesizer *query.Synthesizer
	searcher    *search.Client
	fetcher     *Fetcher
	extractor   *content.Extractor
	scorer      *score.Scorer
	robots      *util.RobotsChecker
	limiter     *worker.Limiter
	citationSet map[string]bool
	// skipSites is resolved once at construction so every article in a
	// run sees the same exclusion list.
	skipSites []string
}

// NewPipeline builds a pipeline from configuration and a prepared
// corpus dictionary.
func NewPipeline(cfg *model.Config, dict *corpus.Dictionary) *Pipeline {
	var pageCache cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			pageCache = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			pageCache = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
	}

	return &Pipeline{
		cfg:         cfg,
		segmenter:   extract.NewSegmenter(),
		synthesizer: query.NewSynthesizer(dict, cfg.General.ArticleCount),
		searcher:    search.NewClient(cfg.Search, cfg.HTTP.Timeout),
		fetcher:     NewFetcher(cfg.HTTP, pageCache, cfg.Cache.TTL),
		extractor:   content.NewExtractor(),
		scorer:      score.NewScorer(),
		robots:      util.NewRobotsChecker(cfg.HTTP.UserAgent, cfg.HTTP.Timeout),
		limiter:     worker.NewLimiter(cfg.HTTP.RequestsPerSecond, cfg.HTTP.Burst),
		citationSet: wikitext.CitationSet(cfg.Citation.Templates),
		skipSites:   cfg.SkippedSites(),
	}
}

// ExtractClaims converts an article's markup into claims with queries
// attached. Articles without citation-needed markers yield nil.
func (p *Pipeline) ExtractClaims(article model.Article) []model.Claim {
	marked := wikitext.PlainTextWithMarkers(article.Text, p.citationSet, p.cfg.Quote.Template, p.cfg.Quote.TextParam)
	if !strings.Contains(marked, wikitext.Marker) {
		return nil
	}

	claims := p.segmenter.Extract(marked, article.Title)
	for i := range claims {
		p.synthesizer.Synthesize(&claims[i])
	}
	return claims
}

// ProcessArticle runs the full flow for one article. Failures of
// individual claims or candidates are isolated: the claim keeps its
// query and fallback search link, just without scored excerpts.
func (p *Pipeline) ProcessArticle(ctx context.Context, article model.Article) model.ArticleResult {
	result := model.ArticleResult{ID: article.ID, Title: article.Title}

	for i, claim := range p.ExtractClaims(article) {
		claimResult := model.ClaimResult{
			ID:         fmt.Sprintf("%s-%d", article.ID, i+1),
			Text:       claim.Text,
			Query:      claim.Query,
			SearchLink: search.DeepLink(claim.Query, p.skipSites),
		}

		hits, err := p.searcher.Search(ctx, claim.Query, p.skipSites)
		if err != nil {
			p.warn("search failed for %q (%s): %v", claim.Query, article.Title, err)
			result.Claims = append(result.Claims, claimResult)
			continue
		}

		claimResult.Excerpts = p.scoreCandidates(ctx, hits, &claim)
		result.Claims = append(result.Claims, claimResult)
	}

	return result
}

// scoreCandidates fetches and scores the search hits concurrently,
// bounded by the candidate worker limit, preserving search order.
func (p *Pipeline) scoreCandidates(ctx context.Context, hits []search.Result, claim *model.Claim) []model.ScoredExcerpt {
	slots := make([]*model.ScoredExcerpt, len(hits))

	sem := make(chan struct{}, p.cfg.Concurrency.CandidateWorkers)
	var wg sync.WaitGroup

	for i, hit := range hits {
		if p.skipped(hit.URL) {
			continue
		}

		wg.Add(1)
		go func(i int, hit search.Result) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			excerpt, ok := p.evaluateCandidate(ctx, hit, claim)
			if ok {
				slots[i] = &excerpt
			}
		}(i, hit)
	}
	wg.Wait()

	var excerpts []model.ScoredExcerpt
	for _, slot := range slots {
		if slot != nil {
			excerpts = append(excerpts, *slot)
		}
	}
	return excerpts
}

// evaluateCandidate fetches one search hit and scores its best
// paragraph against the claim. Any failure drops the candidate.
func (p *Pipeline) evaluateCandidate(ctx context.Context, hit search.Result, claim *model.Claim) (model.ScoredExcerpt, bool) {
	var crawlDelay time.Duration
	if p.cfg.HTTP.RespectRobots {
		allowed, delay, err := p.robots.CanFetch(ctx, hit.URL)
		if err != nil {
			p.warn("robots check failed for %s: %v", hit.URL, err)
			return model.ScoredExcerpt{}, false
		}
		if !allowed {
			p.warn("robots.txt disallows %s", hit.URL)
			return model.ScoredExcerpt{}, false
		}
		crawlDelay = delay
	}

	if err := p.limiter.WaitWithDelay(ctx, hit.URL, crawlDelay); err != nil {
		return model.ScoredExcerpt{}, false
	}

	fetched, err := p.fetcher.Fetch(ctx, hit.URL)
	if err != nil {
		p.warn("fetch failed for %s: %v", hit.URL, err)
		return model.ScoredExcerpt{}, false
	}

	paragraphs, err := p.extractor.Paragraphs(fetched.Body)
	if err != nil || len(paragraphs) == 0 {
		return model.ScoredExcerpt{}, false
	}

	page := model.CandidatePage{
		URL:        fetched.FinalURL,
		Name:       hit.Name,
		Snippet:    hit.Snippet,
		Paragraphs: paragraphs,
	}
	return p.scorer.Score(page, claim)
}

// skipped reports whether a candidate URL belongs to an excluded domain
// or one of its subdomains.
func (p *Pipeline) skipped(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return true
	}
	host := strings.ToLower(parsed.Hostname())
	for _, site := range p.skipSites {
		if host == site || strings.HasSuffix(host, "."+site) {
			return true
		}
	}
	return false
}

func (p *Pipeline) warn(format string, args ...any) {
	if p.cfg.Output.Verbose {
		log.Printf(format, args...)
	}
}
