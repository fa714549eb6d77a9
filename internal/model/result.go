package model

// CandidatePage is a fetched search hit reduced to plain-text paragraphs.
type CandidatePage struct {
	URL        string   `json:"url"`        // Resolved (post-redirect) URL
	Name       string   `json:"name"`       // Display name from the search provider
	Snippet    string   `json:"snippet"`    // Search result snippet
	Paragraphs []string `json:"paragraphs"` // Boilerplate-stripped paragraph texts, in order
}

// ScoredExcerpt is the best-matching paragraph of one candidate page.
// At most one per candidate page per claim.
type ScoredExcerpt struct {
	URL        string  `json:"url"`
	Name       string  `json:"name,omitempty"`
	Snippet    string  `json:"snippet,omitempty"`
	Excerpt    string  `json:"excerpt"`    // At most 1000 characters
	Similarity float64 `json:"similarity"` // Cosine similarity to the claim, in [0,1]

	// PageSimilarity is the whole-page similarity to the owning article.
	// Diagnostic only; a caller may use it to curate the skip-site list
	// between runs. It never filters candidates within a run.
	PageSimilarity float64 `json:"page_similarity"`
}

// ClaimResult wraps everything found for a single claim.
type ClaimResult struct {
	ID         string          `json:"id"` // "<article id>-<claim index>"
	Text       string          `json:"text"`
	Query      string          `json:"query"`
	SearchLink string          `json:"search_link"` // Human-navigable deep link
	Excerpts   []ScoredExcerpt `json:"excerpts"`
}

// ArticleResult wraps the per-claim results of one article.
type ArticleResult struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Claims []ClaimResult `json:"claims"`
}

// RunResult is the full outcome of a finder run over a dump.
type RunResult struct {
	BaseURL  string          `json:"base_url"` // Base site URL from the dump's siteinfo
	Articles []ArticleResult `json:"articles"`

	// Summary is an optional LLM-generated overview. It is produced after
	// all scoring and never influences any result.
	Summary string `json:"summary,omitempty"`
}
