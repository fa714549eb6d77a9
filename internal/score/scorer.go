// Package score picks the paragraph of a candidate page that best
// matches a claim, via bag-of-words cosine similarity.
package score

import (
	"math"
	"strings"

	"github.com/citehunt/citehunt/internal/corpus"
	"github.com/citehunt/citehunt/internal/model"
)

// excerptMaxChars caps the excerpt carried into the report.
const excerptMaxChars = 1000

// Scorer evaluates candidate pages against claims.
type Scorer struct{}

// NewScorer creates a new similarity scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// vocabulary maps tokens to vector dimensions. One vocabulary is built
// per candidate evaluation and shared by all vectors compared within it.
type vocabulary map[string]int

// newVocabulary builds the shared token space from the given token lists.
func newVocabulary(tokenLists ...[]string) vocabulary {
	vocab := make(vocabulary)
	for _, tokens := range tokenLists {
		for _, token := range tokens {
			if _, ok := vocab[token]; !ok {
				vocab[token] = len(vocab)
			}
		}
	}
	return vocab
}

// vector computes the bag-of-words vector of tokens under the
// vocabulary. Out-of-vocabulary tokens are ignored.
func (v vocabulary) vector(tokens []string) []float64 {
	vec := make([]float64, len(v))
	for _, token := range tokens {
		if dim, ok := v[token]; ok {
			vec[dim]++
		}
	}
	return vec
}

// cosine returns the cosine similarity of two equal-length vectors, 0
// when either is a zero vector.
func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Score returns the best-matching excerpt of a candidate page for a
// claim, or ok=false when the page yields no scorable paragraphs.
//
// The vocabulary spans the page and claim tokens; the whole-page
// similarity against the owning article is computed under it as a
// diagnostic for skip-site curation and never filters the candidate.
func (s *Scorer) Score(page model.CandidatePage, claim *model.Claim) (model.ScoredExcerpt, bool) {
	if len(page.Paragraphs) == 0 {
		return model.ScoredExcerpt{}, false
	}

	pageTokens := corpus.Tokenize(strings.Join(page.Paragraphs, "\n"))
	claimTokens := corpus.Tokenize(claim.Text)
	articleTokens := corpus.Tokenize(claim.ArticleText)

	vocab := newVocabulary(pageTokens, claimTokens)
	pageVec := vocab.vector(pageTokens)
	articleVec := vocab.vector(articleTokens)
	claimVec := vocab.vector(claimTokens)

	pageSimilarity := cosine(pageVec, articleVec)

	best := ""
	maxSimilarity := 0.0
	for _, paragraph := range page.Paragraphs {
		sim := cosine(vocab.vector(corpus.Tokenize(paragraph)), claimVec)
		if sim > maxSimilarity {
			maxSimilarity = sim
			best = paragraph
		}
	}

	return model.ScoredExcerpt{
		URL:            page.URL,
		Name:           page.Name,
		Snippet:        page.Snippet,
		Excerpt:        truncate(best, excerptMaxChars),
		Similarity:     maxSimilarity,
		PageSimilarity: pageSimilarity,
	}, true
}

// truncate keeps the first max characters of s without splitting a rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
