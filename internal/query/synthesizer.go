// Package query computes weighted keyword queries for claims via a
// proximity-decayed TF-IDF variant with an adaptive cutoff.
package query

import (
	"math"
	"sort"
	"strings"

	"github.com/citehunt/citehunt/internal/corpus"
	"github.com/citehunt/citehunt/internal/model"
	"github.com/citehunt/citehunt/internal/wikitext"
)

const (
	// proximityDecay dampens a sentence's contribution the further it
	// sits from the citation-needed marker.
	proximityDecay = 0.6
	// introWeight is given to first-sentence tokens of long Forward
	// claims, whose basis is introduced before the ':'.
	introWeight = 0.7
	// maxPrequery caps the keywords taken above the cutoff percentile.
	maxPrequery = 10
	// maxQueryTokens caps the body keywords of the final query.
	maxQueryTokens = 8
)

// Synthesizer attaches keyword queries to claims using the corpus
// dictionary for inverse document frequencies.
type Synthesizer struct {
	dict         *corpus.Dictionary
	articleCount int
}

// NewSynthesizer creates a synthesizer over a prepared dictionary and the
// document count of the corpus it was built from.
func NewSynthesizer(dict *corpus.Dictionary, articleCount int) *Synthesizer {
	return &Synthesizer{dict: dict, articleCount: articleCount}
}

// Synthesize computes the keyword query for a claim, stores it on the
// claim and returns it. Title tokens always lead the query; the body
// keywords that survive the adaptive cutoff follow in their original
// order of appearance, deduplicated, at most 8 in total.
func (s *Synthesizer) Synthesize(claim *model.Claim) string {
	sentences := wikitext.SplitSentences(claim.Text)

	tokens, tfs := weightedTermFrequencies(sentences, claim)
	idfs := s.inverseDocumentFrequencies(tokens)

	scores := make([]float64, len(tokens))
	for i := range tokens {
		scores[i] = tfs[i] * idfs[i]
	}
	scores = normalize(scores)

	query := selectKeywords(tokens, scores)
	query = prependTitle(query, claim.Title)

	claim.Query = strings.Join(query, " ")
	return claim.Query
}

// weightedTermFrequencies walks the claim's sentences backward from the
// marker, sentence offsets 1..3, giving each token a proximity weight: 1
// on first sight in the nearest sentence, plus decay^offset for
// occurrences in the farther ones. Long Forward claims also admit
// first-sentence tokens at a fixed intro weight. The weights are then
// combined with the damped raw term frequency over the full article text
// and normalized to sum to 1.
func weightedTermFrequencies(sentences []string, claim *model.Claim) ([]string, []float64) {
	if len(sentences) == 0 {
		return nil, nil
	}

	var tokens []string
	var weights []float64
	index := make(map[string]int)

	for i := 1; i <= 3; i++ {
		for _, token := range corpus.Tokenize(sentences[len(sentences)-i]) {
			if pos, ok := index[token]; ok {
				if i != 1 {
					weights[pos] += math.Pow(proximityDecay, float64(i))
				}
				continue
			}
			index[token] = len(tokens)
			tokens = append(tokens, token)
			if i == 1 {
				weights = append(weights, 1)
			} else {
				weights = append(weights, math.Pow(proximityDecay, float64(i)))
			}
		}
		if i >= len(sentences) {
			break
		}
	}

	if claim.Direction == model.DirectionForward && len(sentences) > 3 {
		for _, token := range corpus.Tokenize(sentences[0]) {
			if _, ok := index[token]; !ok {
				index[token] = len(tokens)
				tokens = append(tokens, token)
				weights = append(weights, introWeight)
			}
		}
	}

	// Raw term frequency over the whole article, damped so article size
	// has little influence.
	tfs := make([]float64, len(tokens))
	for _, word := range corpus.Tokenize(claim.ArticleText) {
		if pos, ok := index[word]; ok {
			tfs[pos]++
		}
	}
	for i, weight := range weights {
		tfs[i] = math.Log(tfs[i]+14) / math.Log(15) * weight
	}

	return tokens, normalize(tfs)
}

// inverseDocumentFrequencies returns log2(N/df) per token; tokens absent
// from the dictionary get 0 rather than failing.
func (s *Synthesizer) inverseDocumentFrequencies(tokens []string) []float64 {
	idfs := make([]float64, len(tokens))
	for i, token := range tokens {
		df := s.dict.DocFreq(token)
		if df > 0 {
			idfs[i] = math.Log2(float64(s.articleCount) / float64(df))
		}
	}
	return idfs
}

// selectKeywords keeps the tokens scoring at or above the adaptive cutoff
// percentile, then restores their original order of appearance.
func selectKeywords(tokens []string, scores []float64) []string {
	if len(tokens) == 0 {
		return nil
	}

	type scored struct {
		token string
		score float64
	}
	ranked := make([]scored, len(tokens))
	for i := range tokens {
		ranked[i] = scored{tokens[i], scores[i]}
	}
	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].score > ranked[b].score })

	threshold := Percentile(scores, float64(Cutoff(scores)))

	kept := make(map[string]bool)
	for _, sc := range ranked {
		if sc.score < threshold {
			break
		}
		kept[sc.token] = true
		if len(kept) >= maxPrequery {
			break
		}
	}

	var query []string
	for _, token := range tokens {
		if kept[token] {
			query = append(query, token)
		}
	}
	if len(query) > maxQueryTokens {
		query = query[:maxQueryTokens-1]
	}
	return query
}

// prependTitle inserts the title tokens at the front of the query in
// their original left-to-right order, skipping duplicates. The position
// matters to the search provider, so the title always leads.
func prependTitle(query []string, title string) []string {
	titleTokens := corpus.Tokenize(title)
	for i := len(titleTokens) - 1; i >= 0; i-- {
		keyword := titleTokens[i]
		if !contains(query, keyword) {
			query = append([]string{keyword}, query...)
		}
	}
	return query
}

func contains(tokens []string, token string) bool {
	for _, t := range tokens {
		if t == token {
			return true
		}
	}
	return false
}

// normalize scales a vector to sum to 1. A zero-sum vector is returned
// unchanged.
func normalize(values []float64) []float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	if sum == 0 {
		return values
	}
	normalized := make([]float64, len(values))
	for i, v := range values {
		normalized[i] = v / sum
	}
	return normalized
}
