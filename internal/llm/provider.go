// Package llm generates an optional natural-language summary of a run.
// The summary is purely descriptive and never feeds back into claim
// extraction or scoring.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/citehunt/citehunt/internal/model"
)

// Provider is an LLM backend capable of summarizing a run.
type Provider interface {
	Name() string
	Summarize(ctx context.Context, run model.RunResult) (string, error)
}

// BuildPrompt constructs the summarization prompt for a run.
func BuildPrompt(run model.RunResult) string {
	claims := 0
	excerpts := 0
	for _, article := range run.Articles {
		claims += len(article.Claims)
		for _, claim := range article.Claims {
			excerpts += len(claim.Excerpts)
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, `You are summarizing a scan for unsourced Wikipedia claims.
The scan found %d claims across %d articles and gathered %d candidate source excerpts.

RULES:
1. Describe coverage only: which articles carry unsourced claims and how many candidates were found.
2. Never assert that a claim is true or false.
3. Do not mention any source that is not listed below.

Articles:
`, claims, len(run.Articles), excerpts)

	for _, article := range run.Articles {
		fmt.Fprintf(&b, "- %s: %d claims\n", article.Title, len(article.Claims))
		for _, claim := range article.Claims {
			for _, excerpt := range claim.Excerpts {
				fmt.Fprintf(&b, "  - candidate %s (similarity %.3f)\n", excerpt.URL, excerpt.Similarity)
			}
		}
	}

	b.WriteString("\nWrite a short paragraph summarizing the scan.\n")
	return b.String()
}
