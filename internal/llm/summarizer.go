package llm

import (
	"context"
	"fmt"

	"github.com/citehunt/citehunt/internal/model"
)

// Summarizer attaches an optional summary to a run result. A nil
// Summarizer is valid and does nothing, which is how a run behaves when
// no provider is configured.
type Summarizer struct {
	provider Provider
}

// NewSummarizer creates a summarizer for the configured provider.
// Returns nil when no provider is configured.
func NewSummarizer(cfg model.LLMConfig) (*Summarizer, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openai":
		provider, err := NewOpenAIProvider(cfg)
		if err != nil {
			return nil, err
		}
		return &Summarizer{provider: provider}, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}

// GenerateSummary stores the provider's summary on the run. Failures
// leave the run untouched and are returned to the caller; results are
// never affected.
func (s *Summarizer) GenerateSummary(ctx context.Context, run *model.RunResult) error {
	if s == nil {
		return nil
	}

	summary, err := s.provider.Summarize(ctx, *run)
	if err != nil {
		return fmt.Errorf("%s summarizer: %w", s.provider.Name(), err)
	}
	run.Summary = summary
	return nil
}
