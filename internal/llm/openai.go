package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/citehunt/citehunt/internal/model"
)

// OpenAIProvider talks to the OpenAI Chat Completions API, or any
// compatible endpoint via a custom base URL.
type OpenAIProvider struct {
	client    *openai.Client
	model     string
	maxTokens int
	timeout   time.Duration
}

// NewOpenAIProvider creates a provider from configuration.
func NewOpenAIProvider(cfg model.LLMConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm.api_key is required for the openai provider")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = openai.GPT4oMini
	}

	return &OpenAIProvider{
		client:    openai.NewClientWithConfig(clientConfig),
		model:     modelName,
		maxTokens: maxTokens,
		timeout:   timeout,
	}, nil
}

// Name returns the provider name.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Summarize generates the run summary.
func (p *OpenAIProvider) Summarize(ctx context.Context, run model.RunResult) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You summarize scans for unsourced encyclopedia claims. Describe coverage, never truth.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(run),
			},
		},
		MaxTokens:   p.maxTokens,
		Temperature: 0.3,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
