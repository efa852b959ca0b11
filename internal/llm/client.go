package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sashabaranov/go-openai"
	"github.com/shipgate/shipgate/internal/config"
)

// Provider represents the advisory LLM provider
type Provider string

const (
	ProviderOpenAI Provider = "openai"
	ProviderGemini Provider = "gemini"
	ProviderNone   Provider = "none"
)

// Client provides a multi-provider LLM interface for the risk advisor.
// Supports OpenAI and Gemini; a client with no key configured is disabled
// and the aggregator falls through to the deterministic rule.
type Client struct {
	provider     Provider
	openaiClient *openai.Client
	geminiClient *GeminiClient
	logger       *slog.Logger
	enabled      bool
	model        string
}

// NewClient creates an LLM client for the configured provider. A missing API
// key is not an error: the returned client reports IsEnabled() == false.
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	logger := slog.Default().With("component", "llm")

	switch Provider(cfg.API.Provider) {
	case ProviderGemini:
		return newGeminiClient(ctx, cfg, logger)
	case ProviderOpenAI, "":
		return newOpenAIClient(cfg, logger), nil
	default:
		logger.Warn("unknown provider, falling back to openai", "provider", cfg.API.Provider)
		return newOpenAIClient(cfg, logger), nil
	}
}

func newOpenAIClient(cfg *config.Config, logger *slog.Logger) *Client {
	if cfg.API.OpenAIKey == "" {
		logger.Warn("no OpenAI API key configured, AI risk assessment disabled")
		return &Client{provider: ProviderNone, logger: logger, enabled: false}
	}

	model := cfg.API.OpenAIModel
	if model == "" {
		model = "gpt-4"
	}

	logger.Info("openai client initialized", "model", model)
	return &Client{
		provider:     ProviderOpenAI,
		openaiClient: openai.NewClient(cfg.API.OpenAIKey),
		logger:       logger,
		enabled:      true,
		model:        model,
	}
}

func newGeminiClient(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Client, error) {
	if cfg.API.GeminiKey == "" {
		logger.Warn("no Gemini API key configured, AI risk assessment disabled")
		return &Client{provider: ProviderNone, logger: logger, enabled: false}, nil
	}

	model := cfg.API.GeminiModel
	if model == "" {
		model = "gemini-2.0-flash"
	}

	geminiClient, err := NewGeminiClient(ctx, cfg.API.GeminiKey, model)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	logger.Info("gemini client initialized", "model", model)
	return &Client{
		provider:     ProviderGemini,
		geminiClient: geminiClient,
		logger:       logger,
		enabled:      true,
		model:        model,
	}, nil
}

// IsEnabled returns true if an LLM client is configured and ready
func (c *Client) IsEnabled() bool {
	return c.enabled
}

// GetProvider returns the active LLM provider
func (c *Client) GetProvider() Provider {
	return c.provider
}

// Complete sends a prompt to the LLM and returns the text response
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if !c.enabled {
		return "", fmt.Errorf("llm client not enabled (no API key configured)")
	}

	switch c.provider {
	case ProviderGemini:
		return c.geminiClient.Complete(ctx, systemPrompt, userPrompt)
	case ProviderOpenAI:
		return c.completeOpenAI(ctx, systemPrompt, userPrompt)
	default:
		return "", fmt.Errorf("no provider configured")
	}
}

func (c *Client) completeOpenAI(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.openaiClient.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: 0.3,
		MaxTokens:   1000,
	})

	if err != nil {
		return "", fmt.Errorf("openai completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	response := resp.Choices[0].Message.Content
	c.logger.Debug("openai completion",
		"model", c.model,
		"prompt_length", len(userPrompt),
		"response_length", len(response),
		"tokens_used", resp.Usage.TotalTokens,
	)

	return response, nil
}
