package llm

import (
	"context"
	"fmt"
	"os"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

// OpenRouterBaseURL is the OpenAI-compatible endpoint OpenRouter exposes.
const OpenRouterBaseURL = "https://openrouter.ai/api/v1"

// DefaultOpenRouterModel is used when no model is configured.
const DefaultOpenRouterModel = "google/gemini-2.5-flash-lite"

// OpenRouterConfig contains configuration for creating an OpenRouter completer.
type OpenRouterConfig struct {
	// APIKey is the OpenRouter API key. If empty, uses OPENROUTER_API_KEY.
	APIKey string
	// Model is the model slug. If empty, uses OPENROUTER_MODEL or the default.
	Model string
	// BaseURL overrides the OpenRouter endpoint, for testing.
	BaseURL string
}

// OpenRouter completes prompts through OpenRouter's OpenAI-compatible API.
type OpenRouter struct {
	client *openai.Client
	model  string
}

// NewOpenRouter creates an OpenRouter-backed completer.
// Returns an error when no API key is available so callers stay on their
// deterministic fallback.
func NewOpenRouter(cfg OpenRouterConfig) (*OpenRouter, error) {
	apiKey := cfg.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENROUTER_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY is not set")
	}

	model := cfg.Model
	if model == "" {
		model = os.Getenv("OPENROUTER_MODEL")
	}
	if model == "" {
		model = DefaultOpenRouterModel
	}

	clientCfg := openai.DefaultConfig(apiKey)
	clientCfg.BaseURL = OpenRouterBaseURL
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	return &OpenRouter{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
	}, nil
}

// Model returns the configured model slug.
func (o *OpenRouter) Model() string {
	return o.model
}

// Complete sends a system + user prompt pair and returns the trimmed reply.
func (o *OpenRouter) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openrouter completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoCompletion
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
