package llm

import (
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"

	"github.com/ShayCichocki/maestro/internal/config"
)

// NewFromConfig builds a Completer for the configured provider.
// An empty provider returns (nil, nil): the pipeline runs on deterministic
// fallbacks alone. Construction failures (typically missing credentials)
// return an error; callers log it and proceed with a nil Completer.
func NewFromConfig(cfg config.LLMConfig) (Completer, error) {
	switch cfg.Provider {
	case "":
		return nil, nil
	case "openrouter":
		return NewOpenRouter(OpenRouterConfig{
			APIKey: cfg.OpenRouter.APIKey,
			Model:  cfg.OpenRouter.Model,
		})
	case "anthropic":
		return NewAnthropic(AnthropicConfig{
			Model:         anthropic.Model(cfg.Anthropic.Model),
			APIKey:        cfg.Anthropic.APIKey,
			UseAWSBedrock: cfg.Anthropic.UseAWSBedrock,
			AWSRegion:     cfg.Anthropic.AWSRegion,
			AWSProfile:    cfg.Anthropic.AWSProfile,
		})
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
