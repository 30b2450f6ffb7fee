// Package llms provides the text-generation providers agents use for
// explanations and quiz authoring.
package llms

import (
	"context"
	"fmt"

	"github.com/senseihq/sensei/pkg/config"
)

// Provider generates text from a system prompt and a user prompt.
// Implementations are safe for concurrent use.
type Provider interface {
	// Generate returns the model's completion for the given prompts.
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// GenerateJSON returns a completion constrained to a single JSON
	// object. Providers without native JSON modes fall back to prompt
	// instructions.
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// ModelName returns the configured model identifier.
	ModelName() string
}

// New builds the provider named by cfg.Provider.
func New(cfg *config.LLMConfig) (Provider, error) {
	switch cfg.Provider {
	case "openai":
		return NewOpenAIProviderFromConfig(cfg)
	case "ollama":
		return NewOllamaProviderFromConfig(cfg)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (must be openai, ollama, or mock)", cfg.Provider)
	}
}
