package llms

import (
	"context"
	"fmt"
	"strings"
)

// MockProvider is a deterministic offline provider. It keeps the whole
// system runnable with no API key and no local model server.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) ModelName() string {
	return "mock"
}

func (p *MockProvider) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	prompt := strings.TrimSpace(userPrompt)
	if prompt == "" {
		return "", fmt.Errorf("empty prompt")
	}

	return fmt.Sprintf("Here is a short study note.\n\n%s\n\n"+
		"Start from the definition, work through one small example by hand, "+
		"then try a variation on your own.", prompt), nil
}

// GenerateJSON returns an empty object. Callers that need structured
// output treat it as "nothing generated" and use their static fallback.
func (p *MockProvider) GenerateJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return "{}", nil
}
