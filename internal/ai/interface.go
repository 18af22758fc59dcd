package ai

import (
	"context"
	"fmt"
	"strings"

	"wanderplan/internal/config"
)

// LLMProvider defines the contract for interacting with AI models.
// This interface allows for swapping different AI providers (Gemini, OpenAI, etc.).
type LLMProvider interface {
	// Generate sends a fully rendered prompt and returns the raw model text.
	Generate(ctx context.Context, prompt string) (string, error)

	// Close releases client resources.
	Close() error
}

// NewProvider builds the provider selected in cfg.
func NewProvider(ctx context.Context, cfg config.LLMConfig) (LLMProvider, error) {
	switch strings.ToLower(cfg.Provider) {
	case config.ProviderGemini:
		return NewGeminiProvider(ctx, cfg.GeminiKey, cfg.GeminiModel)
	case config.ProviderOpenAI:
		return NewOpenAIProvider(cfg.OpenAIKey, cfg.OpenAIModel), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", cfg.Provider)
	}
}
