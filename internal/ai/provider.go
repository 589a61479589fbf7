package ai

import (
	"context"
	"errors"
	"fmt"

	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/models"
)

// Provider names accepted in ai.default_provider
const (
	ProviderGemini    = "gemini"
	ProviderGeminiSDK = "gemini-sdk"
	ProviderOpenAI    = "openai"
	ProviderOllama    = "ollama"
)

var (
	// ErrMissingAPIKey is returned before any network call when the selected
	// provider needs a key and none is configured.
	ErrMissingAPIKey = errors.New("AI API key not configured")

	errEmptyResponse = errors.New("model returned no text")
)

// Provider sends a single prompt to a generative model and returns its text
type Provider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewProvider creates the provider selected by cfg.DefaultProvider
func NewProvider(cfg models.AIConfig) (Provider, error) {
	switch cfg.DefaultProvider {
	case ProviderGemini, "":
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("%w: set GEMINI_API_KEY", ErrMissingAPIKey)
		}
		return NewGeminiProvider(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.BaseURL), nil

	case ProviderGeminiSDK:
		if cfg.Gemini.APIKey == "" {
			return nil, fmt.Errorf("%w: set GEMINI_API_KEY", ErrMissingAPIKey)
		}
		return NewGenAIProvider(cfg.Gemini.APIKey, cfg.Gemini.Model), nil

	case ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			return nil, fmt.Errorf("%w: set OPENAI_API_KEY", ErrMissingAPIKey)
		}
		return NewOpenAIProvider(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model), nil

	case ProviderOllama:
		return NewOllamaProvider(cfg.Ollama.BaseURL, cfg.Ollama.Model), nil

	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.DefaultProvider)
	}
}
