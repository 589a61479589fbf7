package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/models"
)

// AnalysisError wraps a failed call to the model: network, non-2xx or an
// unusable response.
type AnalysisError struct {
	Provider string
	Err      error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis via %s failed: %v", e.Provider, e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// Analyzer produces the editorial analysis for a piece of extracted text
type Analyzer struct {
	provider  Provider
	configErr error
	timeout   time.Duration
}

// NewAnalyzer wraps an already constructed provider
func NewAnalyzer(provider Provider, timeout time.Duration) *Analyzer {
	return &Analyzer{provider: provider, timeout: timeout}
}

// NewAnalyzerFromConfig selects the provider from cfg. A configuration
// problem such as a missing key does not fail here; it is returned by every
// Analyze call instead so the service can still extract text.
func NewAnalyzerFromConfig(cfg models.AIConfig) *Analyzer {
	provider, err := NewProvider(cfg)
	if err != nil {
		log.Printf("[AI] Warning: analysis unavailable: %v", err)
	}
	return &Analyzer{
		provider:  provider,
		configErr: err,
		timeout:   time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

// Ready reports whether Analyze can reach a provider
func (a *Analyzer) Ready() bool {
	return a.configErr == nil && a.provider != nil
}

// ProviderName returns the configured provider, or "" when none is usable
func (a *Analyzer) ProviderName() string {
	if !a.Ready() {
		return ""
	}
	return a.provider.Name()
}

// Analyze sends text through the fixed prompt and returns the model's
// Markdown answer as-is.
func (a *Analyzer) Analyze(ctx context.Context, text string) (string, error) {
	if a.configErr != nil {
		return "", a.configErr
	}
	if a.provider == nil {
		return "", ErrMissingAPIKey
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	out, err := a.provider.Generate(ctx, BuildPrompt(text))
	if err != nil {
		return "", &AnalysisError{Provider: a.provider.Name(), Err: err}
	}
	if strings.TrimSpace(out) == "" {
		return "", &AnalysisError{Provider: a.provider.Name(), Err: errEmptyResponse}
	}

	log.Printf("[AI] %s analysis: %d chars in %s", a.provider.Name(), len(out), time.Since(start).Round(time.Millisecond))
	return out, nil
}
