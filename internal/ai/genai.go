package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GenAIProvider talks to Gemini through the Go SDK
type GenAIProvider struct {
	apiKey string
	model  string
}

func NewGenAIProvider(apiKey, model string) *GenAIProvider {
	if model == "" {
		model = "gemini-1.5-flash"
	}
	return &GenAIProvider{apiKey: apiKey, model: model}
}

func (p *GenAIProvider) Name() string { return ProviderGeminiSDK }

func (p *GenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(p.apiKey))
	if err != nil {
		return "", fmt.Errorf("genai.NewClient: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(p.model)
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := candidateText(resp)
	if text == "" {
		return "", errEmptyResponse
	}
	return text, nil
}

// candidateText joins the text parts of the first candidate
func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}
