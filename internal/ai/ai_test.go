package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"

	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/models"
)

func TestBuildPrompt(t *testing.T) {
	text := "50% off today!! {limited} #sale\nsecond line"
	prompt := BuildPrompt(text)

	for _, want := range []string{HeadingImprovedText, HeadingSuggestedHashtags, HeadingEngagementAdvice, "5 and 10", "Markdown"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
	if !strings.HasSuffix(prompt, text) {
		t.Errorf("expected text verbatim at end of prompt, got %q", prompt)
	}
}

func TestGeminiProvider_KeyInURLAndFirstCandidate(t *testing.T) {
	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.URL.Path != "/models/gemini-1.5-flash:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if key := r.URL.Query().Get("key"); key != "test-key" {
			t.Errorf("expected key in query, got %q", key)
		}

		var req geminiRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Contents) == 1 && len(req.Contents[0].Parts) == 1 {
			gotPrompt = req.Contents[0].Parts[0].Text
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[
			{"content":{"parts":[{"text":"## Improved Text\n"},{"text":"Hello World"}]}},
			{"content":{"parts":[{"text":"second candidate"}]}}
		]}`))
	}))
	defer server.Close()

	p := NewGeminiProvider("test-key", "", server.URL+"/")
	out, err := p.Generate(context.Background(), "the prompt")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "## Improved Text\nHello World" {
		t.Fatalf("unexpected output %q", out)
	}
	if gotPrompt != "the prompt" {
		t.Fatalf("server received prompt %q", gotPrompt)
	}
}

func TestGeminiProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"forbidden", http.StatusForbidden, `{"error":{"code":403,"message":"API key not valid","status":"PERMISSION_DENIED"}}`},
		{"server error", http.StatusInternalServerError, `oops`},
		{"not json", http.StatusOK, `<html>`},
		{"no candidates", http.StatusOK, `{"candidates":[]}`},
		{"blocked", http.StatusOK, `{"promptFeedback":{"blockReason":"SAFETY"}}`},
		{"empty parts", http.StatusOK, `{"candidates":[{"content":{"parts":[]},"finishReason":"MAX_TOKENS"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			p := NewGeminiProvider("secret-key", "gemini-1.5-flash", server.URL)
			_, err := p.Generate(context.Background(), "prompt")
			if err == nil {
				t.Fatal("expected error")
			}
			if strings.Contains(err.Error(), "secret-key") {
				t.Fatalf("error leaks API key: %v", err)
			}
			if tt.status >= 400 {
				var apiErr *googleapi.Error
				if !errors.As(err, &apiErr) || apiErr.Code != tt.status {
					t.Fatalf("expected googleapi.Error %d, got %v", tt.status, err)
				}
			}
		})
	}
}

func TestGeminiProvider_UnreachableDoesNotLeakKey(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	p := NewGeminiProvider("secret-key", "", url)
	_, err := p.Generate(context.Background(), "prompt")
	if err == nil {
		t.Fatal("expected error")
	}
	if strings.Contains(err.Error(), "secret-key") {
		t.Fatalf("error leaks API key: %v", err)
	}
}

func chatServer(t *testing.T, wantAuth, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != wantAuth {
			t.Errorf("unexpected Authorization %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  "test",
			"choices": []map[string]any{
				{"index": 0, "message": map[string]string{"role": "assistant", "content": content}, "finish_reason": "stop"},
			},
		})
	}))
}

func TestOpenAIProvider(t *testing.T) {
	server := chatServer(t, "Bearer sk-test", "## Improved Text\nok")
	defer server.Close()

	p := NewOpenAIProvider("sk-test", server.URL+"/v1", "gpt-4o-mini")
	out, err := p.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "## Improved Text\nok" || p.Name() != ProviderOpenAI {
		t.Fatalf("unexpected output %q from %s", out, p.Name())
	}
}

func TestOllamaProvider(t *testing.T) {
	server := chatServer(t, "Bearer ollama", "local answer")
	defer server.Close()

	p := NewOllamaProvider(server.URL+"/", "")
	out, err := p.Generate(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "local answer" || p.Name() != ProviderOllama {
		t.Fatalf("unexpected output %q from %s", out, p.Name())
	}
}

func TestCandidateText(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("Hello "), genai.Text("World")}}},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("ignored")}}},
		},
	}
	if got := candidateText(resp); got != "Hello World" {
		t.Fatalf("unexpected text %q", got)
	}
	if got := candidateText(nil); got != "" {
		t.Fatalf("expected empty text for nil response, got %q", got)
	}
	if got := candidateText(&genai.GenerateContentResponse{}); got != "" {
		t.Fatalf("expected empty text without candidates, got %q", got)
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		name       string
		cfg        models.AIConfig
		wantName   string
		missingKey bool
		wantErr    bool
	}{
		{"gemini default", models.AIConfig{Gemini: models.GeminiConfig{APIKey: "k"}}, ProviderGemini, false, false},
		{"gemini no key", models.AIConfig{DefaultProvider: ProviderGemini}, "", true, true},
		{"gemini sdk", models.AIConfig{DefaultProvider: ProviderGeminiSDK, Gemini: models.GeminiConfig{APIKey: "k"}}, ProviderGeminiSDK, false, false},
		{"gemini sdk no key", models.AIConfig{DefaultProvider: ProviderGeminiSDK}, "", true, true},
		{"openai no key", models.AIConfig{DefaultProvider: ProviderOpenAI}, "", true, true},
		{"openai", models.AIConfig{DefaultProvider: ProviderOpenAI, OpenAI: models.OpenAIConfig{APIKey: "k"}}, ProviderOpenAI, false, false},
		{"ollama needs no key", models.AIConfig{DefaultProvider: ProviderOllama}, ProviderOllama, false, false},
		{"unknown", models.AIConfig{DefaultProvider: "claude"}, "", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewProvider(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if errors.Is(err, ErrMissingAPIKey) != tt.missingKey {
					t.Fatalf("ErrMissingAPIKey mismatch: %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Name() != tt.wantName {
				t.Fatalf("expected %s, got %s", tt.wantName, p.Name())
			}
		})
	}
}

func TestAnalyzer_MissingKeyMakesNoCall(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	a := NewAnalyzerFromConfig(models.AIConfig{
		DefaultProvider: ProviderGemini,
		Gemini:          models.GeminiConfig{BaseURL: server.URL},
	})
	if a.Ready() {
		t.Fatal("analyzer without key must not be ready")
	}

	_, err := a.Analyze(context.Background(), "Hello World")
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 0 {
		t.Fatalf("expected no outbound calls, got %d", n)
	}
}

type fakeProvider struct {
	out         string
	err         error
	prompt      string
	hadDeadline bool
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompt = prompt
	_, f.hadDeadline = ctx.Deadline()
	return f.out, f.err
}

func TestAnalyzer_Analyze(t *testing.T) {
	p := &fakeProvider{out: "## Improved Text\nHello, World!"}
	a := NewAnalyzer(p, time.Minute)

	out, err := a.Analyze(context.Background(), "hello world")
	if err != nil {
		t.Fatalf("Analyze failed: %v", err)
	}
	if out != p.out {
		t.Fatalf("expected provider output unchanged, got %q", out)
	}
	if !strings.HasSuffix(p.prompt, "hello world") {
		t.Fatalf("provider did not receive built prompt: %q", p.prompt)
	}
	if !p.hadDeadline {
		t.Fatal("expected a deadline on the analysis context")
	}
	if !a.Ready() || a.ProviderName() != "fake" {
		t.Fatal("analyzer with provider should be ready")
	}
}

func TestAnalyzer_WrapsFailures(t *testing.T) {
	tests := []struct {
		name string
		p    *fakeProvider
	}{
		{"provider error", &fakeProvider{err: errors.New("connection reset")}},
		{"blank output", &fakeProvider{out: "  \n"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAnalyzer(tt.p, 0).Analyze(context.Background(), "text")
			var analysisErr *AnalysisError
			if !errors.As(err, &analysisErr) {
				t.Fatalf("expected AnalysisError, got %v", err)
			}
			if analysisErr.Provider != "fake" {
				t.Fatalf("unexpected provider %q", analysisErr.Provider)
			}
		})
	}
}
