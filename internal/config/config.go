package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/models"
	"gopkg.in/yaml.v3"
)

// Defaults applied before the config file and environment are read
const (
	DefaultPort          = 4040
	DefaultUploadDir     = "uploads"
	DefaultMaxUploadMB   = 20
	DefaultOCRLanguage   = "eng"
	DefaultOCRScale      = 2.0
	DefaultOCRTimeout    = 120
	DefaultAITimeout     = 60
	DefaultProvider      = "gemini"
	DefaultGeminiModel   = "gemini-1.5-flash"
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultOpenAIModel   = "gpt-4o-mini"
	DefaultOllamaBaseURL = "http://localhost:11434"
	DefaultOllamaModel   = "llama3"
)

// DefaultAllowedOrigins are the front-end origins accepted when nothing is configured
var DefaultAllowedOrigins = []string{
	"http://localhost:3000",
	"http://localhost:5173",
}

// Default returns a configuration with every default filled in
func Default() *models.Config {
	return &models.Config{
		Port:        DefaultPort,
		UploadDir:   DefaultUploadDir,
		MaxUploadMB: DefaultMaxUploadMB,
		CORS: models.CORSConfig{
			AllowedOrigins: append([]string(nil), DefaultAllowedOrigins...),
		},
		OCR: models.OCRConfig{
			Language:       DefaultOCRLanguage,
			Scale:          DefaultOCRScale,
			TimeoutSeconds: DefaultOCRTimeout,
		},
		AI: models.AIConfig{
			DefaultProvider: DefaultProvider,
			TimeoutSeconds:  DefaultAITimeout,
			Gemini: models.GeminiConfig{
				Model:   DefaultGeminiModel,
				BaseURL: DefaultGeminiBaseURL,
			},
			OpenAI: models.OpenAIConfig{
				Model: DefaultOpenAIModel,
			},
			Ollama: models.OllamaConfig{
				BaseURL: DefaultOllamaBaseURL,
				Model:   DefaultOllamaModel,
			},
		},
	}
}

// Load reads the YAML file at path (a missing file is fine) and then applies
// environment overrides.
func Load(path string) (*models.Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// env-only deployment
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}
	fillZeroValues(config)
	return config, nil
}

func applyEnv(config *models.Config) error {
	if port := os.Getenv("PORT"); port != "" {
		if _, err := fmt.Sscanf(port, "%d", &config.Port); err != nil {
			return fmt.Errorf("invalid PORT %q: %w", port, err)
		}
	}
	if host := os.Getenv("HOST"); host != "" {
		config.Host = host
	}
	if dir := os.Getenv("UPLOAD_DIR"); dir != "" {
		config.UploadDir = dir
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		config.CORS.AllowedOrigins = splitList(origins)
	}
	if lang := os.Getenv("OCR_LANGUAGE"); lang != "" {
		config.OCR.Language = lang
	}
	if apiKey := os.Getenv("GEMINI_API_KEY"); apiKey != "" {
		config.AI.Gemini.APIKey = apiKey
	}
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		config.AI.Gemini.Model = model
	}
	if baseURL := os.Getenv("GEMINI_BASE_URL"); baseURL != "" {
		config.AI.Gemini.BaseURL = baseURL
	}
	if apiKey := os.Getenv("OPENAI_API_KEY"); apiKey != "" {
		config.AI.OpenAI.APIKey = apiKey
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		config.AI.OpenAI.BaseURL = baseURL
	}
	if model := os.Getenv("OPENAI_MODEL"); model != "" {
		config.AI.OpenAI.Model = model
	}
	if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
		config.AI.Ollama.BaseURL = baseURL
	}
	if model := os.Getenv("OLLAMA_MODEL"); model != "" {
		config.AI.Ollama.Model = model
	}
	if provider := os.Getenv("AI_PROVIDER"); provider != "" {
		config.AI.DefaultProvider = provider
	}
	return nil
}

// fillZeroValues restores defaults a config file explicitly zeroed out.
func fillZeroValues(config *models.Config) {
	if config.Port == 0 {
		config.Port = DefaultPort
	}
	if config.UploadDir == "" {
		config.UploadDir = DefaultUploadDir
	}
	if config.MaxUploadMB <= 0 {
		config.MaxUploadMB = DefaultMaxUploadMB
	}
	if config.OCR.Language == "" {
		config.OCR.Language = DefaultOCRLanguage
	}
	if config.OCR.Scale <= 0 {
		config.OCR.Scale = DefaultOCRScale
	}
	if config.OCR.TimeoutSeconds <= 0 {
		config.OCR.TimeoutSeconds = DefaultOCRTimeout
	}
	if config.AI.TimeoutSeconds <= 0 {
		config.AI.TimeoutSeconds = DefaultAITimeout
	}
	if config.AI.DefaultProvider == "" {
		config.AI.DefaultProvider = DefaultProvider
	}
	if config.AI.Gemini.Model == "" {
		config.AI.Gemini.Model = DefaultGeminiModel
	}
	if config.AI.Gemini.BaseURL == "" {
		config.AI.Gemini.BaseURL = DefaultGeminiBaseURL
	}
	if config.AI.OpenAI.Model == "" {
		config.AI.OpenAI.Model = DefaultOpenAIModel
	}
	if config.AI.Ollama.BaseURL == "" {
		config.AI.Ollama.BaseURL = DefaultOllamaBaseURL
	}
	if config.AI.Ollama.Model == "" {
		config.AI.Ollama.Model = DefaultOllamaModel
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
