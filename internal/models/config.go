package models

// Config represents the service configuration
type Config struct {
	// Server config
	Port int    `yaml:"port"`
	Host string `yaml:"host"`

	// Upload staging
	UploadDir   string `yaml:"upload_dir"`    // Transient staging area (default: "uploads")
	MaxUploadMB int64  `yaml:"max_upload_mb"` // Request body cap in megabytes

	// CORS config
	CORS CORSConfig `yaml:"cors"`

	// OCR config
	OCR OCRConfig `yaml:"ocr"`

	// AI config
	AI AIConfig `yaml:"ai"`
}

// CORSConfig holds the cross-origin allow-list
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"` // "*" allows any origin
}

// OCRConfig represents OCR-specific configuration
type OCRConfig struct {
	Language       string  `yaml:"language"`        // Tesseract language (default: "eng")
	Scale          float64 `yaml:"scale"`           // Page upscale factor before OCR (default: 2.0)
	Preprocess     bool    `yaml:"preprocess"`      // Run ImageMagick enhancement on images
	TimeoutSeconds int     `yaml:"timeout_seconds"` // Bound on a single extraction
}

// AIConfig represents AI provider configuration
type AIConfig struct {
	// Gemini (REST and SDK)
	Gemini GeminiConfig `yaml:"gemini"`

	// OpenAI
	OpenAI OpenAIConfig `yaml:"openai"`

	// Ollama (local)
	Ollama OllamaConfig `yaml:"ollama"`

	// Default provider
	DefaultProvider string `yaml:"default_provider"` // "gemini", "gemini-sdk", "openai", "ollama"

	// Strict fails the whole request when analysis fails
	Strict bool `yaml:"strict"`

	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// GeminiConfig for Google Gemini
type GeminiConfig struct {
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`              // Default: "gemini-1.5-flash"
	BaseURL string `yaml:"base_url,omitempty"` // REST endpoint root
}

// OpenAIConfig for OpenAI/Azure OpenAI
type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url,omitempty"` // For custom endpoints
	Model   string `yaml:"model"`              // Default: "gpt-4o-mini"
}

// OllamaConfig for local Ollama
type OllamaConfig struct {
	BaseURL string `yaml:"base_url"` // Default: "http://localhost:11434"
	Model   string `yaml:"model"`    // e.g., "mistral", "llama3"
}
