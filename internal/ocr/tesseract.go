//go:build ocr

package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine hands out gosseract clients configured for one language
type TesseractEngine struct {
	language string
}

// NewTesseractEngine creates a Tesseract-backed engine
func NewTesseractEngine(language string) *TesseractEngine {
	if language == "" {
		language = "eng"
	}
	return &TesseractEngine{language: language}
}

func (e *TesseractEngine) Name() string { return "tesseract" }

func (e *TesseractEngine) Version() string { return gosseract.Version() }

func (e *TesseractEngine) Available() bool { return true }

// NewRecognizer opens a client that is reused across the pages of one document.
func (e *TesseractEngine) NewRecognizer() (Recognizer, error) {
	client := gosseract.NewClient()
	if err := client.SetLanguage(e.language); err != nil {
		client.Close()
		return nil, fmt.Errorf("set language %q: %w", e.language, err)
	}
	return &tesseractRecognizer{client: client}, nil
}

type tesseractRecognizer struct {
	client *gosseract.Client
}

func (r *tesseractRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := r.client.SetImageFromBytes(image); err != nil {
		return "", fmt.Errorf("set image: %w", err)
	}
	text, err := r.client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (r *tesseractRecognizer) Close() error {
	return r.client.Close()
}
