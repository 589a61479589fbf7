package extract

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/models"
	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/ocr"
)

// ScannedPDF renders each page and runs OCR on it, one page at a time.
type ScannedPDF struct {
	Rasterizer ocr.Rasterizer
	Engine     ocr.Engine
	DPI        float64
}

func (s *ScannedPDF) Extract(ctx context.Context, path string) (*models.ExtractionResult, error) {
	recognizer, err := s.Engine.NewRecognizer()
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", s.Engine.Name(), err)
	}
	defer recognizer.Close()

	var text strings.Builder
	pages, err := s.Rasterizer.Rasterize(ctx, path, s.DPI, func(page int, png []byte) error {
		pageText, err := recognizer.Recognize(ctx, png)
		if err != nil {
			return fmt.Errorf("ocr page %d: %w", page, err)
		}
		text.WriteString(pageText)
		text.WriteString("\n")
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &models.ExtractionResult{
		Text:      text.String(),
		PageCount: pages,
	}, nil
}

// Image runs OCR directly on an uploaded image; there is no rasterization.
type Image struct {
	Engine       ocr.Engine
	Preprocessor *ocr.Preprocessor
}

func (s *Image) Extract(ctx context.Context, path string) (*models.ExtractionResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if _, err := ocr.SniffImage(data); err != nil {
		return nil, err
	}
	if s.Preprocessor != nil {
		data = s.Preprocessor.Enhance(ctx, data)
	}

	recognizer, err := s.Engine.NewRecognizer()
	if err != nil {
		return nil, fmt.Errorf("start %s: %w", s.Engine.Name(), err)
	}
	defer recognizer.Close()

	text, err := recognizer.Recognize(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("ocr image: %w", err)
	}
	return &models.ExtractionResult{Text: text}, nil
}
