package extract

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/models"
	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/ocr"
)

// Strategy extracts text from a staged file
type Strategy interface {
	Extract(ctx context.Context, path string) (*models.ExtractionResult, error)
}

// Engine dispatches each request to the strategy for its mode
type Engine struct {
	strategies map[models.Mode]Strategy
	timeout    time.Duration
}

// NewEngine wires the three strategies from the OCR config and backends.
// pre may be nil to disable image enhancement.
func NewEngine(cfg models.OCRConfig, engine ocr.Engine, rasterizer ocr.Rasterizer, pre *ocr.Preprocessor) *Engine {
	return &Engine{
		strategies: map[models.Mode]Strategy{
			models.ModeDirectPDF:  DirectPDF{},
			models.ModeScannedPDF: &ScannedPDF{Rasterizer: rasterizer, Engine: engine, DPI: ocr.RenderDPI(cfg.Scale)},
			models.ModeImage:      &Image{Engine: engine, Preprocessor: pre},
		},
		timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
	}
}

// Extract runs the strategy for mode against the file at path. Every failure
// is returned as a *models.ExtractionError.
func (e *Engine) Extract(ctx context.Context, mode models.Mode, path string) (*models.ExtractionResult, error) {
	strategy, ok := e.strategies[mode]
	if !ok {
		return nil, &models.ExtractionError{Mode: mode, Err: fmt.Errorf("no strategy registered")}
	}

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	start := time.Now()
	result, err := strategy.Extract(ctx, path)
	if err != nil {
		return nil, &models.ExtractionError{Mode: mode, Err: err}
	}
	result.Mode = mode

	log.Printf("[Extract] %s: %d pages, %d chars in %s", mode, result.PageCount, len(result.Text), time.Since(start).Round(time.Millisecond))
	return result, nil
}
