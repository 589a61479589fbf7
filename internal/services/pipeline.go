package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/ai"
	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/models"
)

// Extractor turns a staged file into text
type Extractor interface {
	Extract(ctx context.Context, mode models.Mode, path string) (*models.ExtractionResult, error)
}

// Analyzer produces the Markdown analysis for extracted text
type Analyzer interface {
	Analyze(ctx context.Context, text string) (string, error)
}

// Pipeline runs one request: extract, optionally analyze, compose
type Pipeline struct {
	extractor Extractor
	analyzer  Analyzer
	validator *AnalysisValidator
	strict    bool
}

// NewPipeline creates a pipeline. With strict set, an analysis failure fails
// the whole request; otherwise the text is still returned.
func NewPipeline(extractor Extractor, analyzer Analyzer, strict bool) *Pipeline {
	return &Pipeline{
		extractor: extractor,
		analyzer:  analyzer,
		validator: NewAnalysisValidator(),
		strict:    strict,
	}
}

// Process handles a single extraction request. The caller owns the staged
// file and removes it afterwards.
func (p *Pipeline) Process(ctx context.Context, req models.ExtractionRequest) (*models.ResponsePayload, error) {
	result, err := p.extractor.Extract(ctx, req.Mode, req.File.Path)
	if err != nil {
		return nil, err
	}

	if !req.Analyze || !result.HasText() {
		return models.Compose(result.Text, nil), nil
	}

	analysis, err := p.analyzer.Analyze(ctx, result.Text)
	if err != nil {
		if p.strict {
			return nil, err
		}
		log.Printf("[AI] Analysis skipped for %s: %v", req.File.Filename, err)
		payload := models.Compose(result.Text, nil)
		payload.AnalysisError = describeAnalysisError(err)
		return payload, nil
	}

	if check := p.validator.Validate(analysis); !check.Valid || check.NeedsReview {
		codes := make([]string, 0, len(check.Errors)+len(check.Warnings))
		for _, e := range check.Errors {
			codes = append(codes, e.Field+":"+e.Code)
		}
		for _, w := range check.Warnings {
			codes = append(codes, w.Field+":"+w.Code)
		}
		log.Printf("[AI] Analysis for %s does not follow the requested layout: %s", req.File.Filename, strings.Join(codes, ", "))
	}

	return models.Compose(result.Text, &analysis), nil
}

// describeAnalysisError gives the client a short reason without provider details
func describeAnalysisError(err error) string {
	switch {
	case errors.Is(err, ai.ErrMissingAPIKey):
		return "analysis is not configured"
	case errors.Is(err, context.DeadlineExceeded):
		return "analysis timed out"
	default:
		return "analysis failed"
	}
}
