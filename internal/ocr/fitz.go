//go:build ocr

package ocr

import (
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"
)

// FitzRasterizer renders pages with MuPDF
type FitzRasterizer struct{}

// NewFitzRasterizer creates a MuPDF-backed rasterizer
func NewFitzRasterizer() *FitzRasterizer {
	return &FitzRasterizer{}
}

// Rasterize renders pages 1..N in order. Each PNG is handed to fn and dropped
// before the next page is rendered, so only one page bitmap is live at a time.
func (r *FitzRasterizer) Rasterize(ctx context.Context, pdfPath string, dpi float64, fn PageFunc) (int, error) {
	doc, err := fitz.New(pdfPath)
	if err != nil {
		return 0, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	numPages := doc.NumPage()
	for i := 0; i < numPages; i++ {
		if err := ctx.Err(); err != nil {
			return i, err
		}

		png, err := doc.ImagePNG(i, dpi)
		if err != nil {
			return i, fmt.Errorf("render page %d: %w", i+1, err)
		}
		if err := fn(i+1, png); err != nil {
			return i, err
		}
	}
	return numPages, nil
}
