// Package ocr wraps the optical character recognition and page rendering
// backends used for scanned documents and images.
//
// The Tesseract and MuPDF backends need CGO and the native libraries, so they
// are only compiled with the "ocr" build tag:
//
//	go build -tags ocr ./...
//
// Without the tag every backend returns ErrOCRNotEnabled, while direct PDF
// extraction keeps working.
package ocr

import (
	"context"
	"errors"
)

// BaseDPI is the PDF user-space resolution; a scale of 1.0 renders at 72 DPI.
const BaseDPI = 72.0

// ErrOCRNotEnabled is returned by the stub backends compiled without -tags ocr.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild with -tags ocr")

// Engine creates recognizers for one request at a time.
type Engine interface {
	Name() string
	Version() string
	Available() bool
	NewRecognizer() (Recognizer, error)
}

// Recognizer runs OCR on encoded image bytes. It is not safe for concurrent use.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (string, error)
	Close() error
}

// PageFunc receives each rendered page (1-based) as PNG bytes. The slice is
// not retained after the call returns.
type PageFunc func(page int, png []byte) error

// Rasterizer renders PDF pages to bitmaps, strictly one page at a time.
type Rasterizer interface {
	Rasterize(ctx context.Context, pdfPath string, dpi float64, fn PageFunc) (int, error)
}

// RenderDPI converts an upscale factor into a render resolution.
func RenderDPI(scale float64) float64 {
	if scale <= 0 {
		scale = 1
	}
	return BaseDPI * scale
}
