//go:build !ocr

package ocr

import "context"

// FitzRasterizer is the stub used when OCR support is not compiled in.
type FitzRasterizer struct{}

// NewFitzRasterizer returns a rasterizer that always fails with ErrOCRNotEnabled.
func NewFitzRasterizer() *FitzRasterizer {
	return &FitzRasterizer{}
}

func (r *FitzRasterizer) Rasterize(ctx context.Context, pdfPath string, dpi float64, fn PageFunc) (int, error) {
	return 0, ErrOCRNotEnabled
}
