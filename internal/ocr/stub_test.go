//go:build !ocr

package ocr

import (
	"context"
	"errors"
	"testing"
)

func TestStubsReportNotEnabled(t *testing.T) {
	engine := NewTesseractEngine("eng")
	if engine.Available() {
		t.Fatal("stub engine must not report available")
	}
	if _, err := engine.NewRecognizer(); !errors.Is(err, ErrOCRNotEnabled) {
		t.Fatalf("expected ErrOCRNotEnabled, got %v", err)
	}

	called := false
	_, err := NewFitzRasterizer().Rasterize(context.Background(), "scan.pdf", 144, func(int, []byte) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrOCRNotEnabled) {
		t.Fatalf("expected ErrOCRNotEnabled, got %v", err)
	}
	if called {
		t.Fatal("page callback must not run")
	}
}
