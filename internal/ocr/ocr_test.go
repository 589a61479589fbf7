package ocr

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func encodeImage(t *testing.T, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, 40, 20))
	for x := 0; x < 40; x++ {
		img.SetGray(x, 10, color.Gray{Y: 255})
	}
	var buf bytes.Buffer
	if err := encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestSniffImage(t *testing.T) {
	pngData := encodeImage(t, func(b *bytes.Buffer, img image.Image) error { return png.Encode(b, img) })
	bmpData := encodeImage(t, func(b *bytes.Buffer, img image.Image) error { return bmp.Encode(b, img) })

	tests := []struct {
		name   string
		data   []byte
		format string
		err    bool
	}{
		{"png", pngData, "png", false},
		{"bmp", bmpData, "bmp", false},
		{"pdf bytes", []byte("%PDF-1.4\n"), "", true},
		{"empty", nil, "", true},
		{"truncated png", pngData[:10], "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, err := SniffImage(tt.data)
			if tt.err {
				if !errors.Is(err, ErrUnsupportedImage) {
					t.Fatalf("expected ErrUnsupportedImage, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if info.Format != tt.format || info.Width != 40 || info.Height != 20 {
				t.Fatalf("unexpected info: %+v", info)
			}
		})
	}
}

func TestRenderDPI(t *testing.T) {
	if got := RenderDPI(2.0); got != 144 {
		t.Fatalf("RenderDPI(2.0) = %v, want 144", got)
	}
	if got := RenderDPI(0); got != BaseDPI {
		t.Fatalf("RenderDPI(0) = %v, want %v", got, BaseDPI)
	}
}

func TestPreprocessor_MissingBinaryReturnsOriginal(t *testing.T) {
	p := &Preprocessor{binaries: []string{"definitely-not-imagemagick-xyz"}}
	if p.Binary() != "" {
		t.Fatal("expected no binary")
	}
	in := []byte("raw image")
	if out := p.Enhance(context.Background(), in); !bytes.Equal(out, in) {
		t.Fatalf("expected original bytes back, got %q", out)
	}
}

func TestPreprocessor_FailingBinaryReturnsOriginal(t *testing.T) {
	// "false" exits non-zero on any unix system
	p := &Preprocessor{binaries: []string{"false"}}
	if p.Binary() == "" {
		t.Skip("false not on PATH")
	}
	in := []byte("raw image")
	if out := p.Enhance(context.Background(), in); !bytes.Equal(out, in) {
		t.Fatalf("expected original bytes back, got %q", out)
	}
}
