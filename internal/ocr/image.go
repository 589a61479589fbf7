package ocr

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedImage is returned for bytes that no registered decoder accepts.
var ErrUnsupportedImage = errors.New("unsupported or corrupt image")

// ImageInfo describes an uploaded image without decoding its pixels
type ImageInfo struct {
	Format string
	Width  int
	Height int
}

// SniffImage reads only the image header to confirm the bytes are a format
// Tesseract can consume (png, jpeg, gif, bmp, tiff, webp).
func SniffImage(data []byte) (ImageInfo, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return ImageInfo{}, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return ImageInfo{}, fmt.Errorf("%w: empty %s image", ErrUnsupportedImage, format)
	}
	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
