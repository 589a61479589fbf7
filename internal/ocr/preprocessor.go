package ocr

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
)

// Preprocessor enhances images with ImageMagick before OCR. Any failure
// falls back to the original bytes; enhancement never fails a request.
type Preprocessor struct {
	binaries []string
}

// NewPreprocessor creates a preprocessor that prefers 'magick' (ImageMagick 7)
// and falls back to 'convert' (ImageMagick 6).
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{binaries: []string{"magick", "convert"}}
}

// Binary returns the ImageMagick executable found on PATH, or "".
func (p *Preprocessor) Binary() string {
	for _, name := range p.binaries {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	return ""
}

// Enhance applies grayscale, contrast, denoise and sharpen filters.
func (p *Preprocessor) Enhance(ctx context.Context, imageData []byte) []byte {
	binary := p.Binary()
	if binary == "" {
		return imageData
	}

	processed, err := p.run(ctx, binary, imageData)
	if err != nil {
		log.Printf("[Preprocessor] ImageMagick failed, using original image: %v", err)
		return imageData
	}

	log.Printf("[Preprocessor] Image enhanced: %d bytes -> %d bytes", len(imageData), len(processed))
	return processed
}

func (p *Preprocessor) run(ctx context.Context, binary string, imageData []byte) ([]byte, error) {
	in, err := os.CreateTemp("", "preprocess-in-*")
	if err != nil {
		return nil, fmt.Errorf("create input: %w", err)
	}
	defer os.Remove(in.Name())

	if _, err := in.Write(imageData); err != nil {
		in.Close()
		return nil, fmt.Errorf("write input: %w", err)
	}
	if err := in.Close(); err != nil {
		return nil, fmt.Errorf("close input: %w", err)
	}

	out, err := os.CreateTemp("", "preprocess-out-*.png")
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	out.Close()
	defer os.Remove(out.Name())

	// Pipeline: resize (if too large) -> grayscale -> contrast -> denoise -> sharpen
	args := []string{
		in.Name(),
		"-resize", "3000x3000>",
		"-colorspace", "Gray",
		"-normalize",
		"-contrast-stretch", "2%x1%",
		"-despeckle",
		"-sharpen", "0x1",
		out.Name(),
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w - %s", err, stderr.String())
	}

	processed, err := os.ReadFile(out.Name())
	if err != nil {
		return nil, fmt.Errorf("read output: %w", err)
	}
	if len(processed) == 0 {
		return nil, fmt.Errorf("empty output")
	}
	return processed, nil
}
