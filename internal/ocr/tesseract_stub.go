//go:build !ocr

package ocr

// TesseractEngine is the stub used when OCR support is not compiled in.
type TesseractEngine struct {
	language string
}

// NewTesseractEngine returns an engine whose recognizers always fail with
// ErrOCRNotEnabled.
func NewTesseractEngine(language string) *TesseractEngine {
	return &TesseractEngine{language: language}
}

func (e *TesseractEngine) Name() string { return "tesseract" }

func (e *TesseractEngine) Version() string { return "" }

func (e *TesseractEngine) Available() bool { return false }

func (e *TesseractEngine) NewRecognizer() (Recognizer, error) {
	return nil, ErrOCRNotEnabled
}
