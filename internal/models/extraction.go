package models

import "strings"

// Mode selects the text extraction strategy for an upload
type Mode int

const (
	// ModeDirectPDF reads the PDF's embedded text objects
	ModeDirectPDF Mode = iota
	// ModeScannedPDF rasterizes every page and runs OCR on it
	ModeScannedPDF
	// ModeImage runs OCR directly on the uploaded image
	ModeImage
)

func (m Mode) String() string {
	switch m {
	case ModeDirectPDF:
		return "direct-pdf"
	case ModeScannedPDF:
		return "scanned-pdf"
	case ModeImage:
		return "image"
	default:
		return "unknown"
	}
}

// PDFMode picks the PDF strategy from the "scanned" form flag.
func PDFMode(scanned bool) Mode {
	if scanned {
		return ModeScannedPDF
	}
	return ModeDirectPDF
}

// UploadedFile describes a file staged on disk for the lifetime of one request
type UploadedFile struct {
	Path        string `json:"-"`
	Filename    string `json:"filename"`    // Original client filename
	ContentType string `json:"contentType"` // Declared media type
	Size        int64  `json:"size"`
}

// ExtractionRequest is built once from the form fields and never mutated
type ExtractionRequest struct {
	File    UploadedFile
	Mode    Mode
	Analyze bool
}

// ExtractionResult is the output of the text extraction engine
type ExtractionResult struct {
	Text      string `json:"text"`
	PageCount int    `json:"pageCount,omitempty"` // Zero for images
	Mode      Mode   `json:"-"`
}

// HasText reports whether the extracted text is worth analyzing
func (r *ExtractionResult) HasText() bool {
	return r != nil && strings.TrimSpace(r.Text) != ""
}

// ResponsePayload is the body returned by both upload endpoints
type ResponsePayload struct {
	Text          string  `json:"text"`
	Analysis      *string `json:"analysis"`
	AnalysisError string  `json:"analysisError,omitempty"`
}

// Compose merges extraction and (possibly absent) analysis into the reply.
func Compose(text string, analysis *string) *ResponsePayload {
	return &ResponsePayload{
		Text:     text,
		Analysis: analysis,
	}
}
