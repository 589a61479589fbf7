package models

import (
	"errors"
	"fmt"
)

var (
	// ErrNoFile is returned when the multipart form carries no "file" field
	ErrNoFile = errors.New("no file provided")
	// ErrInvalidForm covers oversized or malformed multipart bodies
	ErrInvalidForm = errors.New("file too large or invalid form data")
)

// ExtractionError wraps any failure inside the text extraction engine
type ExtractionError struct {
	Mode Mode
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s extraction failed: %v", e.Mode, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// IsInputError reports whether err should be surfaced to the caller as a 400
func IsInputError(err error) bool {
	return errors.Is(err, ErrNoFile) || errors.Is(err, ErrInvalidForm)
}
