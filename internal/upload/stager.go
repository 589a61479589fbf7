package upload

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/models"
)

// EnsureDir creates the staging directory if it does not exist yet.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return nil
}

// Stager writes request uploads into a transient staging directory
type Stager struct {
	dir string
	now func() time.Time
}

// NewStager returns a Stager rooted at dir. The directory must already exist.
func NewStager(dir string) *Stager {
	return &Stager{dir: dir, now: time.Now}
}

// Dir returns the staging directory
func (s *Stager) Dir() string {
	return s.dir
}

// StagedFile is an upload persisted for the lifetime of one request.
// Cleanup removes it and is safe to call more than once.
type StagedFile struct {
	models.UploadedFile

	once sync.Once
	err  error
}

// Stage copies r into a uniquely named file. On error nothing is left behind.
func (s *Stager) Stage(r io.Reader, filename, contentType string) (*StagedFile, error) {
	name := s.uniqueName(filename)
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return nil, fmt.Errorf("create staged file: %w", err)
	}

	size, copyErr := io.Copy(f, r)
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(path)
		if copyErr != nil {
			return nil, fmt.Errorf("write staged file: %w", copyErr)
		}
		return nil, fmt.Errorf("close staged file: %w", closeErr)
	}

	return &StagedFile{
		UploadedFile: models.UploadedFile{
			Path:        path,
			Filename:    filename,
			ContentType: contentType,
			Size:        size,
		},
	}, nil
}

// Cleanup deletes the staged file exactly once.
func (f *StagedFile) Cleanup() error {
	f.once.Do(func() {
		if err := os.Remove(f.Path); err != nil && !os.IsNotExist(err) {
			log.Printf("[Upload] failed to remove staged file %s: %v", f.Path, err)
			f.err = err
		}
	})
	return f.err
}

// uniqueName follows "<timestamp>_<uuid8>_<original>" so concurrent uploads
// of the same file never collide.
func (s *Stager) uniqueName(filename string) string {
	return fmt.Sprintf("%s_%s_%s",
		s.now().Format("20060102_150405"),
		uuid.New().String()[:8],
		sanitizeFilename(filename),
	)
}

// sanitizeFilename keeps the base name and replaces anything that is not
// safe in a path component.
func sanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "upload"
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	out := strings.TrimLeft(b.String(), ".")
	if out == "" {
		return "upload"
	}
	if len(out) > 100 {
		out = out[len(out)-100:]
	}
	return out
}
