package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/models"
	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/ocr"
	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/upload"
)

const (
	Version = "1.0.0"

	// multipart parts above this size spill to temp files
	multipartMemory = 8 << 20
)

// Processor runs one extraction request
type Processor interface {
	Process(ctx context.Context, req models.ExtractionRequest) (*models.ResponsePayload, error)
}

// AnalyzerStatus reports whether text analysis can run
type AnalyzerStatus interface {
	Ready() bool
	ProviderName() string
}

// HealthSources are the dependencies reported by /health
type HealthSources struct {
	OCR          ocr.Engine
	Preprocessor *ocr.Preprocessor
	Analyzer     AnalyzerStatus
}

// Handler handles HTTP requests for text extraction and analysis
type Handler struct {
	config   *models.Config
	pipeline Processor
	stager   *upload.Stager
	health   HealthSources
}

// NewHandler creates a new API handler
func NewHandler(config *models.Config, pipeline Processor, stager *upload.Stager, health HealthSources) *Handler {
	return &Handler{
		config:   config,
		pipeline: pipeline,
		stager:   stager,
		health:   health,
	}
}

// SetupRoutes configures the HTTP routes
func (h *Handler) SetupRoutes() *mux.Router {
	router := mux.NewRouter()

	// Upload endpoints; OPTIONS is listed so preflight requests match
	router.HandleFunc("/upload-pdf", h.UploadPDF).Methods(http.MethodPost, http.MethodOptions)
	router.HandleFunc("/upload-image", h.UploadImage).Methods(http.MethodPost, http.MethodOptions)

	// Health check
	router.HandleFunc("/health", h.Health).Methods(http.MethodGet)

	router.Use(mux.CORSMethodMiddleware(router))
	router.Use(preflight)

	return router
}

// UploadPDF extracts text from a PDF. Form fields: file, scanned, analyze.
func (h *Handler) UploadPDF(w http.ResponseWriter, r *http.Request) {
	h.handleUpload(w, r, "PDF", func(r *http.Request) models.Mode {
		return models.PDFMode(r.FormValue("scanned") == "true")
	})
}

// UploadImage runs OCR on an image. Form fields: file, analyze.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	h.handleUpload(w, r, "image", func(*http.Request) models.Mode {
		return models.ModeImage
	})
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request, kind string, modeFor func(*http.Request) models.Mode) {
	requestID := uuid.New().String()[:8]
	start := time.Now()
	w.Header().Set("X-Request-ID", requestID)

	defer func() {
		if r.MultipartForm != nil {
			r.MultipartForm.RemoveAll()
		}
	}()

	staged, err := h.stageUpload(w, r)
	if err != nil {
		h.sendError(w, requestID, kind, err)
		return
	}
	defer staged.Cleanup()

	req := models.ExtractionRequest{
		File:    staged.UploadedFile,
		Mode:    modeFor(r),
		Analyze: r.FormValue("analyze") == "true",
	}
	log.Printf("[Upload %s] %s (%d bytes) mode=%s analyze=%v", requestID, req.File.Filename, req.File.Size, req.Mode, req.Analyze)

	payload, err := h.pipeline.Process(r.Context(), req)
	if err != nil {
		h.sendError(w, requestID, kind, err)
		return
	}

	log.Printf("[Upload %s] Done in %s: %d chars, analysis=%v", requestID, time.Since(start).Round(time.Millisecond), len(payload.Text), payload.Analysis != nil)
	h.sendJSON(w, http.StatusOK, payload)
}

// stageUpload parses the form and copies the "file" part to the staging dir
func (h *Handler) stageUpload(w http.ResponseWriter, r *http.Request) (*upload.StagedFile, error) {
	maxBytes := h.config.MaxUploadMB << 20
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, models.ErrNoFile
		}
		return nil, fmt.Errorf("%w: %v", models.ErrInvalidForm, err)
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		return nil, models.ErrNoFile
	}
	defer file.Close()

	return h.stager.Stage(file, header.Filename, header.Header.Get("Content-Type"))
}

// sendError logs the cause and replies with a generic plain-text message
func (h *Handler) sendError(w http.ResponseWriter, requestID, kind string, err error) {
	switch {
	case errors.Is(err, models.ErrNoFile):
		log.Printf("[Upload %s] Rejected: %v", requestID, err)
		http.Error(w, "No file uploaded.", http.StatusBadRequest)
	case models.IsInputError(err):
		log.Printf("[Upload %s] Rejected: %v", requestID, err)
		http.Error(w, "File too large or invalid form data.", http.StatusBadRequest)
	default:
		log.Printf("[Upload %s] Error: %v", requestID, err)
		http.Error(w, "Error processing "+kind+".", http.StatusInternalServerError)
	}
}

func (h *Handler) sendJSON(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[Server] Failed to write response: %v", err)
	}
}

// HealthResponse represents the health check response structure
type HealthResponse struct {
	Status      string        `json:"status"`
	Version     string        `json:"version"`
	Timestamp   string        `json:"timestamp"`
	Uptime      string        `json:"uptime"`
	Memory      MemoryStats   `json:"memory"`
	OCR         ServiceStatus `json:"ocr"`
	ImageMagick ServiceStatus `json:"imageMagick"`
	AI          AIStatus      `json:"ai"`
}

// MemoryStats represents memory usage statistics
type MemoryStats struct {
	Allocated string `json:"allocated"`
	Total     string `json:"total"`
	System    string `json:"system"`
}

// ServiceStatus represents the status of a service dependency
type ServiceStatus struct {
	Available bool   `json:"available"`
	Version   string `json:"version,omitempty"`
	Error     string `json:"error,omitempty"`
}

// AIStatus reports the analysis provider
type AIStatus struct {
	Provider string `json:"provider,omitempty"`
	Ready    bool   `json:"ready"`
	Strict   bool   `json:"strict"`
}

var startTime = time.Now()

// Health endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	ocrStatus := h.checkOCR()

	response := HealthResponse{
		Status:    "healthy",
		Version:   Version,
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    time.Since(startTime).Round(time.Second).String(),
		Memory: MemoryStats{
			Allocated: fmt.Sprintf("%.2f MB", float64(m.Alloc)/1024/1024),
			Total:     fmt.Sprintf("%.2f MB", float64(m.TotalAlloc)/1024/1024),
			System:    fmt.Sprintf("%.2f MB", float64(m.Sys)/1024/1024),
		},
		OCR:         ocrStatus,
		ImageMagick: h.checkImageMagick(),
		AI: AIStatus{
			Strict: h.config.AI.Strict,
		},
	}
	if a := h.health.Analyzer; a != nil {
		response.AI.Ready = a.Ready()
		response.AI.Provider = a.ProviderName()
	}

	// Scanned PDFs and images need OCR
	status := http.StatusOK
	if !ocrStatus.Available {
		response.Status = "degraded"
		status = http.StatusServiceUnavailable
	}

	h.sendJSON(w, status, response)
}

// checkOCR reports whether the OCR engine is compiled in
func (h *Handler) checkOCR() ServiceStatus {
	engine := h.health.OCR
	if engine == nil {
		return ServiceStatus{Available: false, Error: "no OCR engine configured"}
	}
	if !engine.Available() {
		return ServiceStatus{Available: false, Error: engine.Name() + " support not compiled in (build with -tags ocr)"}
	}
	return ServiceStatus{
		Available: true,
		Version:   engine.Name() + " " + engine.Version(),
	}
}

// checkImageMagick reports whether image preprocessing can run
func (h *Handler) checkImageMagick() ServiceStatus {
	if h.health.Preprocessor == nil {
		return ServiceStatus{Available: false, Error: "preprocessing disabled"}
	}
	binary := h.health.Preprocessor.Binary()
	if binary == "" {
		return ServiceStatus{Available: false, Error: "imagemagick not found or not executable"}
	}
	return ServiceStatus{Available: true, Version: binary}
}
