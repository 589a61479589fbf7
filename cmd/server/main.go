package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Pratham-Roy/Social-Media-Analyzer/api"
	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/ai"
	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/config"
	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/extract"
	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/ocr"
	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/services"
	"github.com/Pratham-Roy/Social-Media-Analyzer/internal/upload"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Staging directory for uploads
	if err := upload.EnsureDir(cfg.UploadDir); err != nil {
		log.Fatalf("Failed to create upload dir: %v", err)
	}

	// OCR backends
	ocrEngine := ocr.NewTesseractEngine(cfg.OCR.Language)
	if !ocrEngine.Available() {
		log.Println("Warning: OCR not compiled in (build with -tags ocr); scanned PDFs and images will fail")
	}
	var preprocessor *ocr.Preprocessor
	if cfg.OCR.Preprocess {
		preprocessor = ocr.NewPreprocessor()
		if preprocessor.Binary() == "" {
			log.Println("Warning: ImageMagick not found, images will be sent to OCR unprocessed")
		}
	}
	engine := extract.NewEngine(cfg.OCR, ocrEngine, ocr.NewFitzRasterizer(), preprocessor)

	// Analysis
	analyzer := ai.NewAnalyzerFromConfig(cfg.AI)
	pipeline := services.NewPipeline(engine, analyzer, cfg.AI.Strict)

	// Create API handler
	handler := api.NewHandler(cfg, pipeline, upload.NewStager(cfg.UploadDir), api.HealthSources{
		OCR:          ocrEngine,
		Preprocessor: preprocessor,
		Analyzer:     analyzer,
	})
	router := handler.SetupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           api.AllowOrigins(cfg.CORS.AllowedOrigins, router),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("Starting Social Media Analyzer v%s on %s", api.Version, addr)
	log.Printf("OCR Engine: %s (available: %v, language: %s)", ocrEngine.Name(), ocrEngine.Available(), cfg.OCR.Language)
	log.Printf("AI Provider: %s (ready: %v, strict: %v)", cfg.AI.DefaultProvider, analyzer.Ready(), cfg.AI.Strict)
	log.Printf("Allowed origins: %v", cfg.CORS.AllowedOrigins)
	log.Printf("Endpoints:")
	log.Printf("  POST http://%s/upload-pdf     - Extract text from a PDF (file, scanned, analyze)", addr)
	log.Printf("  POST http://%s/upload-image   - OCR an image (file, analyze)", addr)
	log.Printf("  GET  http://%s/health         - Health check", addr)

	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}
