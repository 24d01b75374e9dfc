package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"

	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/config"
	applog "alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

type parseResult struct {
	File   string            `json:"file"`
	Fields map[string]string `json:"fields,omitempty"`
	Kind   string            `json:"kind,omitempty"`
	Error  string            `json:"error,omitempty"`
}

func main() {
	dir := flag.String("dir", "./resumes", "directory containing resumes")
	flag.Parse()

	cfg := config.Load()

	zl, err := applog.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	storage := services.NewTransientStorage(cfg.Storage.TempDir, zl)
	if err := storage.EnsureDir(); err != nil {
		zl.Fatal("failed to create temp directory", zap.Error(err))
	}

	ocrEngine, err := services.NewOCREngine(cfg.OCR.Language)
	if err != nil {
		zl.Warn("OCR engine unavailable", zap.Error(err))
		ocrEngine = nil
	} else {
		defer ocrEngine.Close()
	}

	pipeline := services.NewExtractionPipeline(
		storage,
		cfg.Storage.MaxFileSize,
		zl,
		services.NewPDFDecoder(),
		services.NewDOCXDecoder(),
		services.NewImageDecoder(ocrEngine),
	)

	nlpModels := services.LoadNLPModels(cfg.NLP, zl)
	defer nlpModels.Close()

	resumeService := services.NewResumeService(
		pipeline,
		services.NewEntityExtractor(nlpModels, zl),
		services.NewMatchingService(services.NewSimilarityEngine(), zl),
		zl,
	)

	entries, err := os.ReadDir(*dir)
	if err != nil {
		zl.Fatal("failed to read directory", zap.String("dir", *dir), zap.Error(err))
	}

	enc := json.NewEncoder(os.Stdout)
	successCount := 0
	failCount := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		path := filepath.Join(*dir, entry.Name())
		doc := models.Document{Filename: entry.Name()}
		if !slices.Contains(services.AllowedFormats, doc.Extension()) {
			continue
		}

		content, err := os.ReadFile(path)
		if err != nil {
			zl.Warn("failed to read file", zap.String("path", path), zap.Error(err))
			failCount++
			continue
		}

		result := parseResult{File: entry.Name()}
		set, err := resumeService.ParseResume(models.NewDocument(entry.Name(), content))
		if err != nil {
			result.Kind = string(services.KindOf(err))
			result.Error = err.Error()
			failCount++
		} else {
			result.Fields = set.Fields()
			successCount++
		}

		if err := enc.Encode(result); err != nil {
			zl.Fatal("failed to write result", zap.Error(err))
		}
	}

	zl.Info("parsing summary", zap.Int("successful", successCount), zap.Int("failed", failCount))

	if failCount > 0 {
		fmt.Fprintln(os.Stderr, "some resumes could not be parsed, see the output above")
		os.Exit(1)
	}
}
