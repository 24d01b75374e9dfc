package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/handlers"
	applog "alfredoptarigan/resume-matcher/internal/logger"
	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	zl, err := applog.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	// Initialize database
	db, err := config.InitDatabase(cfg, zl)
	if err != nil {
		zl.Fatal("failed to initialize database", zap.Error(err))
	}
	catalog := repositories.NewCatalogRepository(db)

	// Transient storage for decoders that need a path
	storage := services.NewTransientStorage(cfg.Storage.TempDir, zl)
	if err := storage.EnsureDir(); err != nil {
		zl.Fatal("failed to create temp directory", zap.Error(err))
	}

	// Decoders; OCR is optional and degrades to unsupported image formats
	ocrEngine, err := services.NewOCREngine(cfg.OCR.Language)
	if err != nil {
		zl.Warn("OCR engine unavailable, image resumes disabled", zap.Error(err))
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
	zl.Info("extraction pipeline ready", zap.Strings("formats", pipeline.SupportedFormats()))

	// NLP models are loaded once and are read-only afterwards
	nlpModels := services.LoadNLPModels(cfg.NLP, zl)
	defer nlpModels.Close()

	entityExtractor := services.NewEntityExtractor(nlpModels, zl)
	matching := services.NewMatchingService(services.NewSimilarityEngine(), zl)
	resumeService := services.NewResumeService(pipeline, entityExtractor, matching, zl)

	worker := services.NewWorker(cfg.Worker.Concurrency, cfg.Worker.QueueSize, zl)
	worker.Start()

	// Initialize Handlers
	uploadHandler := handlers.NewUploadHandler(
		resumeService,
		worker,
		cfg.Storage.MaxFileSize,
		cfg.Worker.RequestTimeout,
		zl,
	)
	matchHandler := handlers.NewMatchHandler(
		catalog,
		matching,
		resumeService,
		worker,
		cfg.Worker.RequestTimeout,
		zl,
	)

	// Create Fiber app; the body limit leaves room for multipart overhead so
	// oversized files reach the handler and get a proper error.
	app := fiber.New(fiber.Config{
		AppName:      "Resume Matcher API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 2,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"time":    time.Now(),
			"formats": pipeline.SupportedFormats(),
			"models": fiber.Map{
				"generic": nlpModels.Generic() != nil,
				"skills":  nlpModels.Skills() != nil,
			},
		})
	})

	api.Post("/resumes/parse", uploadHandler.HandleParseResume)
	api.Get("/freelancers/:id/recommendations", matchHandler.HandleRecommendations)
	api.Get("/jobs/:id/applicants", matchHandler.HandleRankApplicants)
	api.Post("/jobs/:id/ats-score", matchHandler.HandleATSScore)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zl.Info("shutting down server")
		if err := app.Shutdown(); err != nil {
			zl.Error("server forced to shutdown", zap.Error(err))
		}
		worker.Stop()
	}()

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zl.Info("server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zl.Fatal("failed to start server", zap.Error(err))
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	// Bodies past BodyLimit never reach the upload handler.
	if errors.Is(err, fiber.ErrRequestEntityTooLarge) {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse{
			Error: "uploaded file exceeds the maximum allowed size",
			Kind:  string(services.KindOversizedInput),
		})
	}

	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
