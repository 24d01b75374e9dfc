package handlers

import (
	"context"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

type UploadHandler struct {
	resumeService services.ResumeService
	worker        services.Worker
	maxFileSize   int64
	timeout       time.Duration
	logger        *zap.Logger
}

func NewUploadHandler(
	resumeService services.ResumeService,
	worker services.Worker,
	maxFileSize int64,
	timeout time.Duration,
	logger *zap.Logger,
) *UploadHandler {
	return &UploadHandler{
		resumeService: resumeService,
		worker:        worker,
		maxFileSize:   maxFileSize,
		timeout:       timeout,
		logger:        logger,
	}
}

// HandleParseResume handles POST /resumes/parse
func (h *UploadHandler) HandleParseResume(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume_file")
	if err != nil {
		return badRequest(c, "No resume file provided.")
	}

	doc := models.Document{
		Filename: fileHeader.Filename,
		Size:     fileHeader.Size,
	}

	// Oversized uploads are never read; the pipeline rejects them on the
	// declared size.
	if fileHeader.Size <= h.maxFileSize {
		src, err := fileHeader.Open()
		if err != nil {
			return badRequest(c, "Failed to read the uploaded file.")
		}
		defer src.Close()

		content, err := io.ReadAll(io.LimitReader(src, h.maxFileSize+1))
		if err != nil {
			return badRequest(c, "Failed to read the uploaded file.")
		}
		doc.Content = content
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	var set models.EntitySet
	var parseErr error
	if err := h.worker.Do(ctx, func() {
		set, parseErr = h.resumeService.ParseResume(doc)
	}); err != nil {
		h.logger.Warn("resume parsing not completed", zap.String("file", doc.Filename), zap.Error(err))
		return respondError(c, err)
	}

	if parseErr != nil {
		h.logger.Info("resume parsing failed",
			zap.String("file", doc.Filename),
			zap.String("kind", string(services.KindOf(parseErr))),
			zap.Error(parseErr),
		)
		return respondError(c, parseErr)
	}

	return c.JSON(models.ParseResumeResponse{
		Success: true,
		Data:    set,
	})
}
