package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

type MatchHandler struct {
	catalog       repositories.CatalogRepository
	matching      services.MatchingService
	resumeService services.ResumeService
	worker        services.Worker
	timeout       time.Duration
	logger        *zap.Logger
}

func NewMatchHandler(
	catalog repositories.CatalogRepository,
	matching services.MatchingService,
	resumeService services.ResumeService,
	worker services.Worker,
	timeout time.Duration,
	logger *zap.Logger,
) *MatchHandler {
	return &MatchHandler{
		catalog:       catalog,
		matching:      matching,
		resumeService: resumeService,
		worker:        worker,
		timeout:       timeout,
		logger:        logger,
	}
}

// HandleRecommendations handles GET /freelancers/:id/recommendations
func (h *MatchHandler) HandleRecommendations(c *fiber.Ctx) error {
	freelancerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid freelancer ID format")
	}

	freelancer, err := h.catalog.FindFreelancer(freelancerID)
	if err != nil {
		return respondError(c, err)
	}

	jobs, err := h.catalog.FindOpenJobs()
	if err != nil {
		h.logger.Error("failed to load jobs", zap.Error(err))
		return respondError(c, err)
	}

	views := make([]models.JobView, len(jobs))
	titles := make(map[string]string, len(jobs))
	for i, job := range jobs {
		views[i] = job
		titles[job.JobID()] = job.Title
	}

	var ranked models.RankedResult
	if err := h.run(c, func() {
		ranked = h.matching.RecommendJobs(freelancer, views)
	}); err != nil {
		return respondError(c, err)
	}

	recommended := make([]models.RecommendedJob, len(ranked))
	for i, m := range ranked {
		recommended[i] = models.RecommendedJob{ID: m.ID, Title: titles[m.ID], Score: m.Score}
	}

	return c.JSON(fiber.Map{
		"freelancer_id": freelancerID.String(),
		"jobs":          recommended,
	})
}

// HandleRankApplicants handles GET /jobs/:id/applicants
func (h *MatchHandler) HandleRankApplicants(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid job ID format")
	}

	job, err := h.catalog.FindJob(jobID)
	if err != nil {
		return respondError(c, err)
	}

	apps, err := h.catalog.FindApplicationsByJob(jobID)
	if err != nil {
		h.logger.Error("failed to load applications", zap.String("job", jobID.String()), zap.Error(err))
		return respondError(c, err)
	}

	views := make([]models.ApplicationView, len(apps))
	byID := make(map[string]models.Application, len(apps))
	for i, app := range apps {
		views[i] = app
		byID[app.ApplicationID()] = app
	}

	var ranked models.RankedResult
	if err := h.run(c, func() {
		ranked = h.matching.RankApplicants(job, views)
	}); err != nil {
		return respondError(c, err)
	}

	applicants := make([]models.RankedApplicant, len(ranked))
	for i, m := range ranked {
		app := byID[m.ID]
		applicants[i] = models.RankedApplicant{
			ApplicationID: m.ID,
			FreelancerID:  app.FreelancerUserID.String(),
			Name:          app.Freelancer.FirstName + " " + app.Freelancer.LastName,
			Status:        app.Status,
			MatchScore:    m.Score,
		}
	}

	return c.JSON(fiber.Map{
		"job_id":       jobID.String(),
		"applications": applicants,
	})
}

// HandleATSScore handles POST /jobs/:id/ats-score
func (h *MatchHandler) HandleATSScore(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid job ID format")
	}

	var req models.ATSScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request payload")
	}

	freelancerID, err := uuid.Parse(req.FreelancerID)
	if err != nil {
		return badRequest(c, "Invalid freelancer_id format")
	}

	job, err := h.catalog.FindJob(jobID)
	if err != nil {
		return respondError(c, err)
	}

	freelancer, err := h.catalog.FindFreelancer(freelancerID)
	if err != nil {
		return respondError(c, err)
	}

	if freelancer.ResumePath == "" {
		return badRequest(c, "You must have a resume uploaded to check the score.")
	}

	var score float64
	var scoreErr error
	if err := h.run(c, func() {
		score, scoreErr = h.resumeService.ATSScore(job, freelancer.ResumePath)
	}); err != nil {
		return respondError(c, err)
	}

	if scoreErr != nil {
		h.logger.Info("ATS scoring failed",
			zap.String("job", jobID.String()),
			zap.String("kind", string(services.KindOf(scoreErr))),
			zap.Error(scoreErr),
		)
		return respondError(c, scoreErr)
	}

	return c.JSON(models.ATSScoreResponse{
		Success: true,
		Score:   score,
	})
}

func (h *MatchHandler) run(c *fiber.Ctx, fn func()) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()

	return h.worker.Do(ctx, fn)
}
