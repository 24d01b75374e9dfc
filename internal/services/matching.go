package services

import (
	"strings"

	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/models"
)

// RecommendationLimit is how many jobs are recommended to a freelancer.
const RecommendationLimit = 5

type MatchingService interface {
	RecommendJobs(profile models.ProfileView, jobs []models.JobView) models.RankedResult
	RankApplicants(job models.JobView, applications []models.ApplicationView) models.RankedResult
	ScoreResume(job models.JobView, resumeText string) float64
}

type matchingService struct {
	engine SimilarityEngine
	logger *zap.Logger
}

func NewMatchingService(engine SimilarityEngine, logger *zap.Logger) MatchingService {
	return &matchingService{
		engine: engine,
		logger: logger,
	}
}

// RecommendJobs ranks open jobs against the profile and keeps the best five.
// Inactive jobs and jobs with an accepted application are skipped.
func (m *matchingService) RecommendJobs(profile models.ProfileView, jobs []models.JobView) models.RankedResult {
	corpus := make([]models.Candidate, 0, len(jobs))
	for _, job := range jobs {
		if !job.Active() || job.Filled() {
			continue
		}
		corpus = append(corpus, models.Candidate{ID: job.JobID(), Text: JobText(job)})
	}

	if len(corpus) == 0 {
		m.logger.Debug("no eligible jobs to recommend")
		return models.RankedResult{}
	}

	ranked := m.engine.Rank(ProfileText(profile), corpus)
	return TopK(ranked, RecommendationLimit)
}

// RankApplicants scores every application against the job.
func (m *matchingService) RankApplicants(job models.JobView, applications []models.ApplicationView) models.RankedResult {
	corpus := make([]models.Candidate, len(applications))
	for i, app := range applications {
		corpus[i] = models.Candidate{ID: app.ApplicationID(), Text: ProfileText(app.Applicant())}
	}

	return m.engine.Rank(JobText(job), corpus)
}

func (m *matchingService) ScoreResume(job models.JobView, resumeText string) float64 {
	return m.engine.Pairwise(JobText(job), resumeText)
}

// JobText is title, description and required skills joined by spaces.
func JobText(job models.JobView) string {
	return job.JobTitle() + " " + job.JobDescription() + " " + strings.Join(job.RequiredSkillNames(), " ")
}

// ProfileText is the skill names followed by the profile summary.
func ProfileText(profile models.ProfileView) string {
	return strings.Join(profile.SkillNames(), " ") + " " + profile.Summary()
}
