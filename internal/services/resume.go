package services

import (
	"go.uber.org/zap"

	"alfredoptarigan/resume-matcher/internal/models"
)

// ResumeService ties extraction, entity recognition and scoring together for
// the request handlers.
type ResumeService interface {
	ParseResume(doc models.Document) (models.EntitySet, error)
	ATSScore(job models.JobView, resumePath string) (float64, error)
}

type resumeService struct {
	pipeline ExtractionPipeline
	entities EntityExtractor
	matching MatchingService
	logger   *zap.Logger
}

func NewResumeService(
	pipeline ExtractionPipeline,
	entities EntityExtractor,
	matching MatchingService,
	logger *zap.Logger,
) ResumeService {
	return &resumeService{
		pipeline: pipeline,
		entities: entities,
		matching: matching,
		logger:   logger,
	}
}

func (s *resumeService) ParseResume(doc models.Document) (models.EntitySet, error) {
	text, err := s.pipeline.Extract(doc)
	if err != nil {
		return models.EntitySet{}, err
	}

	set := s.entities.Extract(text)
	if set.IsEmpty() {
		return models.EntitySet{}, newError(KindNoEntitiesFound, nil, "could not extract relevant information")
	}

	s.logger.Info("resume parsed",
		zap.String("file", doc.Filename),
		zap.Bool("name", set.Name != ""),
		zap.Bool("email", set.Email != ""),
		zap.Bool("phone", set.Phone != ""),
		zap.Int("skills", len(set.Skills)),
	)

	return set, nil
}

func (s *resumeService) ATSScore(job models.JobView, resumePath string) (float64, error) {
	if resumePath == "" {
		return 0, newError(KindResourceMissing, nil, "no resume uploaded")
	}

	text, err := s.pipeline.ExtractFile(resumePath)
	if err != nil {
		return 0, err
	}

	return s.matching.ScoreResume(job, text), nil
}
