package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-matcher/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// CatalogRepository reads the marketplace records the matcher works on.
// It never writes.
type CatalogRepository interface {
	FindFreelancer(id uuid.UUID) (*models.Freelancer, error)
	FindJob(id uuid.UUID) (*models.Job, error)
	FindOpenJobs() ([]models.Job, error)
	FindApplicationsByJob(jobID uuid.UUID) ([]models.Application, error)
}

type catalogRepository struct {
	db *gorm.DB
}

func NewCatalogRepository(db *gorm.DB) CatalogRepository {
	return &catalogRepository{db: db}
}

// FindFreelancer implements CatalogRepository.
func (r *catalogRepository) FindFreelancer(id uuid.UUID) (*models.Freelancer, error) {
	var freelancer models.Freelancer
	if err := r.db.Preload("Skills").Where("user_id = ?", id).First(&freelancer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("freelancer %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find freelancer: %w", err)
	}

	return &freelancer, nil
}

// FindJob implements CatalogRepository.
func (r *catalogRepository) FindJob(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.Preload("RequiredSkills").Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("job %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	return &job, nil
}

// FindOpenJobs returns active jobs with their skills and application
// statuses, newest first. Filled jobs are left to the matcher to skip.
func (r *catalogRepository) FindOpenJobs() ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Preload("RequiredSkills").
		Preload("Applications", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "job_id", "status")
		}).
		Where("is_active = ?", true).
		Order("posted_at DESC").
		Find(&jobs).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find open jobs: %w", err)
	}

	return jobs, nil
}

// FindApplicationsByJob implements CatalogRepository.
func (r *catalogRepository) FindApplicationsByJob(jobID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.
		Preload("Freelancer").
		Preload("Freelancer.Skills").
		Where("job_id = ?", jobID).
		Order("applied_at ASC").
		Find(&apps).Error

	if err != nil {
		return nil, fmt.Errorf("failed to find applications: %w", err)
	}

	return apps, nil
}
