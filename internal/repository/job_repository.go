package repository

import (
	"github.com/farmlink/farmlink-api/internal/models"
	"gorm.io/gorm"
)

// GormJobRepository is a GORM implementation of JobRepository
type GormJobRepository struct {
	db *gorm.DB
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *gorm.DB) JobRepository {
	return &GormJobRepository{db: db}
}

// Create creates a new job
func (r *GormJobRepository) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

// FindByID finds a job by ID with optional preloading
func (r *GormJobRepository) FindByID(id string, preload ...string) (*models.Job, error) {
	var job models.Job
	query := r.db

	for _, p := range preload {
		query = query.Preload(p)
	}

	if err := query.Where("id = ?", id).First(&job).Error; err != nil {
		return nil, err
	}

	return &job, nil
}

// List retrieves all jobs ordered by creation time, most recent first
func (r *GormJobRepository) List() ([]models.Job, error) {
	var jobs []models.Job
	if err := r.db.
		Preload("Farmer").
		Order("jobs.created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// CountApplications returns the live application count per job ID
func (r *GormJobRepository) CountApplications(jobIDs []string) (map[string]int, error) {
	counts := make(map[string]int, len(jobIDs))
	if len(jobIDs) == 0 {
		return counts, nil
	}

	type jobCount struct {
		JobID string
		Count int
	}

	var rows []jobCount
	err := r.db.Model(&models.JobApplication{}).
		Select("job_id, COUNT(*) as count").
		Where("job_id IN ?", jobIDs).
		Group("job_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.JobID] = row.Count
	}
	return counts, nil
}

// RecountApplications refreshes the denormalized application count from the
// live application rows
func (r *GormJobRepository) RecountApplications(jobID string) error {
	return r.db.Model(&models.Job{}).
		Where("id = ?", jobID).
		UpdateColumn("application_count", gorm.Expr(
			"(SELECT COUNT(*) FROM job_applications WHERE job_applications.job_id = ?)", jobID,
		)).Error
}

// Delete removes a job and its applications atomically
func (r *GormJobRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.JobApplication{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&models.Job{}).Error
	})
}
