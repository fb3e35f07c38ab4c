package repository

import (
	"github.com/farmlink/farmlink-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormApplicationRepository is a GORM implementation of ApplicationRepository
type GormApplicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &GormApplicationRepository{db: db}
}

// Create inserts a new application. Duplicate (job_id, worker_id) pairs are
// rejected by the unique index and come back as gorm.ErrDuplicatedKey, so
// there is no separate existence check to race against.
func (r *GormApplicationRepository) Create(app *models.JobApplication) error {
	return r.db.Create(app).Error
}

// FindByIDWithJob finds an application together with its parent job and
// worker, so the caller can return a fully enriched record
func (r *GormApplicationRepository) FindByIDWithJob(id string) (*models.JobApplication, error) {
	var app models.JobApplication
	if err := r.db.
		Preload("Job").
		Preload("Worker").
		Where("id = ?", id).
		First(&app).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// ListByPoster lists every application whose parent job belongs to the poster
func (r *GormApplicationRepository) ListByPoster(posterID string) ([]models.JobApplication, error) {
	var apps []models.JobApplication
	err := r.db.
		Joins("JOIN jobs ON jobs.id = job_applications.job_id").
		Where("jobs.farmer_id = ? AND jobs.deleted_at IS NULL", posterID).
		Preload("Worker").
		Preload("Job").
		Order("job_applications.created_at DESC").
		Find(&apps).Error
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// Update persists changes to an application. Associations are preloaded for
// reading only and never written back.
func (r *GormApplicationRepository) Update(app *models.JobApplication) error {
	return r.db.Omit(clause.Associations).Save(app).Error
}
