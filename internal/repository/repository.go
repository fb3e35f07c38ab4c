package repository

import (
	"github.com/farmlink/farmlink-api/internal/models"
)

// ProfileRepository defines the interface for profile data access
type ProfileRepository interface {
	// Create creates a new profile
	Create(profile *models.Profile) error

	// FindByID finds a profile by ID
	FindByID(id string) (*models.Profile, error)

	// FindByEmail finds a profile by email
	FindByEmail(email string) (*models.Profile, error)
}

// JobRepository defines the interface for job data access
type JobRepository interface {
	// Create creates a new job
	Create(job *models.Job) error

	// FindByID finds a job by ID with optional preloading
	FindByID(id string, preload ...string) (*models.Job, error)

	// List retrieves all jobs ordered by creation time, most recent first,
	// with the poster profile preloaded
	List() ([]models.Job, error)

	// CountApplications returns the live application count per job ID
	CountApplications(jobIDs []string) (map[string]int, error)

	// RecountApplications refreshes a job's denormalized application count
	// from the live application rows
	RecountApplications(jobID string) error

	// Delete removes a job and its applications atomically
	Delete(id string) error
}

// ApplicationRepository defines the interface for job application data access
type ApplicationRepository interface {
	// Create inserts a new application. The insert is conditional on the
	// (job_id, worker_id) unique constraint; a duplicate pair surfaces as
	// gorm.ErrDuplicatedKey.
	Create(app *models.JobApplication) error

	// FindByIDWithJob finds an application together with its parent job
	FindByIDWithJob(id string) (*models.JobApplication, error)

	// ListByPoster lists every application whose parent job belongs to the
	// poster, most recent first, with worker and job preloaded
	ListByPoster(posterID string) ([]models.JobApplication, error)

	// Update persists changes to an application
	Update(app *models.JobApplication) error
}
