package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/farmlink/farmlink-api/internal/cache"
	"github.com/farmlink/farmlink-api/internal/models"
	"github.com/farmlink/farmlink-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrAlreadyApplied           = errors.New("already applied for this job")
	ErrJobNotFound              = errors.New("job not found")
	ErrInvalidApplicationStatus = errors.New("status must be accepted or rejected")
	ErrTerminalStatus           = errors.New("application status can no longer be changed")
)

// ApplicationService handles application submission, listing, and the
// ownership-gated status transitions.
type ApplicationService struct {
	appRepo   repository.ApplicationRepository
	jobRepo   repository.JobRepository
	listCache *cache.JobList

	// enforceTerminal rejects transitions out of accepted/rejected instead
	// of overwriting them.
	enforceTerminal bool
}

// NewApplicationService creates a new ApplicationService.
func NewApplicationService(appRepo repository.ApplicationRepository, jobRepo repository.JobRepository, listCache *cache.JobList, enforceTerminal bool) *ApplicationService {
	return &ApplicationService{
		appRepo:         appRepo,
		jobRepo:         jobRepo,
		listCache:       listCache,
		enforceTerminal: enforceTerminal,
	}
}

// ApplyInput carries the worker's optional self-description.
type ApplyInput struct {
	Experience string
	Skills     string
}

// Apply records a worker's application against a job. The insert itself is
// the uniqueness check: the (job_id, worker_id) constraint rejects a
// duplicate pair even under concurrent calls, so there is no window between
// checking and inserting.
func (s *ApplicationService) Apply(ctx context.Context, workerID, jobID string, input ApplyInput) (*models.JobApplication, error) {
	if workerID == "" {
		return nil, ErrNotAuthenticated
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}

	app := &models.JobApplication{
		JobID:      job.ID,
		WorkerID:   workerID,
		Status:     models.ApplicationStatusPending,
		Experience: input.Experience,
		Skills:     input.Skills,
	}

	if err := s.appRepo.Create(app); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyApplied
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	// The stored count is convenience only; list reads recount live rows.
	if err := s.jobRepo.RecountApplications(job.ID); err != nil {
		log.Printf("failed to recount applications for job %s: %v", job.ID, err)
	}

	s.listCache.Invalidate(ctx)
	return app, nil
}

// ListForPoster returns every application whose parent job belongs to the
// caller, most recent first, with worker and job preloaded.
func (s *ApplicationService) ListForPoster(posterID string) ([]models.JobApplication, error) {
	if posterID == "" {
		return nil, ErrNotAuthenticated
	}

	apps, err := s.appRepo.ListByPoster(posterID)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}

	return apps, nil
}

// UpdateStatus applies an accept/reject decision. A missing application and
// an application owned by another poster fail with the same error so
// existence is never leaked.
func (s *ApplicationService) UpdateStatus(posterID, appID string, newStatus models.ApplicationStatus) (*models.JobApplication, error) {
	if posterID == "" {
		return nil, ErrNotAuthenticated
	}

	app, err := s.appRepo.FindByIDWithJob(appID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFoundOrUnauthorized
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}

	if !IsOwner(posterID, &app.Job) {
		return nil, ErrNotFoundOrUnauthorized
	}

	if newStatus != models.ApplicationStatusAccepted && newStatus != models.ApplicationStatusRejected {
		return nil, ErrInvalidApplicationStatus
	}

	if s.enforceTerminal && app.Status.IsTerminal() {
		return nil, ErrTerminalStatus
	}

	app.Status = newStatus
	if err := s.appRepo.Update(app); err != nil {
		return nil, fmt.Errorf("failed to update application: %w", err)
	}

	return app, nil
}
