package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/farmlink/farmlink-api/internal/cache"
	"github.com/farmlink/farmlink-api/internal/dto"
	"github.com/farmlink/farmlink-api/internal/models"
	"github.com/farmlink/farmlink-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrJobTitleRequired = errors.New("title is required")
	ErrInvalidPayRate   = errors.New("pay rate must be a positive number")
	ErrPosterNotFound   = errors.New("farmer profile not found")
)

// JobService handles job creation and listing.
type JobService struct {
	jobRepo     repository.JobRepository
	profileRepo repository.ProfileRepository
	listCache   *cache.JobList
}

// NewJobService creates a new JobService. listCache may be a bypassing cache.
func NewJobService(jobRepo repository.JobRepository, profileRepo repository.ProfileRepository, listCache *cache.JobList) *JobService {
	return &JobService{
		jobRepo:     jobRepo,
		profileRepo: profileRepo,
		listCache:   listCache,
	}
}

// CreateJobInput represents input for creating a job.
type CreateJobInput struct {
	Title          string
	Description    string
	Duration       string
	PayRate        int
	TimeSlot       string
	SkillsRequired string
	Location       string
}

// CreateJob validates the input, stamps the poster's location when the job
// carries none, and persists the job as active with a zero application
// count. The returned job has the poster profile attached.
func (s *JobService) CreateJob(ctx context.Context, posterID string, input CreateJobInput) (*models.Job, error) {
	if posterID == "" {
		return nil, ErrNotAuthenticated
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrJobTitleRequired
	}
	if input.PayRate <= 0 {
		return nil, ErrInvalidPayRate
	}

	poster, err := s.profileRepo.FindByID(posterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPosterNotFound
		}
		return nil, fmt.Errorf("failed to load poster profile: %w", err)
	}

	location := strings.TrimSpace(input.Location)
	if location == "" {
		location = poster.Location
	}
	if location == "" {
		location = "Location not specified"
	}

	job := &models.Job{
		FarmerID:         posterID,
		Title:            strings.TrimSpace(input.Title),
		Description:      input.Description,
		Duration:         input.Duration,
		PayRate:          input.PayRate,
		TimeSlot:         input.TimeSlot,
		SkillsRequired:   input.SkillsRequired,
		Location:         location,
		Status:           models.JobStatusActive,
		ApplicationCount: 0,
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	job.Farmer = *poster
	s.listCache.Invalidate(ctx)

	return job, nil
}

// ListJobs returns all jobs, most recent first, joined with their poster's
// display name and phone. Application counts are observed from the live
// application rows at read time.
func (s *JobService) ListJobs(ctx context.Context) ([]dto.JobDTO, error) {
	if cached, ok := s.listCache.Get(ctx); ok {
		return cached, nil
	}

	jobs, err := s.jobRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	jobIDs := make([]string, len(jobs))
	for i, job := range jobs {
		jobIDs[i] = job.ID
	}

	counts, err := s.jobRepo.CountApplications(jobIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to count applications: %w", err)
	}

	dtos := dto.ToJobDTOs(jobs, counts)
	s.listCache.Set(ctx, dtos)

	return dtos, nil
}

// DeleteJob removes a job and its applications. Only the job's poster may
// delete it; a missing job and a non-owning caller fail identically.
func (s *JobService) DeleteJob(ctx context.Context, posterID, jobID string) error {
	if posterID == "" {
		return ErrNotAuthenticated
	}

	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFoundOrUnauthorized
		}
		return fmt.Errorf("failed to find job: %w", err)
	}

	if !IsOwner(posterID, job) {
		return ErrNotFoundOrUnauthorized
	}

	if err := s.jobRepo.Delete(jobID); err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	s.listCache.Invalidate(ctx)
	return nil
}
