package dto

import (
	"time"

	"github.com/farmlink/farmlink-api/internal/models"
)

// ApplicationDTO represents a job application in API responses, enriched
// with the worker's public fields and the parent job's title.
type ApplicationDTO struct {
	ID             string                   `json:"id"`
	JobID          string                   `json:"jobId"`
	JobTitle       string                   `json:"jobTitle"`
	WorkerID       string                   `json:"workerId"`
	WorkerName     string                   `json:"workerName"`
	WorkerPhone    string                   `json:"workerPhone"`
	WorkerLocation string                   `json:"workerLocation"`
	Experience     string                   `json:"experience,omitempty"`
	Skills         string                   `json:"skills,omitempty"`
	Status         models.ApplicationStatus `json:"status"`
	AppliedAt      time.Time                `json:"appliedAt"`
}

// ToApplicationDTO converts a JobApplication model to ApplicationDTO
func ToApplicationDTO(app models.JobApplication) ApplicationDTO {
	dto := ApplicationDTO{
		ID:         app.ID,
		JobID:      app.JobID,
		WorkerID:   app.WorkerID,
		Experience: app.Experience,
		Skills:     app.Skills,
		Status:     app.Status,
		AppliedAt:  app.CreatedAt,
	}

	if app.Job.ID != "" {
		dto.JobTitle = app.Job.Title
	}
	if app.Worker.ID != "" {
		dto.WorkerName = app.Worker.Name
		dto.WorkerPhone = app.Worker.Phone
		dto.WorkerLocation = app.Worker.Location
	}

	return dto
}

// ToApplicationDTOs converts a slice of applications
func ToApplicationDTOs(apps []models.JobApplication) []ApplicationDTO {
	dtos := make([]ApplicationDTO, len(apps))
	for i, app := range apps {
		dtos[i] = ToApplicationDTO(app)
	}
	return dtos
}
