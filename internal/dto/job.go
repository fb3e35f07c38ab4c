package dto

import (
	"time"

	"github.com/farmlink/farmlink-api/internal/models"
)

// UnknownFarmerName is the placeholder shown when a job's poster profile
// cannot be joined. The job itself is still listed.
const UnknownFarmerName = "Unknown Farmer"

// JobDTO represents a job in API responses, joined with its poster's
// public contact fields.
type JobDTO struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	Description    string           `json:"description"`
	Duration       string           `json:"duration"`
	PayRate        int              `json:"payRate"`
	TimeSlot       string           `json:"timeSlot,omitempty"`
	SkillsRequired string           `json:"skillsRequired,omitempty"`
	Location       string           `json:"location"`
	FarmerName     string           `json:"farmerName"`
	FarmerPhone    string           `json:"farmerPhone"`
	PostedDate     time.Time        `json:"postedDate"`
	Status         models.JobStatus `json:"status"`
	Applications   int              `json:"applications"`
}

// ToJobDTO converts a Job model to JobDTO. applicationCount is the number of
// live application rows observed at read time, not the denormalized column.
func ToJobDTO(job models.Job, applicationCount int) JobDTO {
	dto := JobDTO{
		ID:             job.ID,
		Title:          job.Title,
		Description:    job.Description,
		Duration:       job.Duration,
		PayRate:        job.PayRate,
		TimeSlot:       job.TimeSlot,
		SkillsRequired: job.SkillsRequired,
		Location:       job.Location,
		FarmerName:     UnknownFarmerName,
		FarmerPhone:    "",
		PostedDate:     job.CreatedAt,
		Status:         job.Status,
		Applications:   applicationCount,
	}

	if dto.Location == "" {
		dto.Location = "Location not specified"
	}
	if dto.Status == "" {
		dto.Status = models.JobStatusActive
	}

	// Poster fields degrade gracefully when the profile join failed
	if job.Farmer.ID != "" {
		dto.FarmerName = job.Farmer.Name
		dto.FarmerPhone = job.Farmer.Phone
	}

	return dto
}

// ToJobDTOs converts jobs with their per-job live application counts.
func ToJobDTOs(jobs []models.Job, counts map[string]int) []JobDTO {
	dtos := make([]JobDTO, len(jobs))
	for i, job := range jobs {
		dtos[i] = ToJobDTO(job, counts[job.ID])
	}
	return dtos
}
