// Package stats derives the dashboard summary counts from already-fetched
// collections. Everything here is pure: no persistence, no failure modes,
// empty input yields zero.
package stats

import (
	"github.com/farmlink/farmlink-api/internal/dto"
	"github.com/farmlink/farmlink-api/internal/models"
)

// ActiveJobs counts jobs whose status is active.
func ActiveJobs(jobs []dto.JobDTO) int {
	n := 0
	for _, job := range jobs {
		if job.Status == models.JobStatusActive {
			n++
		}
	}
	return n
}

// CompletedJobs counts jobs whose status is completed.
func CompletedJobs(jobs []dto.JobDTO) int {
	n := 0
	for _, job := range jobs {
		if job.Status == models.JobStatusCompleted {
			n++
		}
	}
	return n
}

// TotalApplications counts all applications in the collection.
func TotalApplications(apps []dto.ApplicationDTO) int {
	return len(apps)
}
