package services

import (
	"errors"

	"github.com/farmlink/farmlink-api/internal/models"
)

var (
	// ErrNotAuthenticated is returned when no caller identity was supplied.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrNotFoundOrUnauthorized covers both a missing record and a caller
	// who does not own it. The two cases are merged so responses never
	// reveal whether a record exists to someone who cannot access it.
	ErrNotFoundOrUnauthorized = errors.New("record not found")
)

// IsOwner reports whether the caller is the job's poster. An empty caller id
// never owns anything; callers must check authentication separately so the
// two failures stay distinguishable.
func IsOwner(callerID string, job *models.Job) bool {
	if callerID == "" || job == nil {
		return false
	}
	return job.FarmerID == callerID
}
