package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"
)

// IsTerminal reports whether no further transition is allowed out of the
// status once terminality enforcement is enabled.
func (s ApplicationStatus) IsTerminal() bool {
	return s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

// JobApplication links a worker to a job. The composite unique index on
// (job_id, worker_id) enforces one application per pair at the storage layer,
// so concurrent applies cannot both slip past a duplicate check.
type JobApplication struct {
	ID         string            `gorm:"type:uuid;primarykey" json:"id"`
	JobID      string            `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_worker;index" json:"job_id"`
	WorkerID   string            `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_worker;index" json:"worker_id"`
	Status     ApplicationStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Experience string            `gorm:"type:text" json:"experience"`
	Skills     string            `gorm:"type:text" json:"skills"`
	CreatedAt  time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at"`

	// Relations
	Job    Job     `gorm:"foreignKey:JobID" json:"job,omitempty"`
	Worker Profile `gorm:"foreignKey:WorkerID" json:"worker,omitempty"`
}

func (a *JobApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
