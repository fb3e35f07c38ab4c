package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobStatus string

const (
	JobStatusActive    JobStatus = "active"
	JobStatusCompleted JobStatus = "completed"
	JobStatusCancelled JobStatus = "cancelled"
)

type Job struct {
	ID             string    `gorm:"type:uuid;primarykey" json:"id"`
	FarmerID       string    `gorm:"type:uuid;not null;index" json:"farmer_id"`
	Title          string    `gorm:"type:varchar(255);not null" json:"title"`
	Description    string    `gorm:"type:text" json:"description"`
	Duration       string    `gorm:"type:varchar(100)" json:"duration"`
	PayRate        int       `gorm:"not null" json:"pay_rate"`
	TimeSlot       string    `gorm:"type:varchar(100)" json:"time_slot"`
	SkillsRequired string    `gorm:"type:text" json:"skills_required"`
	Location       string    `gorm:"type:varchar(255)" json:"location"`
	Status         JobStatus `gorm:"type:varchar(20);not null;default:'active';index" json:"status"`

	// Denormalized convenience value, recomputed from the application rows on
	// every application event. Reads that must be exact count the live rows
	// instead.
	ApplicationCount int `gorm:"not null;default:0" json:"application_count"`

	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Farmer       Profile          `gorm:"foreignKey:FarmerID" json:"farmer,omitempty"`
	Applications []JobApplication `gorm:"foreignKey:JobID" json:"applications,omitempty"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	return nil
}
