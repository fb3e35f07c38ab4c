package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserType string

const (
	UserTypeFarmer UserType = "farmer"
	UserTypeWorker UserType = "worker"
)

// Profile is the marketplace-visible user record. Credentials live here too
// because the identity provider is collapsed into this service.
type Profile struct {
	ID           string         `gorm:"type:uuid;primarykey" json:"id"`
	Name         string         `gorm:"type:varchar(255);not null" json:"name"`
	Email        string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Phone        string         `gorm:"type:varchar(50)" json:"phone"`
	Location     string         `gorm:"type:varchar(255)" json:"location"`
	UserType     UserType       `gorm:"type:varchar(20);not null" json:"user_type"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Jobs         []Job            `gorm:"foreignKey:FarmerID" json:"-"`
	Applications []JobApplication `gorm:"foreignKey:WorkerID" json:"-"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
