package dto

import "github.com/farmlink/farmlink-api/internal/models"

// UserDTO represents a profile in API responses
type UserDTO struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Type     models.UserType `json:"type"`
	Location string          `json:"location"`
	Phone    string          `json:"phone"`
}

// ToUserDTO converts a Profile model to UserDTO
func ToUserDTO(profile models.Profile) UserDTO {
	return UserDTO{
		ID:       profile.ID,
		Name:     profile.Name,
		Email:    profile.Email,
		Type:     profile.UserType,
		Location: profile.Location,
		Phone:    profile.Phone,
	}
}
