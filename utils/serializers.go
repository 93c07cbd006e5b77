package utils

import (
	"studytrack_go/models"
)

// Compact representations used across APIs

// UserDTO is the user shape returned by auth endpoints. The credential hash
// never leaves the server.
type UserDTO struct {
	ID    string      `json:"id"`
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  models.Role `json:"role"`
}

// ToUserDTO maps a User to its API representation.
func ToUserDTO(u *models.User) UserDTO {
	return UserDTO{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  u.Role,
	}
}
