package dto

import (
	"time"

	"github.com/google/uuid"

	userDomain "github.com/allisson/minidrive/internal/user/domain"
)

// UserResponse is the public representation of a user. The password hash
// never leaves the server.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// MapUserToResponse converts a user domain entity to its response form.
func MapUserToResponse(user *userDomain.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}
}
