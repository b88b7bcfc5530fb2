package payload

import (
	"time"

	"github.com/caviteventure/caviteventure-api/internal/model"
)

// UserResponse keeps the field casing the web client has always consumed.
type UserResponse struct {
	Firstname      string    `json:"firstname"`
	Lastname       string    `json:"lastname"`
	Birthday       time.Time `json:"birthday"`
	Location       string    `json:"location"`
	Gender         string    `json:"gender"`
	Role           string    `json:"role"`
	Email          string    `json:"email"`
	ProfilePicture string    `json:"profilePicture,omitempty"`
}

// NewUserResponse maps an account to its public representation.
func NewUserResponse(user *model.User) UserResponse {
	return UserResponse{
		Firstname:      user.FirstName,
		Lastname:       user.LastName,
		Birthday:       user.Birthday,
		Location:       user.Location,
		Gender:         user.Gender,
		Role:           string(user.Role),
		Email:          user.Email,
		ProfilePicture: user.ProfilePicture,
	}
}

type UpdateProfileResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}
