package dto

import (
	"github.com/google/uuid"

	"github.com/allisson/school/internal/user/usecase"
)

// UserInfoResponse is the external representation of an authenticated user.
// The password hash never leaves the domain.
type UserInfoResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// LoginResponse represents the API response for a successful authentication.
type LoginResponse struct {
	Token string           `json:"token"`
	User  UserInfoResponse `json:"user"`
}

// ToLoginResponse converts a use case login output to a LoginResponse DTO.
func ToLoginResponse(output *usecase.LoginOutput) LoginResponse {
	return LoginResponse{
		Token: output.Token,
		User: UserInfoResponse{
			ID:    output.User.ID,
			Name:  output.User.Name,
			Email: output.User.Email,
		},
	}
}
