package identity

import (
	"time"

	"github.com/eventhub/backend/internal/domain/identity"
)

// RegisterRequest creates a new organizer account
type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	DisplayName string `json:"displayName" binding:"required,min=1,max=100"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
}

// LoginRequest authenticates an organizer
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest exchanges a refresh token for a new token pair
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// UserResponse is the outward view of a user
type UserResponse struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	CreatedAt   time.Time `json:"createdAt"`
}

// AuthResponse carries tokens plus the authenticated user
type AuthResponse struct {
	AccessToken           string        `json:"accessToken"`
	RefreshToken          string        `json:"refreshToken"`
	AccessTokenExpiresAt  time.Time     `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt time.Time     `json:"refreshTokenExpiresAt"`
	TokenType             string        `json:"tokenType"`
	User                  *UserResponse `json:"user,omitempty"`
}

// ToUserResponse converts a domain user to its response form
func ToUserResponse(u *identity.User) *UserResponse {
	return &UserResponse{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		CreatedAt:   u.CreatedAt,
	}
}
