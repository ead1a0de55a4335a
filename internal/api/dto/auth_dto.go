package dto

import (
	"time"

	apperrors "github.com/spec-kit/restaurant-service/pkg/util/errorutil"
)

// LoginRequest payload for the login boundary.
type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

// Validate requires both credential fields.
func (r LoginRequest) Validate() error {
	if r.Login == "" || r.Password == "" {
		return apperrors.NewValidationError("login and password are required", nil)
	}
	return nil
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
