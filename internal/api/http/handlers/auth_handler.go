package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util/errorutil"
)

// AuthHandler exposes the login boundary.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Login handles POST /auth/login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	_, token, expiresAt, err := h.auth.Login(c.UserContext(), req.Login, req.Password)
	if err != nil {
		return loginError(err)
	}

	return c.JSON(fiber.Map{
		"data": dto.AuthResponse{Token: token, ExpiresAt: expiresAt},
	})
}

// loginError maps login failures onto transport errors. Credential mismatches
// collapse into a generic 401: callers never learn whether the login was
// unknown or the password wrong. Anything else is a server fault and
// propagates as such.
func loginError(err error) error {
	switch {
	case errors.Is(err, auth.ErrTooManyAttempts):
		return apperrors.NewTooManyRequests("too many login attempts")
	case errors.Is(err, auth.ErrInvalidCredential):
		return apperrors.NewUnauthorized("invalid credentials")
	default:
		return err
	}
}
