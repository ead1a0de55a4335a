package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util/errorutil"
)

const bearerPrefix = "Bearer "

const principalKey = "auth_principal"

// Middleware is the per-request authentication gate. It extracts a bearer
// token, validates it, resolves the account and publishes the principal into
// the request scope. It never rejects a request itself: protected endpoints
// are enforced by the route guards below.
type Middleware struct {
	tokens *TokenManager
	users  repository.UserRepository
	logger *zap.Logger
}

// NewMiddleware constructs the authentication gate.
func NewMiddleware(tokens *TokenManager, users repository.UserRepository, logger *zap.Logger) *Middleware {
	return &Middleware{tokens: tokens, users: users, logger: logger}
}

// Authenticate runs the gate and always forwards to the next handler.
func (m *Middleware) Authenticate(c *fiber.Ctx) error {
	header := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(header, bearerPrefix) {
		return c.Next()
	}
	token := header[len(bearerPrefix):]

	subject, err := m.tokens.ExtractSubject(token)
	if err != nil {
		// Degrade to anonymous; keep the specific kind in the logs.
		m.logger.Debug("bearer token rejected", zap.Error(err))
		return c.Next()
	}

	// Idempotent: never clobber an already authenticated context.
	if _, ok := PrincipalFromFiber(c); ok {
		return c.Next()
	}

	user, err := m.users.GetByLogin(c.UserContext(), subject)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			m.logger.Debug("bearer token rejected", zap.Error(ErrUnknownSubject), zap.String("subject", subject))
		} else {
			m.logger.Error("account lookup failed", zap.Error(err))
		}
		return c.Next()
	}
	if !user.Active() {
		m.logger.Debug("bearer token rejected", zap.Error(ErrUnknownSubject), zap.String("subject", subject))
		return c.Next()
	}

	principal := AdaptPrincipal(user)
	valid, err := m.tokens.IsValid(token, principal.IdentityKey)
	if err != nil || !valid {
		m.logger.Debug("bearer token rejected", zap.String("subject", subject), zap.Error(err))
		return c.Next()
	}

	c.Locals(principalKey, &principal)
	c.SetUserContext(ContextWithPrincipal(c.UserContext(), principal))
	return c.Next()
}

// PrincipalFromFiber retrieves the principal published by the gate.
func PrincipalFromFiber(c *fiber.Ctx) (Principal, bool) {
	v, ok := c.Locals(principalKey).(*Principal)
	if !ok || v == nil {
		return Principal{}, false
	}
	return *v, true
}

// RequireAuthenticated denies anonymous requests with a generic 401.
func RequireAuthenticated() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromFiber(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		return c.Next()
	}
}

// RequireAdmin denies callers without an administrative role.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromFiber(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !IsAdmin(c.UserContext()) {
			return apperrors.NewForbidden("access denied")
		}
		return c.Next()
	}
}

// RequireMaster denies callers without the top administrative role.
func RequireMaster() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := PrincipalFromFiber(c); !ok {
			return apperrors.NewUnauthorized("authentication required")
		}
		if !IsMaster(c.UserContext()) {
			return apperrors.NewForbidden("access denied")
		}
		return c.Next()
	}
}
