package service

import (
	"context"
	"time"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/repository"
)

// LoginLimiter throttles login attempts per identity key.
type LoginLimiter interface {
	Allow(ctx context.Context, key string) bool
	Reset(ctx context.Context, key string)
}

// AuthService coordinates the login boundary: credential verification and
// token issuance.
type AuthService struct {
	users    repository.UserRepository
	tokenMgr *auth.TokenManager
	limiter  LoginLimiter
}

// NewAuthService builds the service. The limiter may be nil when Redis is not
// configured.
func NewAuthService(cfg config.Config, users repository.UserRepository, limiter LoginLimiter) *AuthService {
	return &AuthService{
		users:    users,
		tokenMgr: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		limiter:  limiter,
	}
}

// Login verifies the credential pair and issues a bearer token. Any mismatch
// surfaces as ErrInvalidCredential: callers never learn whether the login was
// unknown or the password wrong.
func (s *AuthService) Login(ctx context.Context, login, password string) (*domain.User, string, time.Time, error) {
	key := domain.NormalizeKey(login)

	if s.limiter != nil && !s.limiter.Allow(ctx, key) {
		return nil, "", time.Time{}, auth.ErrTooManyAttempts
	}

	user, err := s.users.GetByLogin(ctx, key)
	if err != nil {
		return nil, "", time.Time{}, auth.ErrInvalidCredential
	}
	if !auth.PasswordMatches(user.PasswordHash, password) {
		return nil, "", time.Time{}, auth.ErrInvalidCredential
	}

	token, expiresAt, err := s.tokenMgr.Issue(user.Login)
	if err != nil {
		return nil, "", time.Time{}, err
	}

	if s.limiter != nil {
		s.limiter.Reset(ctx, key)
	}
	return user, token, expiresAt, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
