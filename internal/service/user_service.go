package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/events"
	"github.com/spec-kit/restaurant-service/internal/repository"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util/errorutil"
)

// CreateUserInput carries the fields accepted when registering a user.
type CreateUserInput struct {
	Login    string
	Email    string
	Name     string
	Phone    string
	Role     domain.Role
	Password string
	Address  *domain.Address
}

// UpdateProfileInput carries the mutable profile fields. Login and role are
// immutable through this path.
type UpdateProfileInput struct {
	Name    string
	Phone   string
	Address *domain.Address
}

// UserService implements the registry operations over user accounts.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
}

// NewUserService builds the service.
func NewUserService(cfg config.Config, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	return &UserService{
		users:      users,
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// Create registers a new account: duplicate checks, password policy, hash.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	user := &domain.User{
		Login:   input.Login,
		Email:   input.Email,
		Name:    input.Name,
		Phone:   input.Phone,
		Role:    input.Role,
		Address: input.Address,
	}
	user.Normalize()

	if _, err := s.users.GetByLogin(ctx, user.Login); err == nil {
		return nil, apperrors.NewConflict("login already registered", map[string]any{"login": user.Login})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}
	if _, err := s.users.GetByEmail(ctx, user.Email); err == nil {
		return nil, apperrors.NewConflict("email already registered", map[string]any{"email": user.Email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	if err := auth.ValidatePassword(input.Password); err != nil {
		var violation *auth.PolicyViolation
		if errors.As(err, &violation) {
			return nil, apperrors.NewValidationError(violation.Message, map[string]any{"criterion": violation.Criterion})
		}
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventUserRegistered, user.ID, events.UserRegisteredPayload{
		Login: user.Login,
		Email: user.Email,
		Role:  user.Role,
	})
	return user, nil
}

// GetByID returns an active account.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, err
	}
	return user, nil
}

// GetByLogin returns an active account by login, case-insensitively.
func (s *UserService) GetByLogin(ctx context.Context, login string) (*domain.User, error) {
	user, err := s.users.GetByLogin(ctx, domain.NormalizeKey(login))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"login": login})
		}
		return nil, err
	}
	return user, nil
}

// GetByEmail returns an active account by email, case-insensitively.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.users.GetByEmail(ctx, domain.NormalizeKey(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"email": email})
		}
		return nil, err
	}
	return user, nil
}

// List returns a page of active accounts.
func (s *UserService) List(ctx context.Context, page, size int) ([]*domain.User, error) {
	if size <= 0 || size > 100 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	return s.users.List(ctx, size, page*size)
}

// SearchByName returns active accounts whose name contains the fragment.
func (s *UserService) SearchByName(ctx context.Context, name string) ([]*domain.User, error) {
	if len(name) == 0 {
		return nil, apperrors.NewValidationError("name must not be empty", nil)
	}
	return s.users.SearchByName(ctx, name)
}

// UpdateProfile applies mutable profile fields to an account.
func (s *UserService) UpdateProfile(ctx context.Context, id string, input UpdateProfileInput) (*domain.User, error) {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.UpdateProfile(input.Name, input.Phone, input.Address)
	user.Normalize()
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password, applies the policy and writes
// the new hash.
func (s *UserService) ChangePassword(ctx context.Context, id, currentPassword, newPassword string) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !auth.PasswordMatches(user.PasswordHash, currentPassword) {
		return apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ValidatePassword(newPassword); err != nil {
		var violation *auth.PolicyViolation
		if errors.As(err, &violation) {
			return apperrors.NewValidationError(violation.Message, map[string]any{"criterion": violation.Criterion})
		}
		return err
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	if err := s.users.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}

	s.publish(ctx, events.EventUserPasswordChanged, user.ID, events.UserPasswordChangedPayload{Login: user.Login})
	return nil
}

// Delete soft-deletes an account.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.users.SoftDelete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return err
	}

	s.publish(ctx, events.EventUserDeleted, user.ID, events.UserDeletedPayload{Login: user.Login})
	return nil
}

// Bootstrap seeds a master account when the registry is empty.
func (s *UserService) Bootstrap(ctx context.Context, cfg config.SeedConfig) error {
	if !cfg.Enabled {
		return nil
	}
	count, err := s.users.CountActive(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		s.logger.Info("seed skipped, registry not empty", zap.Int64("users", count))
		return nil
	}

	hash, err := auth.HashPassword(cfg.MasterPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	master := &domain.User{
		Login:        cfg.MasterLogin,
		Email:        cfg.MasterEmail,
		Name:         "Master",
		Phone:        "00000000000",
		Role:         domain.RoleMaster,
		PasswordHash: hash,
	}
	master.Normalize()
	if err := s.users.Create(ctx, master); err != nil {
		return err
	}
	s.logger.Info("seed master account created", zap.String("login", master.Login))
	return nil
}

func (s *UserService) publish(ctx context.Context, eventType events.EventType, userID string, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	actor := events.Actor{}
	if identity, ok := auth.CurrentIdentity(ctx); ok {
		actor.IdentityKey = identity
	}
	if role, ok := auth.CurrentRole(ctx); ok {
		actor.Role = role
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		UserID:    userID,
		Actor:     actor,
		Timestamp: time.Now(),
		Payload:   payload,
	})
}
