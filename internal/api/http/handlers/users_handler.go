package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/restaurant-service/internal/api/dto"
	"github.com/spec-kit/restaurant-service/internal/auth"
	"github.com/spec-kit/restaurant-service/internal/domain"
	"github.com/spec-kit/restaurant-service/internal/service"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util/errorutil"
)

// UsersHandler exposes the registry CRUD endpoints. Route-level guards handle
// role checks; ownership checks live here because they need the target
// record's identity key.
type UsersHandler struct {
	users *service.UserService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{users: userService}
}

// Create handles POST /users. Anyone may self-register as CLIENT; creating a
// privileged account requires an administrative caller.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.UserCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	role := domain.ParseRole(req.Role)
	if role != domain.RoleClient && !auth.IsAdmin(c.UserContext()) {
		return apperrors.NewForbidden("access denied")
	}

	user, err := h.users.Create(c.UserContext(), service.CreateUserInput{
		Login:    req.Login,
		Email:    req.Email,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     role,
		Password: req.Password,
		Address:  req.Address.ToAddress(),
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.ToUserResponse(user)})
}

// List handles GET /users with page/size query params.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	page := c.QueryInt("page", 0)
	size := c.QueryInt("size", 20)

	users, err := h.users.List(c.UserContext(), page, size)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"data": dto.ToUserResponses(users),
		"page": fiber.Map{"number": page, "size": size},
	})
}

// Search handles GET /users/search?name=.
func (h *UsersHandler) Search(c *fiber.Ctx) error {
	users, err := h.users.SearchByName(c.UserContext(), c.Query("name"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToUserResponses(users)})
}

// Me handles GET /users/me for the authenticated caller.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	identity, ok := auth.CurrentIdentity(c.UserContext())
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	user, err := h.users.GetByLogin(c.UserContext(), identity)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToUserResponse(user)})
}

// Get handles GET /users/:id. Admins or the account owner may read it. A
// denied read answers not found, the same as an absent id, so callers cannot
// probe which ids exist.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.users.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if !auth.IsAdminOrOwner(c.UserContext(), user.Login) {
		return apperrors.NewNotFound("user", map[string]any{"id": c.Params("id")})
	}
	return c.JSON(fiber.Map{"data": dto.ToUserResponse(user)})
}

// GetByEmail handles GET /users/email/:email.
func (h *UsersHandler) GetByEmail(c *fiber.Ctx) error {
	user, err := h.users.GetByEmail(c.UserContext(), c.Params("email"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToUserResponse(user)})
}

// Update handles PUT /users/:id. Admins or the account owner may update the
// profile; login and role stay immutable.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UserUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	target, err := h.users.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if !auth.IsAdminOrOwner(c.UserContext(), target.Login) {
		return apperrors.NewNotFound("user", map[string]any{"id": c.Params("id")})
	}

	user, err := h.users.UpdateProfile(c.UserContext(), target.ID, service.UpdateProfileInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Address: req.Address.ToAddress(),
	})
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.ToUserResponse(user)})
}

// ChangePassword handles PUT /users/:id/password. Only the top administrator
// or the account owner may change a password.
func (h *UsersHandler) ChangePassword(c *fiber.Ctx) error {
	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if err := req.Validate(); err != nil {
		return err
	}

	target, err := h.users.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	if !auth.IsMasterOrOwner(c.UserContext(), target.Login) {
		// Callers who could not even read the record get not found.
		if !auth.IsAdminOrOwner(c.UserContext(), target.Login) {
			return apperrors.NewNotFound("user", map[string]any{"id": c.Params("id")})
		}
		return apperrors.NewForbidden("access denied")
	}

	if err := h.users.ChangePassword(c.UserContext(), target.ID, req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Delete handles DELETE /users/:id. Restricted to the top administrator by a
// route guard.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.users.Delete(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
