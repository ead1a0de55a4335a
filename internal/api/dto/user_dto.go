package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util/errorutil"
)

// AddressDTO carries optional address data.
type AddressDTO struct {
	Street     string `json:"street"`
	Number     string `json:"number"`
	Complement string `json:"complement,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	ZipCode    string `json:"zip_code"`
}

// UserCreateRequest payload for new accounts.
type UserCreateRequest struct {
	Login    string      `json:"login"`
	Email    string      `json:"email"`
	Name     string      `json:"name"`
	Phone    string      `json:"phone"`
	Role     string      `json:"role,omitempty"`
	Password string      `json:"password"`
	Address  *AddressDTO `json:"address,omitempty"`
}

// Validate applies the format and length rules for account creation.
// Password strength is the password policy's concern, not a format check.
func (r UserCreateRequest) Validate() error {
	details := map[string]any{}
	login := strings.ToLower(strings.TrimSpace(r.Login))
	if !loginPattern.MatchString(login) {
		details["login"] = "must start with a letter and use only lowercase letters, digits, '_', '.' or '-'"
	}
	if !emailPattern.MatchString(strings.TrimSpace(r.Email)) {
		details["email"] = "invalid email"
	}
	if n := strings.TrimSpace(r.Name); len(n) < 3 || len(n) > 255 {
		details["name"] = "must have between 3 and 255 characters"
	}
	if !phonePattern.MatchString(strings.TrimSpace(r.Phone)) {
		details["phone"] = "invalid phone number"
	}
	if r.Password == "" {
		details["password"] = "password is required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid user payload", details)
	}
	return nil
}

// UserUpdateRequest payload for profile updates. Login and role are immutable.
type UserUpdateRequest struct {
	Name    string      `json:"name,omitempty"`
	Phone   string      `json:"phone,omitempty"`
	Address *AddressDTO `json:"address,omitempty"`
}

// Validate checks the optional fields that were provided.
func (r UserUpdateRequest) Validate() error {
	details := map[string]any{}
	if r.Name != "" {
		if n := strings.TrimSpace(r.Name); len(n) < 3 || len(n) > 255 {
			details["name"] = "must have between 3 and 255 characters"
		}
	}
	if r.Phone != "" && !phonePattern.MatchString(strings.TrimSpace(r.Phone)) {
		details["phone"] = "invalid phone number"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid update payload", details)
	}
	return nil
}

// ChangePasswordRequest payload for password changes.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Validate requires both password fields.
func (r ChangePasswordRequest) Validate() error {
	details := map[string]any{}
	if r.CurrentPassword == "" {
		details["current_password"] = "current password is required"
	}
	if r.NewPassword == "" {
		details["new_password"] = "new password is required"
	}
	if len(details) > 0 {
		return apperrors.NewValidationError("invalid password payload", details)
	}
	return nil
}

// UserResponse is the API representation of an account.
type UserResponse struct {
	ID        string      `json:"id"`
	Login     string      `json:"login"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Role      domain.Role `json:"role"`
	Address   *AddressDTO `json:"address,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// ToUserResponse maps a domain user onto the response shape. The password
// hash never leaves the service.
func ToUserResponse(user *domain.User) UserResponse {
	resp := UserResponse{
		ID:        user.ID,
		Login:     user.Login,
		Email:     user.Email,
		Name:      user.Name,
		Phone:     user.Phone,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
	if user.Address != nil {
		resp.Address = &AddressDTO{
			Street:     user.Address.Street,
			Number:     user.Address.Number,
			Complement: user.Address.Complement,
			City:       user.Address.City,
			State:      user.Address.State,
			ZipCode:    user.Address.ZipCode,
		}
	}
	return resp
}

// ToUserResponses maps a list of users.
func ToUserResponses(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}

// ToAddress converts an AddressDTO to the domain shape.
func (a *AddressDTO) ToAddress() *domain.Address {
	if a == nil {
		return nil
	}
	return &domain.Address{
		Street:     a.Street,
		Number:     a.Number,
		Complement: a.Complement,
		City:       a.City,
		State:      a.State,
		ZipCode:    a.ZipCode,
	}
}
