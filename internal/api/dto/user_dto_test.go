package dto

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/restaurant-service/internal/domain"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util/errorutil"
)

func validCreateRequest() UserCreateRequest {
	return UserCreateRequest{
		Login:    "maria",
		Email:    "maria@example.com",
		Name:     "Maria Silva",
		Phone:    "11912345678",
		Password: "Secret123",
	}
}

func TestUserCreateRequestValidate(t *testing.T) {
	assert.NoError(t, validCreateRequest().Validate())

	cases := []struct {
		name   string
		mutate func(*UserCreateRequest)
		field  string
	}{
		{"bad login", func(r *UserCreateRequest) { r.Login = "1bad" }, "login"},
		{"short login", func(r *UserCreateRequest) { r.Login = "ab" }, "login"},
		{"bad email", func(r *UserCreateRequest) { r.Email = "not-an-email" }, "email"},
		{"short name", func(r *UserCreateRequest) { r.Name = "ab" }, "name"},
		{"bad phone", func(r *UserCreateRequest) { r.Phone = "abc" }, "phone"},
		{"missing password", func(r *UserCreateRequest) { r.Password = "" }, "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req)
			err := req.Validate()

			var domainErr *apperrors.DomainError
			require.True(t, errors.As(err, &domainErr))
			assert.Contains(t, domainErr.Details, tc.field)
		})
	}
}

func TestToUserResponseOmitsPasswordHash(t *testing.T) {
	user := &domain.User{
		ID:           "1",
		Login:        "maria",
		Email:        "maria@example.com",
		Role:         domain.RoleClient,
		PasswordHash: "$2a$04$hash",
		Address:      &domain.Address{City: "Sao Paulo", State: "SP"},
	}

	resp := ToUserResponse(user)
	assert.Equal(t, "maria", resp.Login)
	require.NotNil(t, resp.Address)
	assert.Equal(t, "Sao Paulo", resp.Address.City)
}

func TestChangePasswordRequestValidate(t *testing.T) {
	assert.Error(t, ChangePasswordRequest{}.Validate())
	assert.Error(t, ChangePasswordRequest{CurrentPassword: "a"}.Validate())
	assert.NoError(t, ChangePasswordRequest{CurrentPassword: "a", NewPassword: "b"}.Validate())
}
