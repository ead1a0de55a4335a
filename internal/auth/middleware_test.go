package auth

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/restaurant-service/internal/domain"
	apperrors "github.com/spec-kit/restaurant-service/pkg/util/errorutil"
)

type fakeUserRepo struct {
	users map[string]*domain.User
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.users[user.Login] = user
	return nil
}

func (f *fakeUserRepo) Update(_ context.Context, user *domain.User) error {
	f.users[user.Login] = user
	return nil
}

func (f *fakeUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	for _, u := range f.users {
		if u.ID == id {
			u.PasswordHash = hash
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByLogin(_ context.Context, login string) (*domain.User, error) {
	if u, ok := f.users[domain.NormalizeKey(login)]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == domain.NormalizeKey(email) {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) List(_ context.Context, _, _ int) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) SearchByName(_ context.Context, _ string) ([]*domain.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) SoftDelete(_ context.Context, id string) error {
	for login, u := range f.users {
		if u.ID == id {
			delete(f.users, login)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (f *fakeUserRepo) CountActive(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

type probeResult struct {
	Identity      string `json:"identity"`
	Authenticated bool   `json:"authenticated"`
}

func newGateApp(t *testing.T, repo *fakeUserRepo, tokens *TokenManager, guards ...fiber.Handler) *fiber.App {
	t.Helper()
	mw := NewMiddleware(tokens, repo, zap.NewNop())

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"code": domainErr.Code})
		},
	})
	app.Use(mw.Authenticate)

	handlers := append(append([]fiber.Handler{}, guards...), func(c *fiber.Ctx) error {
		identity, _ := CurrentIdentity(c.UserContext())
		_, hasLocal := PrincipalFromFiber(c)
		return c.JSON(probeResult{Identity: identity, Authenticated: hasLocal})
	})
	app.Get("/probe", handlers...)
	return app
}

func probe(t *testing.T, app *fiber.App, authHeader string) (int, probeResult) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var result probeResult
	if resp.StatusCode == http.StatusOK {
		require.NoError(t, json.Unmarshal(body, &result))
	}
	return resp.StatusCode, result
}

func seedRepo(role domain.Role) *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{
		"maria": {ID: "1", Login: "maria", Email: "maria@example.com", Role: role},
	}}
}

func TestGateWithoutHeaderForwardsAnonymous(t *testing.T) {
	app := newGateApp(t, seedRepo(domain.RoleClient), newTestTokenManager())

	status, result := probe(t, app, "")
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, result.Identity)
	assert.False(t, result.Authenticated)
}

func TestGateWithGarbageTokenForwardsAnonymous(t *testing.T) {
	app := newGateApp(t, seedRepo(domain.RoleClient), newTestTokenManager())

	status, result := probe(t, app, "Bearer garbage.not.a.jwt")
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, result.Authenticated)
}

func TestGateWithNonBearerHeaderForwardsAnonymous(t *testing.T) {
	app := newGateApp(t, seedRepo(domain.RoleClient), newTestTokenManager())

	status, result := probe(t, app, "Basic bWFyaWE6c2VjcmV0")
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, result.Authenticated)
}

func TestGateWithValidTokenAuthenticates(t *testing.T) {
	tokens := newTestTokenManager()
	app := newGateApp(t, seedRepo(domain.RoleClient), tokens)

	token, _, err := tokens.Issue("maria")
	require.NoError(t, err)

	status, result := probe(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, result.Authenticated)
	assert.Equal(t, "maria", result.Identity)
}

func TestGateWithUnknownSubjectForwardsAnonymous(t *testing.T) {
	tokens := newTestTokenManager()
	app := newGateApp(t, seedRepo(domain.RoleClient), tokens)

	token, _, err := tokens.Issue("nobody")
	require.NoError(t, err)

	status, result := probe(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, result.Authenticated)
}

func TestGateWithDeletedAccountForwardsAnonymous(t *testing.T) {
	tokens := newTestTokenManager()
	deletedAt := time.Now().Add(-time.Hour)
	repo := &fakeUserRepo{users: map[string]*domain.User{
		"maria": {ID: "1", Login: "maria", Email: "maria@example.com", Role: domain.RoleClient, DeletedAt: &deletedAt},
	}}
	app := newGateApp(t, repo, tokens)

	token, _, err := tokens.Issue("maria")
	require.NoError(t, err)

	status, result := probe(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, result.Authenticated)
}

func TestGateDoesNotClobberExistingPrincipal(t *testing.T) {
	tokens := newTestTokenManager()
	repo := &fakeUserRepo{users: map[string]*domain.User{
		"maria": {ID: "1", Login: "maria", Email: "maria@example.com", Role: domain.RoleClient},
		"joao":  {ID: "2", Login: "joao", Email: "joao@example.com", Role: domain.RoleMaster},
	}}
	mw := NewMiddleware(tokens, repo, zap.NewNop())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		principal := AdaptPrincipal(repo.users["maria"])
		c.Locals(principalKey, &principal)
		c.SetUserContext(ContextWithPrincipal(c.UserContext(), principal))
		return c.Next()
	})
	app.Use(mw.Authenticate)
	app.Get("/probe", func(c *fiber.Ctx) error {
		identity, _ := CurrentIdentity(c.UserContext())
		_, hasLocal := PrincipalFromFiber(c)
		return c.JSON(probeResult{Identity: identity, Authenticated: hasLocal})
	})

	token, _, err := tokens.Issue("joao")
	require.NoError(t, err)

	status, result := probe(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, result.Authenticated)
	assert.Equal(t, "maria", result.Identity)
}

func TestGateWithExpiredTokenForwardsAnonymous(t *testing.T) {
	live := newTestTokenManager()
	expired := &TokenManager{secret: []byte("test-secret"), ttl: -1}
	app := newGateApp(t, seedRepo(domain.RoleClient), live)

	token, _, err := expired.Issue("maria")
	require.NoError(t, err)

	status, result := probe(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
	assert.False(t, result.Authenticated)
}

func TestRequireAdminGuard(t *testing.T) {
	tokens := newTestTokenManager()

	cases := []struct {
		name   string
		role   domain.Role
		status int
	}{
		{"client denied", domain.RoleClient, http.StatusForbidden},
		{"owner allowed", domain.RoleOwner, http.StatusOK},
		{"master allowed", domain.RoleMaster, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newGateApp(t, seedRepo(tc.role), tokens, RequireAdmin())
			token, _, err := tokens.Issue("maria")
			require.NoError(t, err)

			status, _ := probe(t, app, "Bearer "+token)
			assert.Equal(t, tc.status, status)
		})
	}
}

func TestRequireAdminAnonymousGets401(t *testing.T) {
	app := newGateApp(t, seedRepo(domain.RoleClient), newTestTokenManager(), RequireAdmin())

	status, _ := probe(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRequireMasterGuard(t *testing.T) {
	tokens := newTestTokenManager()

	app := newGateApp(t, seedRepo(domain.RoleOwner), tokens, RequireMaster())
	token, _, err := tokens.Issue("maria")
	require.NoError(t, err)

	status, _ := probe(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusForbidden, status)

	app = newGateApp(t, seedRepo(domain.RoleMaster), tokens, RequireMaster())
	status, _ = probe(t, app, "Bearer "+token)
	assert.Equal(t, http.StatusOK, status)
}
