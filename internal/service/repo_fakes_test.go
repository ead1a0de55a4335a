package service

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/restaurant-service/internal/config"
	"github.com/spec-kit/restaurant-service/internal/domain"
)

func testConfig() config.Config {
	return config.Config{
		Auth: config.AuthConfig{
			JWTSecret:             "test-secret",
			AccessTokenTTLMinutes: 60,
			BcryptCost:            4,
		},
	}
}

type memoryUserRepo struct {
	byLogin map[string]*domain.User
	nextID  int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byLogin: map[string]*domain.User{}, nextID: 1}
}

func (m *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = strconv.Itoa(m.nextID)
	m.nextID++
	m.byLogin[user.Login] = user
	return nil
}

func (m *memoryUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := m.byLogin[user.Login]; !ok {
		return pgx.ErrNoRows
	}
	m.byLogin[user.Login] = user
	return nil
}

func (m *memoryUserRepo) UpdatePassword(_ context.Context, id, hash string) error {
	for _, u := range m.byLogin {
		if u.ID == id {
			u.PasswordHash = hash
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, u := range m.byLogin {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memoryUserRepo) GetByLogin(_ context.Context, login string) (*domain.User, error) {
	if u, ok := m.byLogin[domain.NormalizeKey(login)]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

func (m *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range m.byLogin {
		if u.Email == domain.NormalizeKey(email) {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (m *memoryUserRepo) List(_ context.Context, limit, offset int) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range m.byLogin {
		out = append(out, u)
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (m *memoryUserRepo) SearchByName(_ context.Context, name string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range m.byLogin {
		if name == "" || containsFold(u.Name, name) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *memoryUserRepo) SoftDelete(_ context.Context, id string) error {
	for login, u := range m.byLogin {
		if u.ID == id {
			delete(m.byLogin, login)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (m *memoryUserRepo) CountActive(_ context.Context) (int64, error) {
	return int64(len(m.byLogin)), nil
}

func containsFold(haystack, needle string) bool {
	h := domain.NormalizeKey(haystack)
	n := domain.NormalizeKey(needle)
	for i := 0; i+len(n) <= len(h); i++ {
		if h[i:i+len(n)] == n {
			return true
		}
	}
	return false
}

type stubLimiter struct {
	allow  bool
	resets int
}

func (s *stubLimiter) Allow(context.Context, string) bool { return s.allow }
func (s *stubLimiter) Reset(context.Context, string)      { s.resets++ }
