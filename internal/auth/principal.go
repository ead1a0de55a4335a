package auth

import "github.com/spec-kit/restaurant-service/internal/domain"

// Principal is the minimal authenticated-identity view consumed by
// authorization checks. It is derived from a user record per request and
// never written back.
type Principal struct {
	IdentityKey string
	Role        domain.Role
	Authorities []string
}

// AdaptPrincipal maps a user record onto a Principal. Pure conversion:
// no validation, no I/O.
func AdaptPrincipal(user *domain.User) Principal {
	return Principal{
		IdentityKey: user.Login,
		Role:        user.Role,
		Authorities: []string{user.Role.Authority()},
	}
}

// HasAuthority reports whether the principal carries the given authority string.
func (p Principal) HasAuthority(authority string) bool {
	for _, a := range p.Authorities {
		if a == authority {
			return true
		}
	}
	return false
}
