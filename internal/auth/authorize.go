package auth

import (
	"context"
	"strings"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// Authorization decision functions over the request-scoped security context.
// All of them are total: an unauthenticated or malformed context is a
// legitimate deny signal, never an error.

// CurrentIdentity returns the identity key of the authenticated caller.
func CurrentIdentity(ctx context.Context) (string, bool) {
	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		return "", false
	}
	return principal.IdentityKey, true
}

// CurrentRole returns the role of the authenticated caller.
func CurrentRole(ctx context.Context) (domain.Role, bool) {
	principal, ok := PrincipalFromContext(ctx)
	if !ok {
		return "", false
	}
	return principal.Role, true
}

// IsOwner reports whether the caller is authenticated as the identity that
// owns the resource. Comparison is case-insensitive, matching the lookup
// semantics of identity keys.
func IsOwner(ctx context.Context, resourceIdentityKey string) bool {
	identity, ok := CurrentIdentity(ctx)
	if !ok || resourceIdentityKey == "" {
		return false
	}
	return strings.EqualFold(identity, resourceIdentityKey)
}

// IsAdmin reports whether the caller holds an administrative role.
// The canonical administrative set is MASTER and OWNER.
func IsAdmin(ctx context.Context) bool {
	role, ok := CurrentRole(ctx)
	return ok && role.AtLeast(domain.RoleOwner)
}

// IsAdminOrOwner allows administrators and the resource owner.
func IsAdminOrOwner(ctx context.Context, resourceIdentityKey string) bool {
	return IsAdmin(ctx) || IsOwner(ctx, resourceIdentityKey)
}

// IsMaster reports whether the caller holds the highest-privilege role.
func IsMaster(ctx context.Context) bool {
	role, ok := CurrentRole(ctx)
	return ok && role == domain.RoleMaster
}

// IsMasterOrOwner allows the top administrator and the resource owner.
// Used for sensitive operations such as password changes.
func IsMasterOrOwner(ctx context.Context, resourceIdentityKey string) bool {
	return IsMaster(ctx) || IsOwner(ctx, resourceIdentityKey)
}
