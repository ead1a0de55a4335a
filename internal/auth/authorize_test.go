package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

func contextWithRole(login string, role domain.Role) context.Context {
	principal := AdaptPrincipal(&domain.User{Login: login, Role: role})
	return ContextWithPrincipal(context.Background(), principal)
}

func TestUnauthenticatedContextDeniesEverything(t *testing.T) {
	ctx := context.Background()

	identity, ok := CurrentIdentity(ctx)
	assert.False(t, ok)
	assert.Empty(t, identity)

	_, ok = CurrentRole(ctx)
	assert.False(t, ok)

	assert.False(t, IsOwner(ctx, "anything"))
	assert.False(t, IsAdmin(ctx))
	assert.False(t, IsAdminOrOwner(ctx, "anything"))
	assert.False(t, IsMaster(ctx))
	assert.False(t, IsMasterOrOwner(ctx, "anything"))
}

func TestClientOwnershipScenario(t *testing.T) {
	ctx := contextWithRole("user1", domain.RoleClient)

	assert.True(t, IsAdminOrOwner(ctx, "user1"))
	assert.False(t, IsAdminOrOwner(ctx, "user2"))
	assert.False(t, IsAdmin(ctx))
	assert.False(t, IsMaster(ctx))
}

func TestIsOwnerCaseInsensitive(t *testing.T) {
	ctx := contextWithRole("maria", domain.RoleClient)

	assert.True(t, IsOwner(ctx, "MARIA"))
	assert.False(t, IsOwner(ctx, "joana"))
	assert.False(t, IsOwner(ctx, ""))
}

func TestAdminRoles(t *testing.T) {
	owner := contextWithRole("owner1", domain.RoleOwner)
	master := contextWithRole("master1", domain.RoleMaster)

	assert.True(t, IsAdmin(owner))
	assert.True(t, IsAdmin(master))
	assert.False(t, IsMaster(owner))
	assert.True(t, IsMaster(master))

	// Admin passes the combined predicate regardless of ownership.
	assert.True(t, IsAdminOrOwner(owner, "someone-else"))
	// Master-or-owner excludes a plain OWNER acting on another account.
	assert.False(t, IsMasterOrOwner(owner, "someone-else"))
	assert.True(t, IsMasterOrOwner(master, "someone-else"))
	assert.True(t, IsMasterOrOwner(contextWithRole("u", domain.RoleClient), "u"))
}

func TestPrincipalContextRoundTrip(t *testing.T) {
	principal := AdaptPrincipal(&domain.User{Login: "maria", Role: domain.RoleOwner})
	ctx := ContextWithPrincipal(context.Background(), principal)

	got, ok := PrincipalFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, principal, got)

	_, ok = PrincipalFromContext(nil) //nolint:staticcheck
	assert.False(t, ok)
}
