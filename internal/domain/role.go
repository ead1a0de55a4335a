package domain

import "strings"

// Role is the access profile assigned to a user account.
type Role string

const (
	RoleClient Role = "CLIENT"
	RoleOwner  Role = "OWNER"
	RoleMaster Role = "MASTER"
)

// roleRank orders roles from least to most privileged.
var roleRank = map[Role]int{
	RoleClient: 0,
	RoleOwner:  1,
	RoleMaster: 2,
}

// ParseRole normalizes a stored role value, defaulting unknown input to CLIENT.
func ParseRole(value string) Role {
	switch Role(strings.ToUpper(strings.TrimSpace(value))) {
	case RoleOwner:
		return RoleOwner
	case RoleMaster:
		return RoleMaster
	default:
		return RoleClient
	}
}

// Valid reports whether the role is one of the known profiles.
func (r Role) Valid() bool {
	_, ok := roleRank[r]
	return ok
}

// AtLeast reports whether the role carries at least the privileges of other.
func (r Role) AtLeast(other Role) bool {
	rank, ok := roleRank[r]
	if !ok {
		return false
	}
	otherRank, ok := roleRank[other]
	if !ok {
		return false
	}
	return rank >= otherRank
}

// Authority returns the authority string granted by the role.
func (r Role) Authority() string {
	return "ROLE_" + string(r)
}
