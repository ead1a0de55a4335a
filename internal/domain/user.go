package domain

import (
	"strings"
	"time"
)

// Address holds the optional postal address of a user.
type Address struct {
	Street     string
	Number     string
	Complement string
	City       string
	State      string
	ZipCode    string
}

// User is the domain model for registry accounts.
type User struct {
	ID           string
	Login        string
	Email        string
	Name         string
	Phone        string
	Role         Role
	PasswordHash string
	Address      *Address
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    *time.Time
}

// Active reports whether the account has not been soft-deleted.
func (u *User) Active() bool {
	return u.DeletedAt == nil
}

// Normalize trims and lowercases login and email before persistence.
func (u *User) Normalize() {
	u.Login = NormalizeKey(u.Login)
	u.Email = NormalizeKey(u.Email)
	if u.Role == "" {
		u.Role = RoleClient
	}
}

// UpdateProfile applies non-empty profile fields. Login and role are
// immutable through this path.
func (u *User) UpdateProfile(name, phone string, address *Address) {
	if strings.TrimSpace(name) != "" {
		u.Name = name
	}
	if strings.TrimSpace(phone) != "" {
		u.Phone = phone
	}
	if address != nil {
		u.Address = address
	}
}

// NormalizeKey trims and lowercases an identity key (login or email).
func NormalizeKey(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
