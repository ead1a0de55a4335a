package auth

import (
	"errors"
	"fmt"
)

// Token and credential failures keep their specific kind internally; the HTTP
// boundary collapses all of them into a generic authentication failure so the
// API never leaks which step rejected the caller.
var (
	ErrMalformedToken    = errors.New("auth: malformed token")
	ErrInvalidSignature  = errors.New("auth: invalid token signature")
	ErrExpiredToken      = errors.New("auth: token expired")
	ErrUnknownSubject    = errors.New("auth: unknown subject")
	ErrInvalidCredential = errors.New("auth: invalid credentials")
	ErrTooManyAttempts   = errors.New("auth: too many login attempts")
)

// PolicyViolation reports the first password-strength criterion that failed.
type PolicyViolation struct {
	Criterion string
	Message   string
}

func (v *PolicyViolation) Error() string {
	return fmt.Sprintf("password policy violation (%s): %s", v.Criterion, v.Message)
}
