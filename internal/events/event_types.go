package events

import (
	"time"

	"github.com/spec-kit/restaurant-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered      EventType = "user_registered"
	EventUserPasswordChanged EventType = "user_password_changed"
	EventUserDeleted         EventType = "user_deleted"
)

// Actor encapsulates who triggered an event. Empty identity means the system
// (seed, migration) acted on its own.
type Actor struct {
	IdentityKey string      `json:"identity_key,omitempty"`
	Role        domain.Role `json:"role,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	UserID    string      `json:"user_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Login string      `json:"login"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// UserPasswordChangedPayload payload.
type UserPasswordChangedPayload struct {
	Login string `json:"login"`
}

// UserDeletedPayload payload.
type UserDeletedPayload struct {
	Login string `json:"login"`
}
