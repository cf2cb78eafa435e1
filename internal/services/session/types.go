package session

import (
	"github.com/KirkDiggler/rollcall/internal/code"
	"github.com/KirkDiggler/rollcall/internal/common/clock"
	"github.com/KirkDiggler/rollcall/internal/common/uuid"
	"github.com/KirkDiggler/rollcall/internal/models"
	sessionRepo "github.com/KirkDiggler/rollcall/internal/repositories/session"
)

// DefaultMaxCodeAttempts bounds code regeneration while a code is held by an active session
const DefaultMaxCodeAttempts = 10

// Config holds configuration for the session service
type Config struct {
	// SessionRepo persists sessions
	SessionRepo sessionRepo.Repository

	// Clock supplies the current time
	Clock clock.Clock

	// UUIDGenerator issues session IDs
	UUIDGenerator uuid.UUID

	// CodeGenerator issues join codes
	CodeGenerator code.Generator

	// MaxCodeAttempts is how many codes are drawn before accepting a collision.
	// Zero means DefaultMaxCodeAttempts.
	MaxCodeAttempts int
}

// CreateSessionInput contains parameters for opening a session
type CreateSessionInput struct {
	OwnerID         string
	DurationMinutes int
}

// CreateSessionOutput contains the opened session
type CreateSessionOutput struct {
	Session *models.Session
}

// GetActiveSessionInput contains parameters for finding an owner's active session
type GetActiveSessionInput struct {
	OwnerID string
}

// GetActiveSessionOutput contains the active session, nil when none is open
type GetActiveSessionOutput struct {
	Session *models.Session
}

// ListSessionsInput contains parameters for listing an owner's sessions
type ListSessionsInput struct {
	OwnerID string
}

// ListSessionsOutput contains an owner's sessions, oldest first
type ListSessionsOutput struct {
	Sessions []*models.Session
}

// FindSessionByCodeInput contains the code to resolve
type FindSessionByCodeInput struct {
	Code string
}

// FindSessionByCodeOutput contains the resolved session, nil when the code is unknown
type FindSessionByCodeOutput struct {
	Session *models.Session
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	SessionID string
}

// GetSessionOutput contains the retrieved session
type GetSessionOutput struct {
	Session *models.Session
}
