package session

import "github.com/KirkDiggler/rollcall/internal/models"

// CreateSessionInput contains parameters for persisting a session
type CreateSessionInput struct {
	Session *models.Session
}

// GetSessionInput contains parameters for retrieving a session
type GetSessionInput struct {
	SessionID string
}

// ListSessionsByOwnerInput contains parameters for listing an owner's sessions
type ListSessionsByOwnerInput struct {
	OwnerID string
}

// ListSessionsByOwnerOutput contains an owner's sessions ordered by CreatedAt
type ListSessionsByOwnerOutput struct {
	Sessions []*models.Session
}

// ListSessionsByCodeInput contains parameters for listing sessions sharing a code
type ListSessionsByCodeInput struct {
	Code string
}

// ListSessionsByCodeOutput contains the sessions sharing a code ordered by CreatedAt
type ListSessionsByCodeOutput struct {
	Sessions []*models.Session
}
