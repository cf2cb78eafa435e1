package session

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/rollcall/internal/services/session Service

// Service defines the interface for attendance session operations
type Service interface {
	// CreateSession opens a new attendance window for an instructor
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// GetActiveSession returns the owner's most recently created active session, if any
	GetActiveSession(ctx context.Context, input *GetActiveSessionInput) (*GetActiveSessionOutput, error)

	// ListSessions returns every session of an owner ordered by creation time
	ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error)

	// FindSessionByCode resolves a join code to a session, preferring active ones
	FindSessionByCode(ctx context.Context, input *FindSessionByCodeInput) (*FindSessionByCodeOutput, error)

	// GetSession returns a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)
}
