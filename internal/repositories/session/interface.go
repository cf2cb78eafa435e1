package session

import (
	"context"

	"github.com/KirkDiggler/rollcall/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/rollcall/internal/repositories/session Repository

// Repository defines the interface for session persistence
type Repository interface {
	// CreateSession persists a new session
	CreateSession(ctx context.Context, input *CreateSessionInput) error

	// GetSession retrieves a session by ID
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// ListSessionsByOwner retrieves every session of an owner, oldest first
	ListSessionsByOwner(ctx context.Context, input *ListSessionsByOwnerInput) (*ListSessionsByOwnerOutput, error)

	// ListSessionsByCode retrieves every session ever issued a code, oldest first
	ListSessionsByCode(ctx context.Context, input *ListSessionsByCodeInput) (*ListSessionsByCodeOutput, error)
}
