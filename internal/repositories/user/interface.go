package user

import (
	"context"

	"github.com/KirkDiggler/rollcall/internal/models"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/rollcall/internal/repositories/user Repository

// Repository defines the interface for user persistence
type Repository interface {
	// CreateUser persists a user, failing with ErrNameTaken if the name is claimed
	CreateUser(ctx context.Context, input *CreateUserInput) error

	// GetUser retrieves a user by ID
	GetUser(ctx context.Context, input *GetUserInput) (*models.User, error)

	// GetUserByName retrieves a user by exact name
	GetUserByName(ctx context.Context, input *GetUserByNameInput) (*models.User, error)
}
