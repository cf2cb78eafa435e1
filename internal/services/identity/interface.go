package identity

import "context"

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/rollcall/internal/services/identity Service

// Service defines the interface for account operations
type Service interface {
	// Register creates an account and returns it with a signed token
	Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error)

	// Login checks credentials and returns the account with a signed token
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// ParseToken validates a token and returns its claims
	ParseToken(ctx context.Context, input *ParseTokenInput) (*ParseTokenOutput, error)
}
