package identity

import (
	"time"

	"github.com/KirkDiggler/rollcall/internal/common/clock"
	"github.com/KirkDiggler/rollcall/internal/common/uuid"
	"github.com/KirkDiggler/rollcall/internal/models"
	userRepo "github.com/KirkDiggler/rollcall/internal/repositories/user"
)

const (
	// DefaultTokenTTL is used when Config.TokenTTL is zero
	DefaultTokenTTL = 12 * time.Hour

	// DefaultIssuer is used when Config.Issuer is empty
	DefaultIssuer = "rollcall"

	minPasswordLength = 6
)

// Config holds configuration for the identity service
type Config struct {
	// UserRepo persists accounts
	UserRepo userRepo.Repository

	// UUIDGenerator issues user IDs
	UUIDGenerator uuid.UUID

	// Clock stamps tokens
	Clock clock.Clock

	// Secret signs tokens (HS256)
	Secret string

	// Issuer is written to the iss claim
	Issuer string

	// TokenTTL is how long an issued token stays valid
	TokenTTL time.Duration
}

// RegisterInput contains parameters for creating an account
type RegisterInput struct {
	Name     string
	Password string
	Role     models.Role
}

// RegisterOutput contains the new account and its token
type RegisterOutput struct {
	User  *models.User
	Token string
}

// LoginInput contains credentials
type LoginInput struct {
	Name     string
	Password string
}

// LoginOutput contains the account and a fresh token
type LoginOutput struct {
	User  *models.User
	Token string
}

// ParseTokenInput contains a bearer token
type ParseTokenInput struct {
	Token string
}

// ParseTokenOutput contains the validated claims
type ParseTokenOutput struct {
	Claims *Claims
}
