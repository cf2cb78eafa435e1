package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KirkDiggler/rollcall/internal/common/clock"
	"github.com/KirkDiggler/rollcall/internal/common/uuid"
	"github.com/KirkDiggler/rollcall/internal/models"
	userRepo "github.com/KirkDiggler/rollcall/internal/repositories/user"
)

// service implements the Service interface
type service struct {
	userRepo      userRepo.Repository
	uuidGenerator uuid.UUID
	clock         clock.Clock
	secret        []byte
	issuer        string
	tokenTTL      time.Duration
}

// New creates a new identity service
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.UserRepo == nil {
		return nil, ErrNilUserRepo
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}

	issuer := cfg.Issuer
	if issuer == "" {
		issuer = DefaultIssuer
	}

	ttl := cfg.TokenTTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}

	return &service{
		userRepo:      cfg.UserRepo,
		uuidGenerator: cfg.UUIDGenerator,
		clock:         cfg.Clock,
		secret:        []byte(cfg.Secret),
		issuer:        issuer,
		tokenTTL:      ttl,
	}, nil
}

// Register creates an account. The name claim is atomic in the store, so two
// concurrent registrations of one name cannot both succeed.
func (s *service) Register(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	if len(input.Password) < minPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           s.uuidGenerator.NewUUID(),
		Name:         name,
		Role:         input.Role,
		PasswordHash: hash,
	}

	err = s.userRepo.CreateUser(ctx, &userRepo.CreateUserInput{
		User: user,
	})
	if errors.Is(err, userRepo.ErrNameTaken) {
		return nil, ErrUsernameTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &RegisterOutput{
		User:  user,
		Token: token,
	}, nil
}

// Login checks credentials. Unknown names and wrong passwords fail the same way.
func (s *service) Login(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	user, err := s.userRepo.GetUserByName(ctx, &userRepo.GetUserByNameInput{
		Name: strings.TrimSpace(input.Name),
	})
	if errors.Is(err, userRepo.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	ok, err := verifyPassword(user.PasswordHash, input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password for %s: %w", user.ID, err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginOutput{
		User:  user,
		Token: token,
	}, nil
}

// ParseToken validates signature, issuer and expiry
func (s *service) ParseToken(ctx context.Context, input *ParseTokenInput) (*ParseTokenOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	claims, err := s.parseToken(input.Token)
	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, ErrInvalidToken
	}

	return &ParseTokenOutput{
		Claims: claims,
	}, nil
}
