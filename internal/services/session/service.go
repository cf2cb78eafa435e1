package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/KirkDiggler/rollcall/internal/code"
	"github.com/KirkDiggler/rollcall/internal/common/clock"
	"github.com/KirkDiggler/rollcall/internal/common/uuid"
	"github.com/KirkDiggler/rollcall/internal/models"
	sessionRepo "github.com/KirkDiggler/rollcall/internal/repositories/session"
)

// service implements the Service interface
type service struct {
	sessionRepo     sessionRepo.Repository
	clock           clock.Clock
	uuidGenerator   uuid.UUID
	codeGenerator   code.Generator
	maxCodeAttempts int
}

// New creates a new session service
func New(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}

	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	if cfg.CodeGenerator == nil {
		return nil, ErrNilCodeGenerator
	}

	maxAttempts := cfg.MaxCodeAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxCodeAttempts
	}

	return &service{
		sessionRepo:     cfg.SessionRepo,
		clock:           cfg.Clock,
		uuidGenerator:   cfg.UUIDGenerator,
		codeGenerator:   cfg.CodeGenerator,
		maxCodeAttempts: maxAttempts,
	}, nil
}

// CreateSession opens a new attendance window starting now
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.OwnerID == "" {
		return nil, ErrOwnerRequired
	}

	if input.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	now := s.clock.Now()

	joinCode, err := s.issueCode(ctx, now)
	if err != nil {
		return nil, err
	}

	session := &models.Session{
		ID:        s.uuidGenerator.NewUUID(),
		Code:      joinCode,
		OwnerID:   input.OwnerID,
		CreatedAt: now,
		ExpiresAt: now.Add(time.Duration(input.DurationMinutes) * time.Minute),
	}

	if err := s.sessionRepo.CreateSession(ctx, &sessionRepo.CreateSessionInput{
		Session: session,
	}); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &CreateSessionOutput{
		Session: session,
	}, nil
}

// issueCode draws codes until one is not held by an active session. When the
// attempt budget runs out the last draw is kept and FindSessionByCode's
// precedence rule disambiguates.
func (s *service) issueCode(ctx context.Context, now time.Time) (string, error) {
	var joinCode string
	for attempt := 1; attempt <= s.maxCodeAttempts; attempt++ {
		joinCode = s.codeGenerator.Generate()

		existing, err := s.sessionRepo.ListSessionsByCode(ctx, &sessionRepo.ListSessionsByCodeInput{
			Code: joinCode,
		})
		if err != nil {
			return "", fmt.Errorf("failed to check code collisions: %w", err)
		}

		if latestActive(existing.Sessions, now) == nil {
			return joinCode, nil
		}
	}

	log.Printf("Code %s still held by an active session after %d attempts, issuing anyway", joinCode, s.maxCodeAttempts)
	return joinCode, nil
}

// GetActiveSession returns the owner's most recently created active session
func (s *service) GetActiveSession(ctx context.Context, input *GetActiveSessionInput) (*GetActiveSessionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.OwnerID == "" {
		return nil, ErrOwnerRequired
	}

	out, err := s.sessionRepo.ListSessionsByOwner(ctx, &sessionRepo.ListSessionsByOwnerInput{
		OwnerID: input.OwnerID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return &GetActiveSessionOutput{
		Session: latestActive(out.Sessions, s.clock.Now()),
	}, nil
}

// ListSessions returns every session the owner created, oldest first
func (s *service) ListSessions(ctx context.Context, input *ListSessionsInput) (*ListSessionsOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.OwnerID == "" {
		return nil, ErrOwnerRequired
	}

	out, err := s.sessionRepo.ListSessionsByOwner(ctx, &sessionRepo.ListSessionsByOwnerInput{
		OwnerID: input.OwnerID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return &ListSessionsOutput{
		Sessions: out.Sessions,
	}, nil
}

// FindSessionByCode resolves a code. Among sessions sharing the code the most
// recently created active one wins; with none active, the most recently
// created one is returned so callers can report expiry.
func (s *service) FindSessionByCode(ctx context.Context, input *FindSessionByCodeInput) (*FindSessionByCodeOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	joinCode := strings.TrimSpace(input.Code)
	if joinCode == "" {
		return &FindSessionByCodeOutput{}, nil
	}

	out, err := s.sessionRepo.ListSessionsByCode(ctx, &sessionRepo.ListSessionsByCodeInput{
		Code: joinCode,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find session by code: %w", err)
	}

	if len(out.Sessions) == 0 {
		return &FindSessionByCodeOutput{}, nil
	}

	session := latestActive(out.Sessions, s.clock.Now())
	if session == nil {
		session = out.Sessions[len(out.Sessions)-1]
	}

	return &FindSessionByCodeOutput{
		Session: session,
	}, nil
}

// GetSession returns a session by ID
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, ErrNilInput
	}

	if input.SessionID == "" {
		return nil, ErrSessionNotFound
	}

	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		SessionID: input.SessionID,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &GetSessionOutput{
		Session: session,
	}, nil
}

// latestActive returns the last active session of a creation-ordered slice
func latestActive(sessions []*models.Session, now time.Time) *models.Session {
	for i := len(sessions) - 1; i >= 0; i-- {
		if sessions[i].IsActive(now) {
			return sessions[i]
		}
	}
	return nil
}
