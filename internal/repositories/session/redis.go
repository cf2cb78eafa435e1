package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/KirkDiggler/rollcall/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix       = "session:"
	ownerSessionsKeyPrefix = "owner_sessions:"
	codeSessionsKeyPrefix  = "code_sessions:"
)

// ErrSessionNotFound is returned when a session is not found
var ErrSessionNotFound = errors.New("session not found")

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

// CreateSession stores the session and indexes it by owner and by code
func (r *redisRepository) CreateSession(ctx context.Context, input *CreateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	session := input.Session
	if session.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// milliseconds stay exact in a float64 score; listIndexed orders ties
	score := float64(session.CreatedAt.UnixMilli())

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, sessionKeyPrefix+session.ID, sessionJSON, 0)
	pipe.ZAdd(ctx, ownerSessionsKeyPrefix+session.OwnerID, redis.Z{
		Score:  score,
		Member: session.ID,
	})
	pipe.ZAdd(ctx, codeSessionsKeyPrefix+session.Code, redis.Z{
		Score:  score,
		Member: session.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// GetSession retrieves a session by ID from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	sessionJSON, err := r.client.Get(ctx, sessionKeyPrefix+input.SessionID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// ListSessionsByOwner retrieves an owner's sessions ordered by creation time
func (r *redisRepository) ListSessionsByOwner(ctx context.Context, input *ListSessionsByOwnerInput) (*ListSessionsByOwnerOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.New("input and owner ID cannot be empty")
	}

	sessions, err := r.listIndexed(ctx, ownerSessionsKeyPrefix+input.OwnerID)
	if err != nil {
		return nil, err
	}

	return &ListSessionsByOwnerOutput{
		Sessions: sessions,
	}, nil
}

// ListSessionsByCode retrieves every session issued a code ordered by creation time
func (r *redisRepository) ListSessionsByCode(ctx context.Context, input *ListSessionsByCodeInput) (*ListSessionsByCodeOutput, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and code cannot be empty")
	}

	sessions, err := r.listIndexed(ctx, codeSessionsKeyPrefix+input.Code)
	if err != nil {
		return nil, err
	}

	return &ListSessionsByCodeOutput{
		Sessions: sessions,
	}, nil
}

// listIndexed loads the sessions referenced by a creation-time sorted set
func (r *redisRepository) listIndexed(ctx context.Context, indexKey string) ([]*models.Session, error) {
	sessionIDs, err := r.client.ZRange(ctx, indexKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session IDs: %w", err)
	}

	if len(sessionIDs) == 0 {
		return []*models.Session{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(sessionIDs))
	for i, sessionID := range sessionIDs {
		cmds[i] = pipe.Get(ctx, sessionKeyPrefix+sessionID)
	}

	// redis.Nil on individual commands is handled below
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	sessions := make([]*models.Session, 0, len(sessionIDs))
	for i, cmd := range cmds {
		sessionJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get session %s: %w", sessionIDs[i], err)
		}

		var session models.Session
		if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session %s: %w", sessionIDs[i], err)
		}

		sessions = append(sessions, &session)
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	return sessions, nil
}
