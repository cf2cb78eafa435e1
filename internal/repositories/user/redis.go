package user

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/KirkDiggler/rollcall/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	userKeyPrefix     = "user:"
	userNameKeyPrefix = "user_name:"
)

// Config holds configuration for the Redis user repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed user repository
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

// CreateUser claims the name with SETNX, then stores the user
func (r *redisRepository) CreateUser(ctx context.Context, input *CreateUserInput) error {
	if input == nil || input.User == nil {
		return errors.New("input and user cannot be nil")
	}

	u := input.User
	if u.ID == "" || u.Name == "" {
		return errors.New("user ID and name cannot be empty")
	}

	userJSON, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	nameKey := userNameKeyPrefix + u.Name
	claimed, err := r.client.SetNX(ctx, nameKey, u.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to claim user name: %w", err)
	}
	if !claimed {
		return ErrNameTaken
	}

	if err := r.client.Set(ctx, userKeyPrefix+u.ID, userJSON, 0).Err(); err != nil {
		if delErr := r.client.Del(ctx, nameKey).Err(); delErr != nil {
			log.Printf("Failed to release user name %s: %v", u.Name, delErr)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

// GetUser retrieves a user by ID from Redis
func (r *redisRepository) GetUser(ctx context.Context, input *GetUserInput) (*models.User, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	userJSON, err := r.client.Get(ctx, userKeyPrefix+input.UserID).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	var u models.User
	if err := json.Unmarshal([]byte(userJSON), &u); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user: %w", err)
	}

	return &u, nil
}

// GetUserByName resolves the name claim and loads the user
func (r *redisRepository) GetUserByName(ctx context.Context, input *GetUserByNameInput) (*models.User, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and name cannot be empty")
	}

	userID, err := r.client.Get(ctx, userNameKeyPrefix+input.Name).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user name: %w", err)
	}

	return r.GetUser(ctx, &GetUserInput{UserID: userID})
}
