package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/rollcall/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// channelPrefix is followed by the session ID
	channelPrefix = "attendance:session:"

	// EventRecordAdmitted is published once per stored attendance record
	EventRecordAdmitted = "record_admitted"
)

// Event is the JSON payload published for each admission
type Event struct {
	Type        string    `json:"type"`
	SessionID   string    `json:"session_id"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name"`
	SignedAt    time.Time `json:"signed_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Config holds configuration for the Redis publisher
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisPublisher pushes admission events to Redis pub/sub
type redisPublisher struct {
	client *redis.Client
}

// NewRedis creates a publisher that satisfies the attendance notifier
func NewRedis(cfg *Config) (*redisPublisher, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	return &redisPublisher{
		client: cfg.RedisClient,
	}, nil
}

// Channel returns the pub/sub channel for a session
func Channel(sessionID string) string {
	return channelPrefix + sessionID
}

// RecordAdmitted publishes the record on the session's channel
func (p *redisPublisher) RecordAdmitted(ctx context.Context, session *models.Session, record *models.AttendanceRecord) error {
	if session == nil || record == nil {
		return errors.New("session and record are required")
	}

	payload, err := json.Marshal(&Event{
		Type:        EventRecordAdmitted,
		SessionID:   session.ID,
		StudentID:   record.StudentID,
		StudentName: record.StudentName,
		SignedAt:    record.SignedAt,
		ExpiresAt:   session.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := p.client.Publish(ctx, Channel(session.ID), payload).Err(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}

// Subscribe listens on a session's channel. Close the returned PubSub when done.
func (p *redisPublisher) Subscribe(ctx context.Context, sessionID string) *redis.PubSub {
	return p.client.Subscribe(ctx, Channel(sessionID))
}

// DecodeEvent parses a message received from a session channel
func DecodeEvent(msg *redis.Message) (*Event, error) {
	var event Event
	if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	return &event, nil
}
