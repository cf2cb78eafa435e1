package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/KirkDiggler/rollcall/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	recordKeyPrefix         = "record:"
	sessionDevicesKeyPrefix = "session_devices:"
	sessionRecordsKeyPrefix = "session_records:"
	studentRecordsKeyPrefix = "student_records:"
)

// Results of the insert script
const (
	insertOK = iota
	insertStudentConflict
	insertDeviceConflict
)

// insertRecordScript performs the uniqueness checks and every write of an
// admission in one atomic step.
//
// KEYS: record, session devices hash, session records zset, student records zset
// ARGV: student ID, fingerprint, record JSON, score, session ID
var insertRecordScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 1
end
if ARGV[2] ~= '' then
	local holder = redis.call('HGET', KEYS[2], ARGV[2])
	if holder and holder ~= ARGV[1] then
		return 2
	end
end
redis.call('SET', KEYS[1], ARGV[3])
if ARGV[2] ~= '' then
	redis.call('HSET', KEYS[2], ARGV[2], ARGV[1])
end
redis.call('ZADD', KEYS[3], ARGV[4], ARGV[1])
redis.call('ZADD', KEYS[4], ARGV[4], ARGV[5])
return 0
`)

// Config holds configuration for the Redis attendance repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed attendance repository
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

func recordKey(sessionID, studentID string) string {
	return fmt.Sprintf("%s%s:%s", recordKeyPrefix, sessionID, studentID)
}

// CreateRecord inserts a record through the atomic insert script
func (r *redisRepository) CreateRecord(ctx context.Context, input *CreateRecordInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validateRecord(input.Record); err != nil {
		return err
	}

	record := input.Record

	recordJSON, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	keys := []string{
		recordKey(record.SessionID, record.StudentID),
		sessionDevicesKeyPrefix + record.SessionID,
		sessionRecordsKeyPrefix + record.SessionID,
		studentRecordsKeyPrefix + record.StudentID,
	}
	args := []interface{}{
		record.StudentID,
		record.DeviceFingerprint,
		string(recordJSON),
		strconv.FormatInt(record.SignedAt.UnixMilli(), 10),
		record.SessionID,
	}

	result, err := insertRecordScript.Run(ctx, r.client, keys, args...).Int()
	if err != nil {
		return fmt.Errorf("failed to add record: %w", err)
	}

	switch result {
	case insertOK:
		return nil
	case insertStudentConflict:
		return ErrStudentAlreadySigned
	case insertDeviceConflict:
		return ErrDeviceAlreadyUsed
	default:
		return fmt.Errorf("unexpected insert result %d", result)
	}
}

// GetRecord retrieves a student's record for a session
func (r *redisRepository) GetRecord(ctx context.Context, input *GetRecordInput) (*models.AttendanceRecord, error) {
	if input == nil || input.SessionID == "" || input.StudentID == "" {
		return nil, errors.New("input, session ID and student ID cannot be empty")
	}

	recordJSON, err := r.client.Get(ctx, recordKey(input.SessionID, input.StudentID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	return unmarshalRecord(recordJSON)
}

// GetRecordByFingerprint resolves the device holder and loads their record
func (r *redisRepository) GetRecordByFingerprint(ctx context.Context, input *GetRecordByFingerprintInput) (*models.AttendanceRecord, error) {
	if input == nil || input.SessionID == "" || input.Fingerprint == "" {
		return nil, errors.New("input, session ID and fingerprint cannot be empty")
	}

	studentID, err := r.client.HGet(ctx, sessionDevicesKeyPrefix+input.SessionID, input.Fingerprint).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get device holder: %w", err)
	}

	return r.GetRecord(ctx, &GetRecordInput{
		SessionID: input.SessionID,
		StudentID: studentID,
	})
}

// ListRecordsForSession retrieves a session's records ordered by signing time
func (r *redisRepository) ListRecordsForSession(ctx context.Context, input *ListRecordsForSessionInput) (*ListRecordsForSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	studentIDs, err := r.client.ZRange(ctx, sessionRecordsKeyPrefix+input.SessionID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get student IDs for session: %w", err)
	}

	keys := make([]string, len(studentIDs))
	for i, studentID := range studentIDs {
		keys[i] = recordKey(input.SessionID, studentID)
	}

	records, err := r.loadRecords(ctx, keys)
	if err != nil {
		return nil, err
	}

	return &ListRecordsForSessionOutput{Records: records}, nil
}

// ListRecordsForStudent retrieves a student's records ordered by signing time
func (r *redisRepository) ListRecordsForStudent(ctx context.Context, input *ListRecordsForStudentInput) (*ListRecordsForStudentOutput, error) {
	if input == nil || input.StudentID == "" {
		return nil, errors.New("input and student ID cannot be empty")
	}

	sessionIDs, err := r.client.ZRange(ctx, studentRecordsKeyPrefix+input.StudentID, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get session IDs for student: %w", err)
	}

	keys := make([]string, len(sessionIDs))
	for i, sessionID := range sessionIDs {
		keys[i] = recordKey(sessionID, input.StudentID)
	}

	records, err := r.loadRecords(ctx, keys)
	if err != nil {
		return nil, err
	}

	return &ListRecordsForStudentOutput{Records: records}, nil
}

// loadRecords fetches record blobs in one pipeline, preserving key order
func (r *redisRepository) loadRecords(ctx context.Context, keys []string) ([]*models.AttendanceRecord, error) {
	if len(keys) == 0 {
		return []*models.AttendanceRecord{}, nil
	}

	pipe := r.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(keys))
	for i, key := range keys {
		cmds[i] = pipe.Get(ctx, key)
	}

	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}

	records := make([]*models.AttendanceRecord, 0, len(keys))
	for i, cmd := range cmds {
		recordJSON, err := cmd.Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get record %s: %w", keys[i], err)
		}

		record, err := unmarshalRecord(recordJSON)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, nil
}

func unmarshalRecord(recordJSON string) (*models.AttendanceRecord, error) {
	var record models.AttendanceRecord
	if err := json.Unmarshal([]byte(recordJSON), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	return &record, nil
}
