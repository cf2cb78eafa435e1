package attendance

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/rollcall/internal/db"
	"github.com/KirkDiggler/rollcall/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig holds configuration for the Postgres attendance repository
type PostgresConfig struct {
	Pool *pgxpool.Pool
}

// postgresRepository implements the Repository interface using Postgres.
// Uniqueness is enforced by the primary key and the partial device index.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a new Postgres-backed attendance repository
func NewPostgres(cfg *PostgresConfig) (*postgresRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.Pool == nil {
		return nil, errors.New("pool cannot be nil")
	}

	return &postgresRepository{
		pool: cfg.Pool,
	}, nil
}

const recordColumns = "session_id, student_id, student_name, signed_at, device_fingerprint"

func (r *postgresRepository) CreateRecord(ctx context.Context, input *CreateRecordInput) error {
	if input == nil {
		return errors.New("input cannot be nil")
	}
	if err := validateRecord(input.Record); err != nil {
		return err
	}

	rec := input.Record
	_, err := r.pool.Exec(ctx,
		`INSERT INTO attendance_records (`+recordColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		rec.SessionID, rec.StudentID, rec.StudentName, rec.SignedAt, rec.DeviceFingerprint,
	)
	if err != nil {
		return translateInsertError(err)
	}

	return nil
}

// translateInsertError maps constraint violations onto the repository conflicts
func translateInsertError(err error) error {
	if constraint, ok := db.UniqueViolation(err); ok {
		switch constraint {
		case db.ConstraintRecordStudent:
			return ErrStudentAlreadySigned
		case db.ConstraintRecordDevice:
			return ErrDeviceAlreadyUsed
		}
	}
	return fmt.Errorf("failed to add record: %w", err)
}

func (r *postgresRepository) GetRecord(ctx context.Context, input *GetRecordInput) (*models.AttendanceRecord, error) {
	if input == nil || input.SessionID == "" || input.StudentID == "" {
		return nil, errors.New("input, session ID and student ID cannot be empty")
	}

	return r.getOne(ctx,
		`SELECT `+recordColumns+` FROM attendance_records WHERE session_id = $1 AND student_id = $2`,
		input.SessionID, input.StudentID,
	)
}

func (r *postgresRepository) GetRecordByFingerprint(ctx context.Context, input *GetRecordByFingerprintInput) (*models.AttendanceRecord, error) {
	if input == nil || input.SessionID == "" || input.Fingerprint == "" {
		return nil, errors.New("input, session ID and fingerprint cannot be empty")
	}

	return r.getOne(ctx,
		`SELECT `+recordColumns+` FROM attendance_records WHERE session_id = $1 AND device_fingerprint = $2`,
		input.SessionID, input.Fingerprint,
	)
}

func (r *postgresRepository) ListRecordsForSession(ctx context.Context, input *ListRecordsForSessionInput) (*ListRecordsForSessionOutput, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	records, err := r.query(ctx,
		`SELECT `+recordColumns+` FROM attendance_records WHERE session_id = $1 ORDER BY signed_at`,
		input.SessionID,
	)
	if err != nil {
		return nil, err
	}

	return &ListRecordsForSessionOutput{Records: records}, nil
}

func (r *postgresRepository) ListRecordsForStudent(ctx context.Context, input *ListRecordsForStudentInput) (*ListRecordsForStudentOutput, error) {
	if input == nil || input.StudentID == "" {
		return nil, errors.New("input and student ID cannot be empty")
	}

	records, err := r.query(ctx,
		`SELECT `+recordColumns+` FROM attendance_records WHERE student_id = $1 ORDER BY signed_at`,
		input.StudentID,
	)
	if err != nil {
		return nil, err
	}

	return &ListRecordsForStudentOutput{Records: records}, nil
}

func (r *postgresRepository) getOne(ctx context.Context, sql string, args ...any) (*models.AttendanceRecord, error) {
	record, err := scanRecord(r.pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}
	return record, nil
}

func (r *postgresRepository) query(ctx context.Context, sql string, args ...any) ([]*models.AttendanceRecord, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	records := []*models.AttendanceRecord{}
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}

	return records, nil
}

func scanRecord(row pgx.Row) (*models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	if err := row.Scan(&rec.SessionID, &rec.StudentID, &rec.StudentName, &rec.SignedAt, &rec.DeviceFingerprint); err != nil {
		return nil, err
	}
	rec.SignedAt = rec.SignedAt.UTC()
	return &rec, nil
}
