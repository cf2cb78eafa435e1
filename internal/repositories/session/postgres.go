package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/rollcall/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig holds configuration for the Postgres session repository
type PostgresConfig struct {
	Pool *pgxpool.Pool
}

// postgresRepository implements the Repository interface using Postgres
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a new Postgres-backed session repository
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

const sessionColumns = "id, code, owner_id, created_at, expires_at"

func (r *postgresRepository) CreateSession(ctx context.Context, input *CreateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}

	s := input.Session
	if s.ID == "" {
		return errors.New("session ID cannot be empty")
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO attendance_sessions (`+sessionColumns+`) VALUES ($1, $2, $3, $4, $5)`,
		s.ID, s.Code, s.OwnerID, s.CreatedAt, s.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.SessionID == "" {
		return nil, errors.New("input and session ID cannot be empty")
	}

	row := r.pool.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM attendance_sessions WHERE id = $1`,
		input.SessionID,
	)

	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (r *postgresRepository) ListSessionsByOwner(ctx context.Context, input *ListSessionsByOwnerInput) (*ListSessionsByOwnerOutput, error) {
	if input == nil || input.OwnerID == "" {
		return nil, errors.New("input and owner ID cannot be empty")
	}

	sessions, err := r.query(ctx,
		`SELECT `+sessionColumns+` FROM attendance_sessions WHERE owner_id = $1 ORDER BY created_at`,
		input.OwnerID,
	)
	if err != nil {
		return nil, err
	}

	return &ListSessionsByOwnerOutput{Sessions: sessions}, nil
}

func (r *postgresRepository) ListSessionsByCode(ctx context.Context, input *ListSessionsByCodeInput) (*ListSessionsByCodeOutput, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and code cannot be empty")
	}

	sessions, err := r.query(ctx,
		`SELECT `+sessionColumns+` FROM attendance_sessions WHERE code = $1 ORDER BY created_at`,
		input.Code,
	)
	if err != nil {
		return nil, err
	}

	return &ListSessionsByCodeOutput{Sessions: sessions}, nil
}

func (r *postgresRepository) query(ctx context.Context, sql string, args ...any) ([]*models.Session, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	sessions := []*models.Session{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	return sessions, nil
}

func scanSession(row pgx.Row) (*models.Session, error) {
	var s models.Session
	if err := row.Scan(&s.ID, &s.Code, &s.OwnerID, &s.CreatedAt, &s.ExpiresAt); err != nil {
		return nil, err
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.ExpiresAt = s.ExpiresAt.UTC()
	return &s, nil
}
