package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/KirkDiggler/rollcall/internal/db"
	"github.com/KirkDiggler/rollcall/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig holds configuration for the Postgres user repository
type PostgresConfig struct {
	Pool *pgxpool.Pool
}

type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgres creates a new Postgres-backed user repository
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

func (r *postgresRepository) CreateUser(ctx context.Context, input *CreateUserInput) error {
	if input == nil || input.User == nil {
		return errors.New("input and user cannot be nil")
	}

	u := input.User
	if u.ID == "" || u.Name == "" {
		return errors.New("user ID and name cannot be empty")
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, name, role, password_hash) VALUES ($1, $2, $3, $4)`,
		u.ID, u.Name, string(u.Role), u.PasswordHash,
	)
	if err != nil {
		if constraint, ok := db.UniqueViolation(err); ok && constraint == db.ConstraintUserName {
			return ErrNameTaken
		}
		return fmt.Errorf("failed to save user: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetUser(ctx context.Context, input *GetUserInput) (*models.User, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	return r.getOne(ctx, `SELECT id, name, role, password_hash FROM users WHERE id = $1`, input.UserID)
}

func (r *postgresRepository) GetUserByName(ctx context.Context, input *GetUserByNameInput) (*models.User, error) {
	if input == nil || input.Name == "" {
		return nil, errors.New("input and name cannot be empty")
	}

	return r.getOne(ctx, `SELECT id, name, role, password_hash FROM users WHERE name = $1`, input.Name)
}

func (r *postgresRepository) getOne(ctx context.Context, sql string, arg string) (*models.User, error) {
	var (
		u    models.User
		role string
	)
	err := r.pool.QueryRow(ctx, sql, arg).Scan(&u.ID, &u.Name, &role, &u.PasswordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	u.Role = models.Role(role)
	return &u, nil
}
