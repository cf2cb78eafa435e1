package user

import (
	"errors"

	"github.com/KirkDiggler/rollcall/internal/models"
)

var (
	// ErrUserNotFound is returned when a user is not found
	ErrUserNotFound = errors.New("user not found")

	// ErrNameTaken is returned when another user already holds the name
	ErrNameTaken = errors.New("user name already taken")
)

// CreateUserInput contains parameters for persisting a user
type CreateUserInput struct {
	User *models.User
}

// GetUserInput contains parameters for retrieving a user by ID
type GetUserInput struct {
	UserID string
}

// GetUserByNameInput contains parameters for retrieving a user by name
type GetUserByNameInput struct {
	Name string
}
