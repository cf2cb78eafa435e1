package uuid

import "github.com/google/uuid"

//go:generate mockgen -package=mocks -destination=mocks/mock_uuid.go github.com/KirkDiggler/rollcall/internal/common/uuid UUID

// UUID generates opaque identifiers for sessions and users
type UUID interface {
	NewUUID() string
}

type DefaultUUID struct{}

func New() *DefaultUUID {
	return &DefaultUUID{}
}

// NewUUID returns a random (v4) UUID string
func (d *DefaultUUID) NewUUID() string {
	return uuid.New().String()
}
