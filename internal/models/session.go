package models

import (
	"time"
)

// Session represents a time-boxed attendance window
type Session struct {
	// ID is the unique identifier for this session
	ID string `json:"id"`

	// Code is the 6-digit join code students enter or scan
	Code string `json:"code"`

	// OwnerID is the instructor who opened the session
	OwnerID string `json:"owner_id"`

	// CreatedAt is when the session was opened
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is when the session stops accepting signatures
	ExpiresAt time.Time `json:"expires_at"`
}

// IsActive reports whether the session still accepts signatures at now
func (s *Session) IsActive(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}

// Remaining returns the time left before expiry, or zero once expired
func (s *Session) Remaining(now time.Time) time.Duration {
	if !s.IsActive(now) {
		return 0
	}
	return s.ExpiresAt.Sub(now)
}
