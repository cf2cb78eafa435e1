package clock

import "time"

//go:generate mockgen -package=mocks -destination=mocks/mock_clock.go github.com/KirkDiggler/rollcall/internal/common/clock Clock

// Clock is the single source of "now" for session expiry and admission timestamps
type Clock interface {
	Now() time.Time
}

// DefaultClock reads the system clock in UTC
type DefaultClock struct{}

// New returns the system clock
func New() *DefaultClock {
	return &DefaultClock{}
}

// Now returns the current UTC time
func (c *DefaultClock) Now() time.Time {
	return time.Now().UTC()
}
