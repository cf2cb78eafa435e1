package session

// SessionError is a custom error type for session-related errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound  SessionError = "session not found"
	ErrInvalidDuration  SessionError = "session duration must be at least one minute"
	ErrOwnerRequired    SessionError = "owner ID is required"
	ErrNilInput         SessionError = "input cannot be nil"
	ErrNilConfig        SessionError = "config cannot be nil"
	ErrNilSessionRepo   SessionError = "session repository cannot be nil"
	ErrNilClock         SessionError = "clock cannot be nil"
	ErrNilUUIDGenerator SessionError = "UUID generator cannot be nil"
	ErrNilCodeGenerator SessionError = "code generator cannot be nil"
)
