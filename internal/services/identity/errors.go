package identity

// IdentityError is a custom error type for account errors
type IdentityError string

// Error implements the error interface
func (e IdentityError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrUsernameTaken      IdentityError = "username already taken"
	ErrInvalidCredentials IdentityError = "invalid name or password"
	ErrInvalidToken       IdentityError = "invalid or expired token"
	ErrNameRequired       IdentityError = "name is required"
	ErrPasswordTooShort   IdentityError = "password must be at least 6 characters"
	ErrInvalidRole        IdentityError = "role must be teacher or student"
	ErrNilInput           IdentityError = "input cannot be nil"
	ErrNilConfig          IdentityError = "config cannot be nil"
	ErrNilUserRepo        IdentityError = "user repository cannot be nil"
	ErrNilUUIDGenerator   IdentityError = "UUID generator cannot be nil"
	ErrNilClock           IdentityError = "clock cannot be nil"
	ErrMissingSecret      IdentityError = "token secret is required"
)
