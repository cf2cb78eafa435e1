package models

// Role is what a user is allowed to do
type Role string

const (
	// RoleTeacher can open sessions and read their rosters
	RoleTeacher Role = "teacher"

	// RoleStudent can sign sessions
	RoleStudent Role = "student"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleTeacher || r == RoleStudent
}

// User is an account known to the identity service
type User struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`

	// PasswordHash is salt$hash, never returned to clients
	PasswordHash string `json:"password_hash,omitempty"`
}

// Public returns a copy without credentials
func (u *User) Public() *User {
	return &User{ID: u.ID, Name: u.Name, Role: u.Role}
}
