package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// DefaultRoleName is assigned to newly registered users until an
// administrator changes it.
const DefaultRoleName = RoleUser

// User models a registered principal.
//
// PasswordHash is never serialized: every outward-facing representation goes
// through Sanitized first, and the json tag is a second line of defence.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Sanitized returns a copy of the user with the password hash stripped.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

// Role is a named authorization level. Tokens and RBAC checks reference roles
// by Name; assignment requests reference them by ID.
type Role struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
