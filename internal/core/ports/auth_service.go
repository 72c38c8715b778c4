package ports

import (
	"context"
	"time"

	"github.com/fotostream/identity-api/internal/core/domain"
)

// RegisterInput carries the attributes of a registration request. The
// transport layer validates shape (email format, password length) before the
// core ever sees them.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// AuthResult is returned by Register and Login: the sanitized user, the
// signed session token, and the token's absolute expiry. The expiry is always
// reported to the caller, never just a relative TTL.
type AuthResult struct {
	User      domain.User
	Token     string
	ExpiresAt time.Time
}

// UserListResult is returned by ListUsers.
type UserListResult struct {
	Total int64
	Users []domain.User
}

// AssignRoleResult is returned by AssignRole.
type AssignRoleResult struct {
	User    domain.User
	Message string
}

// AuthService defines the authentication and account-administration use
// cases. All returned users are sanitized.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Me re-fetches the identity by id so role or name changes made after
	// token issuance are visible.
	Me(ctx context.Context, id int64) (*domain.User, error)
	ListUsers(ctx context.Context) (*UserListResult, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)
	CreateRole(ctx context.Context, name string) (*domain.Role, error)
	// AssignRole resolves the role by id before touching the user; a bare
	// role name from a request body is never trusted.
	AssignRole(ctx context.Context, userID, roleID int64) (*AssignRoleResult, error)
}
