package ports

import (
	"context"

	"github.com/fotostream/identity-api/internal/core/domain"
)

// UserRepository defines the persistence operations the core consumes for
// user records. Implementations enforce email uniqueness and surface a
// violation as domain.ErrEmailTaken.
type UserRepository interface {
	Count(ctx context.Context) (int64, error)
	FindAll(ctx context.Context) ([]domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdateRole sets the user's role by name and returns the updated
	// record. Fails with domain.ErrUserNotFound when id does not resolve.
	UpdateRole(ctx context.Context, id int64, roleName string) (*domain.User, error)
}

// RoleRepository defines the persistence operations for roles.
type RoleRepository interface {
	ListRoles(ctx context.Context) ([]domain.Role, error)
	FindRoleByID(ctx context.Context, id int64) (*domain.Role, error)
	CreateRole(ctx context.Context, role *domain.Role) (*domain.Role, error)
}
