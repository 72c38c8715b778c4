package handler

import "github.com/fotostream/identity-api/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name"     validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type createRoleRequest struct {
	Name string `json:"name" validate:"required,min=2"`
}

type assignRoleRequest struct {
	RoleID int64 `json:"role_id" validate:"required,gt=0"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes. Field names follow the original public API,
// including the Italian "scadenza" (absolute token expiry, RFC 3339).

// registeredUser is the projection returned on registration: id, email and
// name only.
type registeredUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// sessionUser is the projection returned on login, role included.
type sessionUser struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

type registerResponse struct {
	User     registeredUser `json:"user"`
	Token    string         `json:"token"`
	Scadenza string         `json:"scadenza"`
}

type loginResponse struct {
	User     sessionUser `json:"user"`
	Token    string      `json:"token"`
	Scadenza string      `json:"scadenza"`
}

type meResponse struct {
	User domain.User `json:"user"`
}

type listUsersResponse struct {
	Total int64         `json:"total"`
	Data  []domain.User `json:"data"`
}

type listRolesResponse struct {
	Total      int           `json:"total"`
	TotalRoles []domain.Role `json:"totalRoles"`
}

type createRoleResponse struct {
	CreatedRole domain.Role `json:"createdRole"`
	Message     string      `json:"message"`
}

type assignRoleResponse struct {
	UserToUpdate domain.User `json:"userToUpdate"`
	Message      string      `json:"message"`
}
