package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/fotostream/identity-api/internal/core/domain"
	"github.com/fotostream/identity-api/internal/core/ports"
)

// Default token lifetimes in hours. Registration tokens are effectively
// permanent (the original deployment shipped with 10,000,000h, more than
// time.Duration can hold); login tokens last 20 days. Both are
// configuration, not protocol.
const (
	DefaultRegisterTokenTTLHours int64 = 10_000_000
	DefaultLoginTokenTTLHours    int64 = 480
)

// AuthService orchestrates the user directory, the password hasher and the
// token service into the register / login / me / role-administration use
// cases. Each call is a single-shot transaction; there is no shared mutable
// state between requests.
type AuthService struct {
	users       ports.UserRepository
	roles       ports.RoleRepository
	hasher      ports.PasswordHasher
	tokens      ports.TokenService
	registerTTL int64 // hours
	loginTTL    int64 // hours
	logger      zerolog.Logger
}

func NewAuthService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	registerTTLHours, loginTTLHours int64,
	logger zerolog.Logger,
) *AuthService {
	if registerTTLHours <= 0 {
		registerTTLHours = DefaultRegisterTokenTTLHours
	}
	if loginTTLHours <= 0 {
		loginTTLHours = DefaultLoginTokenTTLHours
	}
	return &AuthService{
		users:       users,
		roles:       roles,
		hasher:      hasher,
		tokens:      tokens,
		registerTTL: registerTTLHours,
		loginTTL:    loginTTLHours,
		logger:      logger,
	}
}

// Register hashes the password, creates the user with the default role and
// issues a long-lived session token over the sanitized projection.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: hash,
		Role:         domain.DefaultRoleName,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", created.ID).Msg("user registered")
	return s.issue(*created, s.registerTTL)
}

// Login verifies credentials and issues a bounded-lifetime token. Both an
// unknown email and a wrong password collapse into ErrAuthenticationFailed so
// the caller cannot tell which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrAuthenticationFailed
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, domain.ErrAuthenticationFailed
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")
	return s.issue(*user, s.loginTTL)
}

// Me re-fetches the identity by id rather than trusting the token's embedded
// snapshot, so role and name changes since issuance are visible.
func (s *AuthService) Me(ctx context.Context, id int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

func (s *AuthService) ListUsers(ctx context.Context) (*ports.UserListResult, error) {
	total, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	users, err := s.users.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i] = users[i].Sanitized()
	}
	return &ports.UserListResult{Total: total, Users: users}, nil
}

func (s *AuthService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.roles.ListRoles(ctx)
}

func (s *AuthService) CreateRole(ctx context.Context, name string) (*domain.Role, error) {
	role, err := s.roles.CreateRole(ctx, &domain.Role{Name: name})
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("role", role.Name).Msg("role created")
	return role, nil
}

// AssignRole resolves the role by id first and only then mutates the target
// user, by the resolved name. A role id that does not resolve fails with
// ErrInvalidRole and leaves the target untouched.
func (s *AuthService) AssignRole(ctx context.Context, userID, roleID int64) (*ports.AssignRoleResult, error) {
	if userID <= 0 || roleID <= 0 {
		return nil, domain.ErrInvalidRole
	}

	role, err := s.roles.FindRoleByID(ctx, roleID)
	if err != nil {
		if errors.Is(err, domain.ErrRoleNotFound) {
			return nil, domain.ErrInvalidRole
		}
		return nil, err
	}

	updated, err := s.users.UpdateRole(ctx, userID, role.Name)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("user_id", userID).Str("role", role.Name).Msg("role assigned")
	return &ports.AssignRoleResult{
		User:    updated.Sanitized(),
		Message: fmt.Sprintf("user role updated to %s", role.Name),
	}, nil
}

// issue mints a token over the sanitized projection and decodes it back to
// report the exact absolute expiry, mirroring how the response always carries
// the signed expiry claim rather than a relative TTL.
func (s *AuthService) issue(user domain.User, ttlHours int64) (*ports.AuthResult, error) {
	sanitized := user.Sanitized()
	token, err := s.tokens.Issue(sanitized, ttlHours)
	if err != nil {
		return nil, err
	}
	payload, err := s.tokens.Decode(token)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{User: sanitized, Token: token, ExpiresAt: payload.ExpiresAt}, nil
}
