package ports

import (
	"time"

	"github.com/fotostream/identity-api/internal/core/domain"
)

// PasswordHasher performs one-way salted hashing of credentials.
type PasswordHasher interface {
	// Hash fails only on internal error, never on input content.
	Hash(plain string) (string, error)
	// Verify reports whether plain matches hashed. A mismatch is a normal
	// false result, not an error.
	Verify(plain, hashed string) bool
}

// TokenPayload is the decoded content of a session token: the sanitized user
// projection plus the signed time bounds.
type TokenPayload struct {
	ID        int64
	Email     string
	Name      string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService issues and decodes signed session tokens.
//
// Lifetimes are expressed in whole hours because the registration-token
// policy (10,000,000h) exceeds what time.Duration can represent.
//
// Decode verifies signature and structure only; it does not enforce expiry.
// Expiry enforcement belongs to the request-authentication step (the Auth
// middleware), which re-parses the token with full validation.
type TokenService interface {
	Issue(user domain.User, ttlHours int64) (string, error)
	Decode(token string) (*TokenPayload, error)
}
