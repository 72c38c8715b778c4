package service

import (
	"errors"
	"math"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fotostream/identity-api/internal/core/domain"
	"github.com/fotostream/identity-api/internal/core/ports"
)

// sessionClaims is the signed token payload: the sanitized user projection
// plus the registered time claims. There is deliberately no field that could
// ever carry a password hash.
type sessionClaims struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// JWTTokenService issues and decodes HS256-signed session tokens using a
// process-wide secret loaded once at startup.
type JWTTokenService struct {
	secret []byte
}

func NewJWTTokenService(secret string) *JWTTokenService {
	return &JWTTokenService{secret: []byte(secret)}
}

func (s *JWTTokenService) Issue(user domain.User, ttlHours int64) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(addHours(now, ttlHours)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// addHours advances t by the given number of hours. Registration tokens live
// for 10,000,000h, which overflows time.Duration (capped at about 292 years),
// so large offsets are applied in chunks.
func addHours(t time.Time, hours int64) time.Time {
	const maxHours = math.MaxInt64 / int64(time.Hour)
	for hours > maxHours {
		t = t.Add(time.Duration(maxHours) * time.Hour)
		hours -= maxHours
	}
	return t.Add(time.Duration(hours) * time.Hour)
}

// Decode verifies the signature and structure of a token and returns its
// payload. Expiry is NOT checked here: callers use Decode to read response
// metadata (the absolute expiry reported alongside every issued token), and
// expiry enforcement happens in the request-authentication middleware.
func (s *JWTTokenService) Decode(token string) (*ports.TokenPayload, error) {
	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, s.keyFunc, jwt.WithoutClaimsValidation())
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	payload := &ports.TokenPayload{
		ID:    claims.ID,
		Email: claims.Email,
		Name:  claims.Name,
		Role:  claims.Role,
	}
	if claims.IssuedAt != nil {
		payload.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		payload.ExpiresAt = claims.ExpiresAt.Time
	}
	return payload, nil
}

func (s *JWTTokenService) keyFunc(token *jwt.Token) (interface{}, error) {
	if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, errors.New("unexpected signing method")
	}
	return s.secret, nil
}
