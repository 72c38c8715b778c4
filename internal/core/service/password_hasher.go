package service

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost mirrors the work factor the original deployment used.
const DefaultBcryptCost = 10

// BcryptHasher hashes passwords with bcrypt. Each hash embeds its own random
// salt and cost, so Verify works against hashes produced at any cost factor,
// not just the currently configured one.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Verify(plain, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
