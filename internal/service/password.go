package service

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost matches the cost the rest of the system was provisioned
// for; raising it invalidates no existing hashes but slows sign-in.
const DefaultHashCost = 10

// Hasher produces and verifies salted one-way password hashes.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside
// bcrypt's supported range fall back to DefaultHashCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	return &Hasher{cost: cost}
}

// Hash derives a randomly salted hash from the plaintext. Invalid UTF-8
// input is rejected with ErrMalformedInput.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if !utf8.ValidString(plaintext) {
		return "", ErrMalformedInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches the stored hash. A malformed
// hash verifies false rather than erroring, so a corrupt record is
// indistinguishable from a wrong password.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
