package crypto

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmptyPassword = errors.New("password must not be empty")
	ErrInvalidCost   = errors.New("bcrypt cost out of range")
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = bcrypt.DefaultCost

// HashPassword hashes a password using bcrypt with the given cost factor.
// The cost is exponential: each increment doubles the work. The returned
// hash embeds the salt and cost, so verification needs no extra state and
// the cost can be raised later without breaking existing hashes.
func HashPassword(password string, cost int) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return "", ErrInvalidCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// VerifyPassword reports whether a password matches the given bcrypt hash.
// The derived hashes are compared in constant time. Any malformed hash or
// other failure yields false rather than an error, so callers cannot
// accidentally skip their rejection branch.
func VerifyPassword(password, encodedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encodedHash), []byte(password)) == nil
}
