package service

import (
	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/school/internal/errors"
)

// passwordService implements PasswordService using Argon2id hashing.
type passwordService struct {
	hasher *pwdhash.PasswordHasher
}

// NewPasswordService creates a PasswordService using Argon2id. The policy name
// selects the cost profile: "moderate" for higher-cost hashing, anything else
// falls back to the interactive policy, suited for login-path verification
// latency.
func NewPasswordService(policy string) PasswordService {
	selected := pwdhash.PolicyInteractive
	if policy == "moderate" {
		selected = pwdhash.PolicyModerate
	}

	hasher, err := pwdhash.New(pwdhash.WithPolicy(selected))
	if err != nil {
		// This should never happen with a valid policy
		panic(err)
	}

	return &passwordService{hasher: hasher}
}

// Hash hashes a plain text password.
func (p *passwordService) Hash(password string) (string, error) {
	hash, err := p.hasher.Hash([]byte(password))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash password")
	}
	return hash, nil
}

// Verify performs a constant-time comparison between a plain password and its hash.
func (p *passwordService) Verify(password string, hash string) bool {
	ok, err := p.hasher.Verify([]byte(password), hash)
	if err != nil {
		return false
	}
	return ok
}
