// Package service provides authentication primitives: password hashing and
// signed token issuance.
package service

import "github.com/google/uuid"

// PasswordService handles password hashing and verification.
type PasswordService interface {
	// Hash hashes a plain text password.
	Hash(password string) (string, error)
	// Verify performs a constant-time comparison between a plain password and its hash.
	Verify(password string, hash string) bool
}

// TokenService issues and verifies signed authentication tokens.
type TokenService interface {
	// Generate issues a signed token carrying the subject's identity claims.
	Generate(subject uuid.UUID, email string, name string) (string, error)
	// Verify validates the token signature, expiry, issuer and audience, and
	// returns its claims.
	Verify(token string) (*Claims, error)
}
