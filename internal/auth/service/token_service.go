package service

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/allisson/go-pwdhash"

	apperrors "github.com/allisson/secretkeeper/internal/errors"
)

// tokenService implements TokenService using Argon2id for hashing.
type tokenService struct {
	hasher *pwdhash.PasswordHasher
}

// GenerateToken creates a 32-byte random token encoded as base64url.
func (s *tokenService) GenerateToken() (string, string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", "", apperrors.Wrap(err, "failed to generate random token")
	}

	plainToken := base64.RawURLEncoding.EncodeToString(randomBytes)

	tokenHash, err := s.HashToken(plainToken)
	if err != nil {
		return "", "", err
	}

	return plainToken, tokenHash, nil
}

// HashToken hashes a plain token using Argon2id.
func (s *tokenService) HashToken(plainToken string) (string, error) {
	tokenHash, err := s.hasher.Hash([]byte(plainToken))
	if err != nil {
		return "", apperrors.Wrap(err, "failed to hash token")
	}
	return tokenHash, nil
}

// CompareToken verifies plainToken against its hash. Malformed hashes never match.
func (s *tokenService) CompareToken(plainToken string, tokenHash string) bool {
	ok, err := s.hasher.Verify([]byte(plainToken), tokenHash)
	if err != nil {
		return false
	}
	return ok
}

// NewTokenService creates a TokenService with the Moderate Argon2id policy.
func NewTokenService() TokenService {
	hasher, err := pwdhash.New(
		pwdhash.WithPolicy(pwdhash.PolicyModerate),
	)
	if err != nil {
		// Only reachable with an invalid policy.
		panic(err)
	}

	return &tokenService{
		hasher: hasher,
	}
}
