// Package service provides token generation and Argon2id hashing for administrator credentials.
package service

// TokenService defines operations for admin token generation and validation.
type TokenService interface {
	// GenerateToken creates a new random token and its Argon2id hash.
	// The plain token is shown once to the operator; only the hash is configured.
	GenerateToken() (plainToken string, tokenHash string, err error)

	// HashToken hashes a plain token.
	HashToken(plainToken string) (tokenHash string, err error)

	// CompareToken reports whether plainToken matches tokenHash in constant time.
	CompareToken(plainToken string, tokenHash string) bool
}
