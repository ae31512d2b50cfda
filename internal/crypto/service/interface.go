// Package service implements the crypto envelope that seals secret values at rest.
// Values are encrypted with an AEAD cipher (AES-256-GCM or ChaCha20-Poly1305) under a single configured key.
package service

import (
	cryptoDomain "github.com/allisson/secretkeeper/internal/crypto/domain"
)

// AEAD defines the interface for Authenticated Encryption with Associated Data.
type AEAD interface {
	// Encrypt encrypts plaintext with optional AAD and returns ciphertext and nonce.
	Encrypt(plaintext, aad []byte) (ciphertext, nonce []byte, err error)

	// Decrypt decrypts ciphertext using the provided nonce and AAD.
	Decrypt(ciphertext, nonce, aad []byte) ([]byte, error)

	// NonceSize returns the size of the nonce produced by Encrypt.
	NonceSize() int
}

// AEADManager defines the interface for creating AEAD cipher instances.
type AEADManager interface {
	// CreateCipher creates an AEAD cipher instance for the specified algorithm.
	CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error)
}

// Envelope seals and opens self-contained secret blobs.
type Envelope interface {
	// Encrypt returns a blob carrying the algorithm header, nonce and ciphertext.
	Encrypt(plaintext []byte) ([]byte, error)

	// Decrypt opens a blob produced by Encrypt with the same key.
	// Every failure is reported as ErrDecryptionFailed.
	Decrypt(blob []byte) ([]byte, error)

	// KeyName returns the logical name of the key recorded with stored versions.
	KeyName() string
}
