package service

import (
	cryptoDomain "github.com/allisson/secretkeeper/internal/crypto/domain"
)

// cipherConstructors builds the AEAD for each supported algorithm.
var cipherConstructors = map[cryptoDomain.Algorithm]func(key []byte) (AEAD, error){
	cryptoDomain.AESGCM: func(key []byte) (AEAD, error) {
		return NewAESGCM(key)
	},
	cryptoDomain.ChaCha20: func(key []byte) (AEAD, error) {
		return NewChaCha20Poly1305(key)
	},
}

// AEADManagerService creates the ciphers an envelope seals and opens blobs with.
type AEADManagerService struct{}

// NewAEADManager creates a new AEADManagerService.
func NewAEADManager() *AEADManagerService {
	return &AEADManagerService{}
}

// CreateCipher returns the AEAD for alg keyed with key. The key must be KeySize bytes.
func (am *AEADManagerService) CreateCipher(key []byte, alg cryptoDomain.Algorithm) (AEAD, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	newCipher, ok := cipherConstructors[alg]
	if !ok {
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}
	return newCipher(key)
}
