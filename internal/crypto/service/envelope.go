package service

import (
	"crypto/rand"
	"fmt"

	cryptoDomain "github.com/allisson/secretkeeper/internal/crypto/domain"
)

// GenerateEncryptionKey returns 32 random bytes as padded base64url text,
// suitable for STORE_ENCRYPTION_KEY.
func GenerateEncryptionKey() (string, error) {
	key := &cryptoDomain.EncryptionKey{
		Name: cryptoDomain.DefaultKeyName,
		Key:  make([]byte, cryptoDomain.KeySize),
	}
	defer key.Close()

	if _, err := rand.Read(key.Key); err != nil {
		return "", fmt.Errorf("failed to generate encryption key: %w", err)
	}
	return key.Encode(), nil
}

// EnvelopeService seals values with the configured algorithm and opens blobs of any
// supported algorithm, selected by the blob header byte.
//
// Blob layout: [algorithm id (1 byte)][nonce][ciphertext || tag].
type EnvelopeService struct {
	keyName  string
	alg      cryptoDomain.Algorithm
	headerID byte
	ciphers  map[cryptoDomain.Algorithm]AEAD
}

// NewEnvelope builds an envelope over key using alg for new blobs.
func NewEnvelope(
	aeadManager AEADManager,
	key *cryptoDomain.EncryptionKey,
	alg cryptoDomain.Algorithm,
) (*EnvelopeService, error) {
	if key == nil {
		return nil, cryptoDomain.ErrInvalidKey
	}

	headerID, ok := alg.ID()
	if !ok {
		return nil, cryptoDomain.ErrUnsupportedAlgorithm
	}

	ciphers := make(map[cryptoDomain.Algorithm]AEAD, 2)
	for _, a := range []cryptoDomain.Algorithm{cryptoDomain.AESGCM, cryptoDomain.ChaCha20} {
		c, err := aeadManager.CreateCipher(key.Key, a)
		if err != nil {
			return nil, err
		}
		ciphers[a] = c
	}

	return &EnvelopeService{
		keyName:  key.Name,
		alg:      alg,
		headerID: headerID,
		ciphers:  ciphers,
	}, nil
}

// NewEnvelopeFromText parses key text and builds an envelope for the named algorithm.
func NewEnvelopeFromText(keyText, algorithm string) (*EnvelopeService, error) {
	alg, err := cryptoDomain.ParseAlgorithm(algorithm)
	if err != nil {
		return nil, err
	}

	key, err := cryptoDomain.ParseEncryptionKey(keyText)
	if err != nil {
		return nil, err
	}
	defer key.Close()

	return NewEnvelope(NewAEADManager(), key, alg)
}

// Encrypt seals plaintext into a self-contained blob.
func (e *EnvelopeService) Encrypt(plaintext []byte) ([]byte, error) {
	ciphertext, nonce, err := e.ciphers[e.alg].Encrypt(plaintext, nil)
	if err != nil {
		return nil, err
	}

	blob := make([]byte, 0, 1+len(nonce)+len(ciphertext))
	blob = append(blob, e.headerID)
	blob = append(blob, nonce...)
	blob = append(blob, ciphertext...)
	return blob, nil
}

// Decrypt opens a blob. Unknown headers, truncation and authentication failures
// all return ErrDecryptionFailed.
func (e *EnvelopeService) Decrypt(blob []byte) ([]byte, error) {
	if len(blob) < 1 {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	alg, ok := cryptoDomain.AlgorithmFromID(blob[0])
	if !ok {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	c := e.ciphers[alg]

	nonceSize := c.NonceSize()
	if len(blob) < 1+nonceSize {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	plaintext, err := c.Decrypt(blob[1+nonceSize:], blob[1:1+nonceSize], nil)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}
	return plaintext, nil
}

// KeyName returns the logical key name, always "default".
func (e *EnvelopeService) KeyName() string {
	return e.keyName
}

// Algorithm returns the algorithm used for new blobs.
func (e *EnvelopeService) Algorithm() cryptoDomain.Algorithm {
	return e.alg
}
