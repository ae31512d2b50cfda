package domain

import (
	"encoding/base64"
	"strings"
)

// EncryptionKey is the single symmetric key that protects stored secret values.
type EncryptionKey struct {
	Name string
	Key  []byte
}

// ParseEncryptionKey decodes base64url key text, padded or not, into an EncryptionKey
// named DefaultKeyName. The decoded key must be exactly KeySize bytes.
func ParseEncryptionKey(text string) (*EncryptionKey, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrInvalidKey
	}

	key, err := base64.URLEncoding.DecodeString(text)
	if err != nil {
		key, err = base64.RawURLEncoding.DecodeString(text)
		if err != nil {
			return nil, ErrInvalidKey
		}
	}

	if len(key) != KeySize {
		Zero(key)
		return nil, ErrInvalidKeySize
	}

	return &EncryptionKey{Name: DefaultKeyName, Key: key}, nil
}

// Encode returns the padded base64url text form of the key.
func (k *EncryptionKey) Encode() string {
	return base64.URLEncoding.EncodeToString(k.Key)
}

// Zero overwrites key material and plaintext buffers once they are no longer needed.
func Zero(bufs ...[]byte) {
	for _, b := range bufs {
		clear(b)
	}
}

// Close zeroes the key material.
func (k *EncryptionKey) Close() {
	if k == nil {
		return
	}
	Zero(k.Key)
}
