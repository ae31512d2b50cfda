package domain

import (
	"github.com/allisson/secretkeeper/internal/errors"
)

// ErrCrypto is the root of every key or ciphertext failure. These errors are never
// downgraded to "absent": a value that cannot be decrypted points at tampering or
// misconfiguration and must reach the caller.
var ErrCrypto = errors.New("crypto error")

// Cryptographic operation error definitions.
var (
	// ErrUnsupportedAlgorithm indicates the requested encryption algorithm is not supported.
	ErrUnsupportedAlgorithm = errors.Wrap(errors.ErrInvalidInput, "unsupported algorithm")

	// ErrInvalidKeySize indicates a key that does not decode to exactly 32 bytes.
	ErrInvalidKeySize = errors.Wrap(ErrCrypto, "invalid key size")

	// ErrInvalidKey indicates key text that is not valid base64url.
	ErrInvalidKey = errors.Wrap(ErrCrypto, "invalid encryption key")

	// ErrDecryptionFailed indicates a decryption operation failed.
	//
	// Wrong key, tampered ciphertext, truncated blob and unknown header all map here;
	// the specific cause is not disclosed.
	ErrDecryptionFailed = errors.Wrap(ErrCrypto, "decryption failed")
)
