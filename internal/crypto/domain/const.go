// Package domain defines the cryptographic primitives shared by the envelope and the secret store:
// supported algorithms, the configured encryption key and crypto errors.
package domain

// Algorithm represents the AEAD algorithm used to seal secret values.
//
// Both algorithms use a 256-bit key, a 12-byte random nonce and a 16-byte tag.
// Use AESGCM on CPUs with AES-NI, ChaCha20 elsewhere.
type Algorithm string

const (
	// AESGCM represents AES-256-GCM.
	AESGCM Algorithm = "aes-gcm"

	// ChaCha20 represents ChaCha20-Poly1305.
	ChaCha20 Algorithm = "chacha20-poly1305"
)

// KeySize is the required size in bytes of every encryption key.
const KeySize = 32

// DefaultKeyName is the logical name recorded with every stored version.
// Only one key exists; the name leaves room for named keys later.
const DefaultKeyName = "default"

// algorithmIDs maps algorithms to the header byte written in front of every sealed blob.
var algorithmIDs = map[Algorithm]byte{
	AESGCM:   0x01,
	ChaCha20: 0x02,
}

// ID returns the header byte for the algorithm and whether the algorithm is supported.
func (a Algorithm) ID() (byte, bool) {
	id, ok := algorithmIDs[a]
	return id, ok
}

// AlgorithmFromID returns the algorithm matching a blob header byte.
func AlgorithmFromID(id byte) (Algorithm, bool) {
	for alg, algID := range algorithmIDs {
		if algID == id {
			return alg, true
		}
	}
	return "", false
}

// ParseAlgorithm converts configuration text into a supported Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	alg := Algorithm(s)
	if _, ok := alg.ID(); !ok {
		return "", ErrUnsupportedAlgorithm
	}
	return alg, nil
}
