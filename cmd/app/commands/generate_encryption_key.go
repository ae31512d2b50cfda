package commands

import (
	"fmt"
	"io"

	cryptoService "github.com/allisson/secretkeeper/internal/crypto/service"
)

// RunGenerateEncryptionKey prints a fresh 32-byte key in the STORE_ENCRYPTION_KEY format.
func RunGenerateEncryptionKey(writer io.Writer) error {
	key, err := cryptoService.GenerateEncryptionKey()
	if err != nil {
		return fmt.Errorf("failed to generate encryption key: %w", err)
	}

	_, err = fmt.Fprintf(writer, "STORE_ENCRYPTION_KEY=%s\n", key)
	return err
}
